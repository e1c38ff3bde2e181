package helper

//nolint:revive
import (
	"cleanbook/config"
	"cleanbook/infras/postgres"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationsSource = "file://migrations/postgres"

// Migration commands accepted by cmd/migrate.
const (
	ActionUp      = "up"
	ActionDown    = "down"
	ActionStepUp  = "step-up"
	ActionDrop    = "drop"
	ActionVersion = "version"
)

var ErrUnknownAction = errors.New("unknown migration action")

var actions = map[string]func(mig *migrate.Migrate) error{
	ActionUp:      (*migrate.Migrate).Up,
	ActionDown:    func(mig *migrate.Migrate) error { return mig.Steps(-1) },
	ActionStepUp:  func(mig *migrate.Migrate) error { return mig.Steps(1) },
	ActionDrop:    (*migrate.Migrate).Down,
	ActionVersion: logVersion,
}

// Actions lists the accepted commands in a stable order.
func Actions() []string {
	return []string{ActionUp, ActionDown, ActionStepUp, ActionDrop, ActionVersion}
}

func logVersion(mig *migrate.Migrate) error {
	version, dirty, err := mig.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Info().Msg("database has no migrations applied")

		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("current migration version")

	return nil
}

// Run applies one migration action against the primary database.
func Run(cfg *config.Config, action string) error {
	apply, ok := actions[action]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownAction, action)
	}

	mig, err := migrate.New(migrationsSource, postgres.MigrationURL(*cfg))
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	defer func() {
		srcErr, dbErr := mig.Close()
		if closeErr := errors.Join(srcErr, dbErr); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close migrate instance")
		}
	}()

	if err := apply(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migration %s: %w", action, err)
	}

	log.Info().Str("action", action).Msg("database migration finished")

	return nil
}

// Up brings the schema to the latest version.
func Up(cfg *config.Config) error {
	return Run(cfg, ActionUp)
}

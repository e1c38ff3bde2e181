package postgres

//nolint:revive
import (
	"cleanbook/config"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresConnMaxLifetime   = 30 * time.Minute
)

// Connection holds separate pools for the read replica and the primary.
// Booking claims always run on Write.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type dsn struct {
	name     string
	username string
	password string
	host     string
	port     string
	dbName   string
	sslMode  string

	// migrationsTable is only set for the golang-migrate driver.
	migrationsTable string
}

func (d dsn) String() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.username, d.password),
		Host:   net.JoinHostPort(d.host, d.port),
		Path:   d.dbName,
	}

	query := url.Values{"sslmode": []string{d.sslMode}}
	if d.migrationsTable != "" {
		query.Set("x-migrations-table", d.migrationsTable)
	}

	u.RawQuery = query.Encode()

	return u.String()
}

func New(config *config.Config) *Connection {
	conn := &Connection{
		Read:  CreatePostgresReadConn(*config),
		Write: CreatePostgresWriteConn(*config),
	}

	if conn.Read == nil || conn.Write == nil {
		log.Fatal().Msg("could not connect to postgres after retries")
	}

	return conn
}

func (c *Connection) Close() error {
	return errors.Join(c.Read.Close(), c.Write.Close())
}

func getDBName(config config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

func writeDSN(config config.Config) dsn {
	write := config.DB.Postgres.Write

	return dsn{
		name:     "write",
		username: write.Username,
		password: write.Password,
		host:     write.Host,
		port:     write.Port,
		dbName:   getDBName(config, write.Name),
		sslMode:  write.SSLMode,
	}
}

// CreatePostgresWriteConn creates a database connection for write access.
func CreatePostgresWriteConn(config config.Config) *sqlx.DB {
	return CreatePostgresConnection(writeDSN(config), config.DB.Postgres.MaxRetry, config.DB.Postgres.RetryWaitTime)
}

// MigrationURL points golang-migrate at the primary, tracking versions in the
// configured migrations table.
func MigrationURL(config config.Config) string {
	d := writeDSN(config)
	d.migrationsTable = config.DB.Postgres.MigrationTable

	return d.String()
}

// CreatePostgresReadConn creates a database connection for read access.
func CreatePostgresReadConn(config config.Config) *sqlx.DB {
	read := config.DB.Postgres.Read

	return CreatePostgresConnection(dsn{
		name:     "read",
		username: read.Username,
		password: read.Password,
		host:     read.Host,
		port:     read.Port,
		dbName:   getDBName(config, read.Name),
		sslMode:  read.SSLMode,
	}, config.DB.Postgres.MaxRetry, config.DB.Postgres.RetryWaitTime)
}

// CreatePostgresConnection connects with retries and returns nil when every attempt fails.
func CreatePostgresConnection(d dsn, maxRetry, waitTime int) *sqlx.DB {
	for retry := range max(maxRetry, 1) {
		sqlDB, err := sqlx.Connect("postgres", d.String())
		if err == nil {
			log.Info().
				Str("name", d.name).
				Str("host", d.host).
				Str("port", d.port).
				Str("dbName", d.dbName).
				Msg("connected to database")

			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)
			sqlDB.SetConnMaxLifetime(postgresConnMaxLifetime)

			return sqlDB
		}

		log.Error().
			Err(err).
			Str("name", d.name).
			Str("host", d.host).
			Str("port", d.port).
			Str("dbName", d.dbName).
			Int("attempt", retry+1).
			Msg(fmt.Sprintf("failed connecting to database, retrying in %ds", waitTime))

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil
}

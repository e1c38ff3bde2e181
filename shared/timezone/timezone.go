// Package timezone pins wall-clock readings to APP_TIMEZONE, an IANA zone name
// such as "America/New_York". Appointment dates and refund windows are judged
// in this zone. An empty or unknown name falls back to UTC.
package timezone

import (
	"cleanbook/config"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	once     sync.Once
	location *time.Location
)

// Resolve loads the named zone, falling back to UTC.
func Resolve(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("no timezone configured, using UTC")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("unknown timezone, using UTC")

		return time.UTC
	}

	return loc
}

// Location is the application zone, loaded from config on first use.
func Location() *time.Location {
	once.Do(func() {
		location = Resolve(config.Get().App.Timezone)

		log.Info().Str("timezone", location.String()).Msg("application timezone initialized")
	})

	return location
}

func Now() time.Time {
	return time.Now().In(Location())
}

func Format(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}

// Clock reports the current instant in the application timezone.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return Now()
}

// NewClock returns the wall clock backed by Now.
func NewClock() Clock {
	return systemClock{}
}

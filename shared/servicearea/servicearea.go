package servicearea

//go:generate go run go.uber.org/mock/mockgen -source=./servicearea.go -destination=./mocks/servicearea_mock.go -package=mocks

import (
	"cleanbook/config"
	"strings"
)

// Checker decides whether an address can be served.
type Checker interface {
	IsWithinServiceArea(zipCode string) bool
}

type prefixChecker struct {
	prefixes []string
}

// New builds a checker from the configured ZIP prefixes. No prefixes means every ZIP is served.
func New(cfg *config.Config) Checker {
	return NewWithPrefixes(cfg.App.Booking.ServiceAreaZipPrefixes...)
}

func NewWithPrefixes(prefixes ...string) Checker {
	cleaned := make([]string, 0, len(prefixes))

	for _, prefix := range prefixes {
		if prefix = strings.TrimSpace(prefix); prefix != "" {
			cleaned = append(cleaned, prefix)
		}
	}

	return &prefixChecker{prefixes: cleaned}
}

func (c *prefixChecker) IsWithinServiceArea(zipCode string) bool {
	zipCode = strings.TrimSpace(zipCode)

	if len(c.prefixes) == 0 {
		return true
	}

	if zipCode == "" {
		return false
	}

	for _, prefix := range c.prefixes {
		if strings.HasPrefix(zipCode, prefix) {
			return true
		}
	}

	return false
}

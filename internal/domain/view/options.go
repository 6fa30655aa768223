package view

import "time"

// DefaultPlaceholders valores de faceta que significan "sin filtro".
var DefaultPlaceholders = []string{
	"",
	"all",
	"All",
	"All Categories",
	"All Statuses",
	"All Stages",
	"All Owners",
	"All Carriers",
	"All Vendors",
	"All Accounts",
	"All Customers",
	"All Currencies",
}

type settings struct {
	clock        func() time.Time
	placeholders []string
}

func defaultSettings() settings {
	return settings{clock: time.Now, placeholders: DefaultPlaceholders}
}

// Option configura el motor.
type Option func(*settings)

// WithClock reloj usado por las vistas dependientes de la fecha (overdue, recent).
func WithClock(clock func() time.Time) Option {
	return func(s *settings) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithPlaceholders agrega marcadores de faceta a los predeterminados.
func WithPlaceholders(values ...string) Option {
	return func(s *settings) {
		merged := make([]string, 0, len(s.placeholders)+len(values))
		merged = append(merged, s.placeholders...)
		s.placeholders = append(merged, values...)
	}
}

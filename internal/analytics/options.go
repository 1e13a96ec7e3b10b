package analytics

import "time"

// Option configures calendar-dependent calculations.
type Option func(*settings)

type settings struct {
	location *time.Location
}

// WithLocation pins the timezone used for hour-of-day, day-of-week and
// date labels. Without it the host's local timezone is used.
func WithLocation(loc *time.Location) Option {
	return func(s *settings) {
		if loc != nil {
			s.location = loc
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{location: time.Local}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

package app

import (
	"time"

	"github.com/veyra/wcl2mdt/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithGapThreshold sets the pull gap threshold.
func WithGapThreshold(gap time.Duration) Option {
	return func(s *Service) {
		if gap >= 0 {
			s.gap = gap
		}
	}
}

// WithWeek sets the affix week recorded in the export.
func WithWeek(week int) Option {
	return func(s *Service) {
		if week > 0 {
			s.week = week
		}
	}
}

// WithRouteName sets the route name recorded in the export.
func WithRouteName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.name = name
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

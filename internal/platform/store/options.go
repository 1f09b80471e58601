package store

import (
	"asolens/internal/platform/logger"
)

// Option tweaks the Store while Open assembles it
type Option func(*Store) error

// WithLogger replaces the logger handed to subclients and tracers
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// Package repository defines the season-row store interface and errors.
package repository

import "time"

type sqliteSettings struct {
	busyTimeout time.Duration
}

// SQLiteOption applies a configuration option to the SQLiteStore.
type SQLiteOption func(*sqliteSettings)

// WithBusyTimeout sets how long a writer waits for a locked database.
func WithBusyTimeout(d time.Duration) SQLiteOption {
	return func(s *sqliteSettings) {
		if d > 0 {
			s.busyTimeout = d
		}
	}
}

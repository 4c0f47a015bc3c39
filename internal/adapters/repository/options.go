package repository

import "time"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithMetricsUpdateInterval sets the interval for background metrics updates.
func WithMetricsUpdateInterval(interval time.Duration) Option {
	return func(s *MemoryStore) {
		if interval > 0 {
			s.metricsUpdateInterval = interval
		}
	}
}

// WithMaxRecords bounds the store; the oldest analyses are dropped first.
// Zero or negative means unbounded.
func WithMaxRecords(n int) Option {
	return func(s *MemoryStore) {
		s.maxRecords = n
	}
}

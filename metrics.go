package lingmatch

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems.
type MetricsCollector interface {
	// RecordMatch is called after each match call.
	// rows is the input row count, err is nil if successful.
	RecordMatch(rows int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordMatch(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	MatchCount      atomic.Int64
	MatchErrors     atomic.Int64
	MatchRows       atomic.Int64
	MatchTotalNanos atomic.Int64
}

func (c *BasicMetricsCollector) RecordMatch(rows int, duration time.Duration, err error) {
	c.MatchCount.Add(1)
	c.MatchRows.Add(int64(rows))
	c.MatchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		c.MatchErrors.Add(1)
	}
}

// Stats is a point-in-time snapshot of collected metrics.
type Stats struct {
	MatchCount    int64
	MatchErrors   int64
	MatchRows     int64
	MatchAvgNanos int64
}

// GetStats returns a snapshot of the collected metrics.
func (c *BasicMetricsCollector) GetStats() Stats {
	s := Stats{
		MatchCount:  c.MatchCount.Load(),
		MatchErrors: c.MatchErrors.Load(),
		MatchRows:   c.MatchRows.Load(),
	}
	if s.MatchCount > 0 {
		s.MatchAvgNanos = c.MatchTotalNanos.Load() / s.MatchCount
	}
	return s
}

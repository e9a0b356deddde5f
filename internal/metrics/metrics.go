// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Auth failure reasons recorded by the service layer.
const (
	ReasonToken     = "token"
	ReasonOwnership = "ownership"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Blog management metrics
	IncBlogCreated()
	IncBlogUpdated()
	IncBlogDeleted()

	// List cache metrics
	IncListCacheHit()
	IncListCacheMiss()

	// Auth metrics
	IncAuthFailure(reason string) // reason: "token" or "ownership"

	// Statistics engine metrics
	ObserveStatsDuration(duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}

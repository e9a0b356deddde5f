package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	BlogsCreated         uint64
	BlogsUpdated         uint64
	BlogsDeleted         uint64
	ListCacheHits        uint64
	ListCacheMisses      uint64
	AuthTokenFailures    uint64
	AuthOwnershipDenials uint64
	StatsRunCount        uint64
	StatsRunTotalNs      int64
}

// InMemoryRecorder stores metrics in memory behind atomic counters.
type InMemoryRecorder struct {
	blogsCreated         uint64
	blogsUpdated         uint64
	blogsDeleted         uint64
	listCacheHits        uint64
	listCacheMisses      uint64
	authTokenFailures    uint64
	authOwnershipDenials uint64
	statsRunCount        uint64
	statsRunTotalNs      int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		BlogsCreated:         atomic.LoadUint64(&m.blogsCreated),
		BlogsUpdated:         atomic.LoadUint64(&m.blogsUpdated),
		BlogsDeleted:         atomic.LoadUint64(&m.blogsDeleted),
		ListCacheHits:        atomic.LoadUint64(&m.listCacheHits),
		ListCacheMisses:      atomic.LoadUint64(&m.listCacheMisses),
		AuthTokenFailures:    atomic.LoadUint64(&m.authTokenFailures),
		AuthOwnershipDenials: atomic.LoadUint64(&m.authOwnershipDenials),
		StatsRunCount:        atomic.LoadUint64(&m.statsRunCount),
		StatsRunTotalNs:      atomic.LoadInt64(&m.statsRunTotalNs),
	}
}

// IncBlogCreated increments the created counter.
func (m *InMemoryRecorder) IncBlogCreated() {
	atomic.AddUint64(&m.blogsCreated, 1)
}

// IncBlogUpdated increments the updated counter.
func (m *InMemoryRecorder) IncBlogUpdated() {
	atomic.AddUint64(&m.blogsUpdated, 1)
}

// IncBlogDeleted increments the deleted counter.
func (m *InMemoryRecorder) IncBlogDeleted() {
	atomic.AddUint64(&m.blogsDeleted, 1)
}

// IncListCacheHit increments the cache hit counter.
func (m *InMemoryRecorder) IncListCacheHit() {
	atomic.AddUint64(&m.listCacheHits, 1)
}

// IncListCacheMiss increments the cache miss counter.
func (m *InMemoryRecorder) IncListCacheMiss() {
	atomic.AddUint64(&m.listCacheMisses, 1)
}

// IncAuthFailure increments the failure counter for the given reason.
func (m *InMemoryRecorder) IncAuthFailure(reason string) {
	switch reason {
	case ReasonOwnership:
		atomic.AddUint64(&m.authOwnershipDenials, 1)
	default:
		atomic.AddUint64(&m.authTokenFailures, 1)
	}
}

// ObserveStatsDuration records an aggregation run.
func (m *InMemoryRecorder) ObserveStatsDuration(duration time.Duration) {
	atomic.AddUint64(&m.statsRunCount, 1)
	atomic.AddInt64(&m.statsRunTotalNs, duration.Nanoseconds())
}

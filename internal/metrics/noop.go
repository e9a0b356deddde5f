package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncBlogCreated is a no-op.
func (n *NoopRecorder) IncBlogCreated() {}

// IncBlogUpdated is a no-op.
func (n *NoopRecorder) IncBlogUpdated() {}

// IncBlogDeleted is a no-op.
func (n *NoopRecorder) IncBlogDeleted() {}

// IncListCacheHit is a no-op.
func (n *NoopRecorder) IncListCacheHit() {}

// IncListCacheMiss is a no-op.
func (n *NoopRecorder) IncListCacheMiss() {}

// IncAuthFailure is a no-op.
func (n *NoopRecorder) IncAuthFailure(reason string) {}

// ObserveStatsDuration is a no-op.
func (n *NoopRecorder) ObserveStatsDuration(duration time.Duration) {}

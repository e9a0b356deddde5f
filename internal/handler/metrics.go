package handler

import (
	"fmt"
	"net/http"

	"github.com/bloglist/bloglist/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "bloglist_blogs_created_total %d\n", snap.BlogsCreated)
	writeMetric(w, "bloglist_blogs_updated_total %d\n", snap.BlogsUpdated)
	writeMetric(w, "bloglist_blogs_deleted_total %d\n", snap.BlogsDeleted)

	writeMetric(w, "bloglist_list_cache_hits_total %d\n", snap.ListCacheHits)
	writeMetric(w, "bloglist_list_cache_misses_total %d\n", snap.ListCacheMisses)

	writeMetric(w, "bloglist_auth_failures_total{reason=\"token\"} %d\n", snap.AuthTokenFailures)
	writeMetric(w, "bloglist_auth_failures_total{reason=\"ownership\"} %d\n", snap.AuthOwnershipDenials)

	writeMetric(w, "bloglist_stats_duration_seconds_count %d\n", snap.StatsRunCount)
	writeMetric(w, "bloglist_stats_duration_seconds_sum %.6f\n", float64(snap.StatsRunTotalNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

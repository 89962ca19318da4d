// Package metrics provides the Prometheus registry reference for the query
// builder. Metrics are defined in their respective packages (pagination,
// cache) and registered with promauto.
//
// This package provides documentation and an exposition handler.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the default Prometheus registry used by the builder.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Gatherer collects the metrics registered with Registry.
var Gatherer = prometheus.DefaultGatherer

// Handler serves the registered metrics in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Gatherer, promhttp.HandlerOpts{})
}

// Metrics Documentation
//
// Pagination Metrics (pkg/pagination):
//   - chainable_pages_fetched_total{endpoint} (Counter): Pages fetched
//   - chainable_items_fetched_total{endpoint} (Counter): Items fetched
//   - chainable_fetch_errors_total{endpoint} (Counter): Failed list executions
//   - chainable_list_duration_seconds{endpoint} (Histogram): Duration of successful list executions
//
// Cache Metrics (pkg/cache):
//   - chainable_cache_hits_total (Counter): Pages served from Redis
//   - chainable_cache_misses_total (Counter): Pages not found or expired
//   - chainable_cache_errors_total{operation} (Counter): Cache operation errors
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(chainable_cache_hits_total[5m])) /
//   (sum(rate(chainable_cache_hits_total[5m])) + sum(rate(chainable_cache_misses_total[5m])))
//
//   # Items per page by endpoint
//   rate(chainable_items_fetched_total[5m]) / rate(chainable_pages_fetched_total[5m])
//
//   # P95 List Latency
//   histogram_quantile(0.95, rate(chainable_list_duration_seconds_bucket[5m]))

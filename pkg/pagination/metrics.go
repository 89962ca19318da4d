package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for list executions.
var (
	pagesFetchedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chainable_pages_fetched_total",
		Help: "Total pages fetched by endpoint",
	}, []string{"endpoint"})

	itemsFetchedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chainable_items_fetched_total",
		Help: "Total list items fetched by endpoint",
	}, []string{"endpoint"})

	fetchErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chainable_fetch_errors_total",
		Help: "Total failed list executions by endpoint",
	}, []string{"endpoint"})

	listDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chainable_list_duration_seconds",
		Help:    "Duration of complete list executions by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"endpoint"})
)

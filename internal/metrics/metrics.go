package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the various metrics used for monitoring the application.
// It includes a histogram for database query duration, counters and a histogram
// for served HTTP requests, and a counter for successful employee mutations.
type Metrics struct {
	DBQueryDuration     *prometheus.HistogramVec
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	EmployeeMutations   *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with the provided Registerer.
//
// Parameters:
//   - reg: A prometheus.Registerer used to register the metrics.
//
// Returns:
//   - A pointer to the newly created Metrics instance.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hestia_db_query_duration_seconds",
			Help:    "Duration of database queries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query_type"}), // query_type: 'list_employees', 'create_employee'
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hestia_http_requests_total",
			Help: "Total number of served HTTP requests.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hestia_http_request_duration_seconds",
			Help:    "Measures how long it takes to serve an HTTP request.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		EmployeeMutations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hestia_employee_mutations_total",
			Help: "Total number of employees successfully created, updated or deleted.",
		}, []string{"operation"}),
	}

	metrics.EmployeeMutations.WithLabelValues("create")
	metrics.EmployeeMutations.WithLabelValues("update")
	metrics.EmployeeMutations.WithLabelValues("delete")

	return metrics
}

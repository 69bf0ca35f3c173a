// Package metrics groups the Prometheus instruments used by the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskapi"

// Metrics holds every instrument the service records.
type Metrics struct {
	EndpointCalls   *prometheus.CounterVec
	Errors          *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	TasksStored     prometheus.GaugeFunc
}

// New creates the instruments and registers them with reg.
// taskCount is sampled on every scrape to report the number of stored tasks.
func New(reg prometheus.Registerer, taskCount func() int) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EndpointCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "endpoint_calls_total",
			Help:      "Total number of calls per endpoint.",
		}, []string{"endpoint"}),
		Errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Total number of errors occurred in the application.",
		}, []string{"endpoint"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Request latency per endpoint.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		TasksStored: factory.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tasks_stored",
			Help:      "Number of tasks currently held in memory.",
		}, func() float64 {
			return float64(taskCount())
		}),
	}
}

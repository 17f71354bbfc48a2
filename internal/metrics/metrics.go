// Package metrics defines the Prometheus instrumentation shared by the
// HTTP layer and the background worker. Collectors are registered on
// the default registry and served by the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups every collector the service emits.
type Metrics struct {
	// AssessmentsScored counts scoring runs, labelled by assessment type.
	AssessmentsScored *prometheus.CounterVec

	// ReportJobs counts finished report jobs, labelled by outcome
	// ("ok", "retried", "failed").
	ReportJobs *prometheus.CounterVec

	// ReportJobDuration observes end-to-end report job duration in seconds.
	ReportJobDuration prometheus.Histogram
}

// New registers the collectors on the default registry. Call once per
// process, from main.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the collectors on the given registerer. Tests pass a
// fresh prometheus.NewRegistry() so repeated construction does not panic.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		AssessmentsScored: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "career_compass",
			Name:      "assessments_scored_total",
			Help:      "Number of assessment scoring runs.",
		}, []string{"type"}),
		ReportJobs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "career_compass",
			Name:      "report_jobs_total",
			Help:      "Number of completed report jobs by outcome.",
		}, []string{"outcome"}),
		ReportJobDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "career_compass",
			Name:      "report_job_duration_seconds",
			Help:      "End-to-end report job duration.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
	}
}

// Package metrics exposes pipeline telemetry to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "renovate"

// PipelineMetrics holds the counters updated by every pipeline run.
type PipelineMetrics struct {
	RunsTotal          *prometheus.CounterVec
	RunDuration        prometheus.Histogram
	TitleChecksTotal   *prometheus.CounterVec
	NotificationsTotal *prometheus.CounterVec
	LastSuccessfulRun  prometheus.Gauge
}

// New creates and registers pipeline metrics on reg.
func New(reg prometheus.Registerer) *PipelineMetrics {
	factory := promauto.With(reg)
	return &PipelineMetrics{
		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Pipeline runs by final status.",
		}, []string{"status"}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of a pipeline run in seconds.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),
		TitleChecksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "title_checks_total",
			Help:      "Processed titles by category and outcome.",
		}, []string{"category", "outcome"}),
		NotificationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Webhook deliveries by category and status.",
		}, []string{"category", "status"}),
		LastSuccessfulRun: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_successful_run_timestamp_seconds",
			Help:      "Unix time of the last run that completed without a fatal error.",
		}),
	}
}

// ObserveTitle counts one processed title.
func (m *PipelineMetrics) ObserveTitle(category, outcome string) {
	if m == nil {
		return
	}
	m.TitleChecksTotal.WithLabelValues(category, outcome).Inc()
}

// ObserveNotification counts one webhook delivery attempt.
func (m *PipelineMetrics) ObserveNotification(category string, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.NotificationsTotal.WithLabelValues(category, status).Inc()
}

// ObserveRun records a finished run.
func (m *PipelineMetrics) ObserveRun(status string, duration time.Duration, finishedAt time.Time, success bool) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(status).Inc()
	m.RunDuration.Observe(duration.Seconds())
	if success {
		m.LastSuccessfulRun.Set(float64(finishedAt.Unix()))
	}
}

// NewRegistry creates a Prometheus registry with Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// Handler returns an http.Handler that serves the metrics in reg.
func Handler(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

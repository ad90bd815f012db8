// Package metrics provides Prometheus metrics for query processing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dgallion1/markdownql/internal/executor"
	"github.com/dgallion1/markdownql/internal/pipeline"
)

// Metrics holds the query metrics and the registry they are registered on.
type Metrics struct {
	registry *prometheus.Registry

	StagesTotal   *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
	QueriesTotal  *prometheus.CounterVec
	ResultItems   *prometheus.CounterVec
}

// New creates and registers all metrics on a fresh registry, so several
// instances can coexist in one process.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{registry: reg}

	m.StagesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "markdownql_stage_runs_total",
			Help: "Total number of stage runs by stage and status",
		},
		[]string{"stage", "status"},
	)

	m.StageDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "markdownql_stage_duration_seconds",
			Help:    "Duration of query stages in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"stage"},
	)

	m.QueriesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "markdownql_queries_total",
			Help: "Total number of queries by outcome",
		},
		[]string{"status"},
	)

	m.ResultItems = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "markdownql_result_items_total",
			Help: "Total number of extracted strings by result kind",
		},
		[]string{"kind"},
	)

	return m
}

// ObserveStage records one stage run. A failed stage also counts as a
// failed query.
func (m *Metrics) ObserveStage(stage pipeline.Stage, elapsed time.Duration, err error) {
	m.StageDuration.WithLabelValues(string(stage)).Observe(elapsed.Seconds())
	if err != nil {
		m.StagesTotal.WithLabelValues(string(stage), "error").Inc()
		m.QueriesTotal.WithLabelValues("error").Inc()
		return
	}
	m.StagesTotal.WithLabelValues(string(stage), "ok").Inc()
}

// ObserveResult records a successful query and the size of its result.
func (m *Metrics) ObserveResult(result *executor.QueryResult) {
	m.QueriesTotal.WithLabelValues("ok").Inc()
	m.ResultItems.WithLabelValues("headings").Add(float64(len(result.Headings)))
	m.ResultItems.WithLabelValues("paragraphs").Add(float64(len(result.Paragraphs)))
	m.ResultItems.WithLabelValues("matching_text").Add(float64(len(result.MatchingText)))
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus HTTP handler for /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

var _ pipeline.Observer = (*Metrics)(nil)

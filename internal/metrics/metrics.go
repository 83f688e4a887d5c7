// Package metrics exposes Prometheus collectors for Jira traffic and series
// computations.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alexanderramin/sprintburn/internal/jira"
	"github.com/alexanderramin/sprintburn/internal/service"
)

const namespace = "sprintburn"

// Registry owns a dedicated Prometheus registry so repeated construction in
// tests never collides with the default one.
type Registry struct {
	reg *prometheus.Registry

	jiraRequests   *prometheus.CounterVec
	jiraDuration   *prometheus.HistogramVec
	seriesRuns     *prometheus.CounterVec
	seriesItems    prometheus.Counter
	seriesDuration prometheus.Histogram
	runsSaved      prometheus.Counter
}

var (
	_ jira.Observer           = (*Registry)(nil)
	_ service.UseCaseObserver = (*Registry)(nil)
)

func New() *Registry {
	r := &Registry{reg: prometheus.NewRegistry()}
	r.jiraRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jira_requests_total",
		Help:      "Jira HTTP requests by endpoint and status code.",
	}, []string{"endpoint", "status"})
	r.jiraDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "jira_request_duration_seconds",
		Help:      "Latency of Jira HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})
	r.seriesRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "series_runs_total",
		Help:      "Daily series computations by outcome.",
	}, []string{"outcome"})
	r.seriesItems = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "series_items_processed_total",
		Help:      "Work items folded into successful series computations.",
	})
	r.seriesDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "series_run_duration_seconds",
		Help:      "Wall time of series computations.",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	})
	r.runsSaved = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "runs_saved_total",
		Help:      "Series runs persisted to the local store.",
	})
	r.reg.MustRegister(r.jiraRequests, r.jiraDuration, r.seriesRuns, r.seriesItems, r.seriesDuration, r.runsSaved)
	return r
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// OnRequest implements jira.Observer.
func (r *Registry) OnRequest(event jira.RequestEvent) {
	status := "error"
	if event.Status > 0 {
		status = strconv.Itoa(event.Status)
	}
	r.jiraRequests.WithLabelValues(event.Endpoint, status).Inc()
	r.jiraDuration.WithLabelValues(event.Endpoint).Observe(event.Duration.Seconds())
}

// ObserveUseCase implements service.UseCaseObserver.
func (r *Registry) ObserveUseCase(_ context.Context, event service.UseCaseEvent) {
	switch event.Name {
	case "compute-daily-series":
		outcome := "success"
		if !event.Success {
			outcome = "failure"
		}
		r.seriesRuns.WithLabelValues(outcome).Inc()
		r.seriesDuration.Observe(event.Duration.Seconds())
		if n, ok := event.Fields["items"].(int); ok && event.Success {
			r.seriesItems.Add(float64(n))
		}
	case "save-run":
		if event.Success {
			r.runsSaved.Inc()
		}
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// WriteTextfile dumps the registry for the node-exporter textfile
// collector. The file is replaced atomically.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("writing metrics textfile %s: %w", path, err)
	}
	return nil
}

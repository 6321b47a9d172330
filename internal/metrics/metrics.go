package metrics

import (
	"context"
	"net/http"
	"strconv"

	"github.com/alexanderramin/cmcplan/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides observability for checklist use cases and HTTP traffic.
type Metrics struct {
	gatherer prometheus.Gatherer

	// Use-case executions by name and outcome
	UseCaseTotal *prometheus.CounterVec

	// Use-case latency by name
	UseCaseLatency *prometheus.HistogramVec

	// Rows returned or exported per use case
	UseCaseRows *prometheus.HistogramVec

	// HTTP requests by route pattern, method and status
	HTTPRequests *prometheus.CounterVec
}

// New registers all cmcplan metrics on reg. A nil reg uses a fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &Metrics{
		gatherer: reg,

		UseCaseTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cmcplan_use_case_total",
			Help: "Total service use-case executions by name and outcome",
		}, []string{"use_case", "outcome"}), // outcome: "success", "error"

		UseCaseLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cmcplan_use_case_duration_seconds",
			Help:    "Duration of service use cases",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}, []string{"use_case"}),

		UseCaseRows: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cmcplan_use_case_rows",
			Help:    "Checklist rows returned or exported per use case",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32},
		}, []string{"use_case"}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cmcplan_http_requests_total",
			Help: "Total HTTP requests by route pattern, method and status code",
		}, []string{"route", "method", "code"}),
	}
}

// ObserveUseCase implements service.UseCaseObserver.
func (m *Metrics) ObserveUseCase(_ context.Context, event service.UseCaseEvent) {
	if m == nil {
		return
	}
	outcome := "success"
	if !event.Success {
		outcome = "error"
	}
	m.UseCaseTotal.WithLabelValues(event.Name, outcome).Inc()
	m.UseCaseLatency.WithLabelValues(event.Name).Observe(event.Duration.Seconds())
	if n, ok := event.Fields["row_count"].(int); ok {
		m.UseCaseRows.WithLabelValues(event.Name).Observe(float64(n))
	}
}

// IncrementHTTPRequest records one served request.
func (m *Metrics) IncrementHTTPRequest(route, method string, code int) {
	if m != nil {
		m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

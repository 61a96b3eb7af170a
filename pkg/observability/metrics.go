package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/enigma/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the machine and adapter metrics on a private registry.
type Metrics struct {
	LettersEncoded prometheus.Counter
	RotorSteps     *prometheus.CounterVec
	RotorCarries   *prometheus.CounterVec
	Messages       *prometheus.CounterVec

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewMetrics creates a metrics set with its own registry, including Go runtime collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		LettersEncoded: f.NewCounter(prometheus.CounterOpts{
			Name: "enigma_letters_encoded_total",
			Help: "Total number of letters that went through the signal path",
		}),
		RotorSteps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "enigma_rotor_steps_total",
			Help: "Total number of rotor rotations",
		}, []string{"rotor"}),
		RotorCarries: f.NewCounterVec(prometheus.CounterOpts{
			Name: "enigma_rotor_carries_total",
			Help: "Total number of rotations that landed on the notch",
		}, []string{"rotor"}),
		Messages: f.NewCounterVec(prometheus.CounterOpts{
			Name: "enigma_messages_total",
			Help: "Total number of messages encoded, by adapter",
		}, []string{"adapter"}),
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "enigma_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "enigma_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		registry: reg,
	}
}

// Hooks returns lifecycle hooks that feed the machine counters.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			rotor := strconv.Itoa(e.Rotor)
			m.RotorSteps.WithLabelValues(rotor).Inc()
			if e.Notched {
				m.RotorCarries.WithLabelValues(rotor).Inc()
			}
		},
		OnLetter: func(context.Context, *domain.LetterEvent) {
			m.LettersEncoded.Inc()
		},
	}
}

// RecordMessage counts one encoded message for the given adapter (cli, http, mcp, shell).
func (m *Metrics) RecordMessage(adapter string) {
	m.Messages.WithLabelValues(adapter).Inc()
}

// RecordHTTPRequest records a served HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Registry exposes the underlying registry, e.g. for tests or extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

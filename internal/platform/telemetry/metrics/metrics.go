package metrics

import (
	"context"
	"net/http"

	"github.com/nirbhaysingh/portfolio/internal/blog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "portfolio"

// Contact send outcomes.
const (
	OutcomeSent          = "sent"
	OutcomeInvalid       = "invalid"
	OutcomeRateLimited   = "rate_limited"
	OutcomeNotConfigured = "not_configured"
	OutcomeRejected      = "rejected"
	OutcomeTimeout       = "timeout"
	OutcomeUnreachable   = "unreachable"
)

// Metrics owns a registry and the site collectors.
type Metrics struct {
	registry        *prometheus.Registry
	requestDuration *prometheus.HistogramVec
	contentProblems *prometheus.CounterVec
	contactSends    *prometheus.CounterVec
}

// New registers the site collectors plus the Go runtime and process
// collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "code"}),
		contentProblems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_problems_total",
			Help:      "Content entries skipped while listing posts, by kind.",
		}, []string{"kind"}),
		contactSends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_sends_total",
			Help:      "Contact form submissions by outcome.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(
		m.requestDuration,
		m.contentProblems,
		m.contactSends,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request latency.
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return promhttp.InstrumentHandlerDuration(m.requestDuration, next)
	}
}

// ContentReporter counts content problems by kind.
func (m *Metrics) ContentReporter() blog.Reporter {
	return blog.ReporterFunc(func(_ context.Context, problem blog.Problem) {
		m.contentProblems.WithLabelValues(string(problem.Kind)).Inc()
	})
}

// ContactSend counts one contact submission outcome.
func (m *Metrics) ContactSend(outcome string) {
	m.contactSends.WithLabelValues(outcome).Inc()
}

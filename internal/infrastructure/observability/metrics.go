package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the Prometheus implementation of application.PaymentMetrics.
// Each instance owns its registry so tests can build as many as they like.
type Metrics struct {
	registry             *prometheus.Registry
	payments             *prometheus.CounterVec
	paymentDuration      *prometheus.HistogramVec
	notificationFailures *prometheus.CounterVec
	httpRequests         *prometheus.CounterVec
	httpDuration         *prometheus.HistogramVec
	staleOrdersSwept     prometheus.Counter
}

func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_processed_total",
			Help:      "Payments processed, by outcome.",
		}, []string{"outcome"}),
		paymentDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "payment_duration_seconds",
			Help:      "End to end payment processing time.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		notificationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_failures_total",
			Help:      "Confirmations that could not be sent, by reason.",
		}, []string{"reason"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		staleOrdersSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_orders_swept_total",
			Help:      "Orders moved to failed_unexpected by the sweeper.",
		}),
	}

	m.registry.MustRegister(
		m.payments,
		m.paymentDuration,
		m.notificationFailures,
		m.httpRequests,
		m.httpDuration,
		m.staleOrdersSwept,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) RecordPayment(outcome string, duration time.Duration) {
	m.payments.WithLabelValues(outcome).Inc()
	m.paymentDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func (m *Metrics) RecordNotificationFailure(reason string) {
	m.notificationFailures.WithLabelValues(reason).Inc()
}

// RecordHTTPRequest expects route to be a low-cardinality template, not the raw path.
func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) RecordStaleOrdersSwept(n int) {
	m.staleOrdersSwept.Add(float64(n))
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Package telemetry exposes Prometheus metrics for the shop API.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the business and HTTP collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	// Cart & session
	CartMutations   *prometheus.CounterVec
	PersistFailures prometheus.Counter
	StatesRejected  prometheus.Counter
	SessionsIssued  prometheus.Counter
	ActiveSessions  prometheus.Gauge

	// Auth
	OTPSent      prometheus.Counter
	LoginResults *prometheus.CounterVec

	// Checkout
	PaymentAttempts *prometheus.CounterVec
	OrdersCreated   *prometheus.CounterVec
	OrderValue      prometheus.Histogram

	// Lens
	LensCaptures prometheus.Counter

	// HTTP
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
}

// New registers all collectors on reg. A nil reg gets a fresh registry.
func New(namespace string, reg *prometheus.Registry) *Metrics {
	if namespace == "" {
		namespace = "shopfront"
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: reg,

		CartMutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "cart_mutations_total",
				Help:      "Cart mutations by operation",
			},
			[]string{"op"}, // op: add, remove, update, clear
		),
		PersistFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "persist_failures_total",
			Help:      "Sessions that fell back to memory-only after a storage error",
		}),
		StatesRejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "states_rejected_total",
			Help:      "Persisted session blobs discarded on load",
		}),
		SessionsIssued: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "issued_total",
			Help:      "Session tokens issued",
		}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "cached",
			Help:      "Session stores currently held in memory",
		}),

		OTPSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "otp_sent_total",
			Help:      "One-time codes issued",
		}),
		LoginResults: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "auth",
				Name:      "login_results_total",
				Help:      "OTP verification outcomes",
			},
			[]string{"result"}, // result: success, invalid, expired, no_challenge
		),

		PaymentAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "checkout",
				Name:      "payment_attempts_total",
				Help:      "Payment attempts by method and outcome",
			},
			[]string{"method", "result"},
		),
		OrdersCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "checkout",
				Name:      "orders_created_total",
				Help:      "Orders placed by payment method",
			},
			[]string{"method"},
		),
		OrderValue: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "checkout",
			Name:      "order_value_rupees",
			Help:      "Order totals in rupees",
			Buckets:   []float64{0, 100, 500, 1000, 2500, 5000, 10000, 25000, 50000, 100000},
		}),

		LensCaptures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lens",
			Name:      "captures_total",
			Help:      "Visual search captures processed",
		}),

		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path", "status"},
		),
		requestsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		}),
	}
}

// CartMutated implements store.Observer.
func (m *Metrics) CartMutated(op string) {
	if m == nil {
		return
	}
	m.CartMutations.WithLabelValues(op).Inc()
}

// PersistFailed implements store.Observer.
func (m *Metrics) PersistFailed() {
	if m == nil {
		return
	}
	m.PersistFailures.Inc()
}

// StateRejected implements store.Observer.
func (m *Metrics) StateRejected() {
	if m == nil {
		return
	}
	m.StatesRejected.Inc()
}

func (m *Metrics) SessionIssued() {
	if m == nil {
		return
	}
	m.SessionsIssued.Inc()
}

func (m *Metrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.ActiveSessions.Set(float64(n))
}

func (m *Metrics) OTPIssued() {
	if m == nil {
		return
	}
	m.OTPSent.Inc()
}

func (m *Metrics) LoginResult(result string) {
	if m == nil {
		return
	}
	m.LoginResults.WithLabelValues(result).Inc()
}

func (m *Metrics) PaymentAttempt(method, result string) {
	if m == nil {
		return
	}
	m.PaymentAttempts.WithLabelValues(method, result).Inc()
}

func (m *Metrics) OrderPlaced(method string, total int64) {
	if m == nil {
		return
	}
	m.OrdersCreated.WithLabelValues(method).Inc()
	m.OrderValue.Observe(float64(total))
}

func (m *Metrics) LensCaptured() {
	if m == nil {
		return
	}
	m.LensCaptures.Inc()
}

// Middleware records request counts and latency keyed by the matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		m.requestsInFlight.Inc()
		defer m.requestsInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.requestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

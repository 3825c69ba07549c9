// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors. A nil *Metrics records nothing.
type Metrics struct {
	reqTotal         *prometheus.CounterVec
	reqDuration      *prometheus.HistogramVec
	inFlight         prometheus.Gauge
	emailsSent       *prometheus.CounterVec
	quotesCreated    prometheus.Counter
	paymentsRecorded prometheus.Counter
}

// New creates and registers the collectors on reg, reusing collectors that
// are already registered.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		reqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled by the server.",
		}, []string{"method", "route", "status"}),
		reqDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency distribution in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"method", "route"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		emailsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_sent_total",
			Help:      "Email delivery attempts by provider and outcome.",
		}, []string{"provider", "status"}),
		quotesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_created_total",
			Help:      "Quotes persisted.",
		}),
		paymentsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_recorded_total",
			Help:      "Payments recorded against quotes.",
		}),
	}

	m.reqTotal = register(reg, m.reqTotal)
	m.reqDuration = register(reg, m.reqDuration)
	m.inFlight = register(reg, m.inFlight)
	m.emailsSent = register(reg, m.emailsSent)
	m.quotesCreated = register(reg, m.quotesCreated)
	m.paymentsRecorded = register(reg, m.paymentsRecorded)
	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(fmt.Errorf("register collector: %w", err))
	}
	return c
}

// RequestStarted increments the in-flight gauge and returns a func that
// records the finished request.
func (m *Metrics) RequestStarted() func(method, route string, status int) {
	if m == nil {
		return func(string, string, int) {}
	}
	start := time.Now()
	m.inFlight.Inc()
	return func(method, route string, status int) {
		m.inFlight.Dec()
		m.reqTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.reqDuration.WithLabelValues(method, route).Observe(float64(time.Since(start)) / float64(time.Millisecond))
	}
}

// EmailSent counts a delivery attempt.
func (m *Metrics) EmailSent(provider, status string) {
	if m == nil {
		return
	}
	m.emailsSent.WithLabelValues(provider, status).Inc()
}

// QuoteCreated counts a persisted quote.
func (m *Metrics) QuoteCreated() {
	if m == nil {
		return
	}
	m.quotesCreated.Inc()
}

// PaymentRecorded counts a recorded payment.
func (m *Metrics) PaymentRecorded() {
	if m == nil {
		return
	}
	m.paymentsRecorded.Inc()
}

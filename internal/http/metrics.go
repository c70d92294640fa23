package http

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors of the HTTP client.
type Metrics struct {
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	retries   *prometheus.CounterVec
	remaining prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg. Collectors
// that are already registered are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reddit",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of API requests by method and status code.",
		}, []string{"method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "reddit",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "API request latency including retries.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reddit",
			Subsystem: "http",
			Name:      "retries_total",
			Help:      "Total number of retried API requests.",
		}, []string{"method"}),
		remaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "reddit",
			Subsystem: "http",
			Name:      "ratelimit_remaining",
			Help:      "Requests left in the current rate limit window.",
		}),
	}

	var err error

	m.requests, err = register(reg, m.requests)
	if err != nil {
		return nil, err
	}

	m.duration, err = register(reg, m.duration)
	if err != nil {
		return nil, err
	}

	m.retries, err = register(reg, m.retries)
	if err != nil {
		return nil, err
	}

	m.remaining, err = register(reg, m.remaining)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}

	are := prometheus.AlreadyRegisteredError{}
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing, nil
		}
	}

	return c, fmt.Errorf("registering collector: %w", err)
}

func (m *Metrics) observe(method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}

	code := "error"
	if status != 0 {
		code = strconv.Itoa(status)
	}

	m.requests.WithLabelValues(method, code).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func (m *Metrics) setRemaining(remaining float64) {
	if m == nil {
		return
	}

	m.remaining.Set(remaining)
}

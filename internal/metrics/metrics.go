package metrics

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors of the service. Each instance registers
// against its own registerer so tests can build as many as they need.
type Metrics struct {
	ServiceName string

	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	actions       *prometheus.CounterVec
	notifications *prometheus.CounterVec
	gatherer      prometheus.Gatherer
}

// New creates the collectors and registers them with reg. A nil reg uses a
// fresh registry.
func New(serviceName string, reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		ServiceName: serviceName,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"service", "method", "path", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "method", "path", "status"},
		),
		actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workflow_actions_total",
				Help: "Workflow actions by name and outcome",
			},
			[]string{"service", "action", "outcome"},
		),
		notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notifications_emitted_total",
				Help: "Notifications written, by type",
			},
			[]string{"service", "type"},
		),
		gatherer: reg,
	}
	reg.MustRegister(m.requests, m.duration, m.actions, m.notifications)
	return m
}

// Action records the outcome of a workflow action. A nil receiver is a no-op.
func (m *Metrics) Action(action string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.actions.WithLabelValues(m.ServiceName, action, outcome).Inc()
}

// Notification counts one emitted notification.
func (m *Metrics) Notification(typ string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(m.ServiceName, typ).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack lets websocket upgrades pass through the recorder.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("metrics: response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Middleware records request count and duration per route.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		path := RoutePath(r.URL.Path)
		status := strconv.Itoa(rec.status)
		m.requests.WithLabelValues(m.ServiceName, r.Method, path, status).Inc()
		m.duration.WithLabelValues(m.ServiceName, r.Method, path, status).Observe(time.Since(start).Seconds())
	})
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// RoutePath replaces numeric path segments with ":id" to keep label
// cardinality bounded.
func RoutePath(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if p == "" {
			continue
		}
		if _, err := strconv.Atoi(p); err == nil {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}

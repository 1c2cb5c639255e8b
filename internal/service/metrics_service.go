package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates the console's Prometheus instrumentation.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	provisionTotal  *prometheus.CounterVec
	directoryFetch  prometheus.Histogram
}

// NewMetricsService registers the core collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	provisionTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "provision_actions_total",
		Help: "Total provisioning actions by action and outcome",
	}, []string{"action", "outcome"})

	directoryFetch := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "directory_fetch_duration_seconds",
		Help:    "Duration of full directory snapshot fetches",
		Buckets: prometheus.DefBuckets,
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, provisionTotal, directoryFetch, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		provisionTotal:  provisionTotal,
		directoryFetch:  directoryFetch,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{"method": method, "path": path, "status": strconv.Itoa(status)}
	m.requestDuration.With(labels).Observe(duration.Seconds())
	m.requestTotal.With(labels).Inc()
}

// ObserveProvisionAction counts a provisioning action.
func (m *MetricsService) ObserveProvisionAction(action, outcome string) {
	if m == nil {
		return
	}
	m.provisionTotal.With(prometheus.Labels{"action": action, "outcome": outcome}).Inc()
}

// ObserveDirectoryFetch records one snapshot fetch.
func (m *MetricsService) ObserveDirectoryFetch(duration time.Duration) {
	if m == nil {
		return
	}
	m.directoryFetch.Observe(duration.Seconds())
}

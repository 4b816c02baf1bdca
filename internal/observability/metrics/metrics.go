package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "ustaxes_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	calculationsTotal   *prometheus.CounterVec
	calculationsLatency *prometheus.HistogramVec

	exportsTotal   *prometheus.CounterVec
	exportsLatency *prometheus.HistogramVec

	loginsTotal *prometheus.CounterVec
)

// Init registers application metrics. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by method, path and status",
			},
			[]string{"method", "path", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_latency_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		)

		calculationsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "calculations_total",
				Help: "Total tax calculations by year, state and result",
			},
			[]string{"year", "state", "result"},
		)
		calculationsLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "calculation_latency_seconds",
				Help:    "Tax calculation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"year", "result"},
		)

		exportsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "exports_total",
				Help: "Total return exports by format and result",
			},
			[]string{"format", "result"},
		)
		exportsLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_latency_seconds",
				Help:    "Return export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		loginsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "logins_total",
				Help: "Total login attempts by result",
			},
			[]string{"result"},
		)

		prometheus.MustRegister(
			httpRequests,
			httpLatency,
			calculationsTotal,
			calculationsLatency,
			exportsTotal,
			exportsLatency,
			loginsTotal,
		)
	})
}

// ObserveHTTP records one served request.
func ObserveHTTP(method, path string, status int, duration time.Duration) {
	if httpRequests != nil {
		httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	}
	if httpLatency != nil {
		httpLatency.WithLabelValues(method, path).Observe(duration.Seconds())
	}
}

// ObserveCalculation records one engine run.
func ObserveCalculation(year int, state, result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if state == "" {
		state = "unknown"
	}
	y := strconv.Itoa(year)
	if calculationsTotal != nil {
		calculationsTotal.WithLabelValues(y, state, result).Inc()
	}
	if calculationsLatency != nil {
		calculationsLatency.WithLabelValues(y, result).Observe(duration.Seconds())
	}
}

// ObserveExport records one PDF/XLSX/XML export.
func ObserveExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if exportsTotal != nil {
		exportsTotal.WithLabelValues(format, result).Inc()
	}
	if exportsLatency != nil {
		exportsLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// IncLogin increments the login attempt counter.
func IncLogin(result string) {
	if result == "" {
		result = "unknown"
	}
	if loginsTotal != nil {
		loginsTotal.WithLabelValues(result).Inc()
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)

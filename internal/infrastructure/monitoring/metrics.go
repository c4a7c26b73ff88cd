package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Registry metrics
	ModulesLive     prometheus.Gauge
	ModuleLoads     *prometheus.CounterVec
	ModuleEvictions prometheus.Counter
	RefreshDuration prometheus.Histogram

	// Key-map metrics
	KeymapBinds     prometheus.Counter
	KeymapBindFails prometheus.Counter

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "serin_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "serin_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "path"},
		),

		// Registry metrics
		ModulesLive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "serin_modules_live",
				Help: "Number of app modules currently cached",
			},
		),
		ModuleLoads: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "serin_module_loads_total",
				Help: "Total number of app module constructions",
			},
			[]string{"kind"}, // "extension" or "default"
		),
		ModuleEvictions: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "serin_module_evictions_total",
				Help: "Total number of app modules evicted after process exit",
			},
		),
		RefreshDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "serin_refresh_duration_seconds",
				Help:    "Registry refresh pass duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
			},
		),

		// Key-map metrics
		KeymapBinds: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "serin_keymap_binds_total",
				Help: "Total number of key bindings loaded",
			},
		),
		KeymapBindFails: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "serin_keymap_bind_failures_total",
				Help: "Total number of key-map lines that failed to bind",
			},
		),

		// System metrics
		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "serin_uptime_seconds",
				Help: "Host uptime in seconds",
			},
		),
	}

	// Start uptime updater
	go m.updateUptime()

	return m
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordModuleLoad records an app module construction
func (m *Metrics) RecordModuleLoad(kind string) {
	m.ModuleLoads.WithLabelValues(kind).Inc()
}

// RecordEviction records an app module eviction
func (m *Metrics) RecordEviction() {
	m.ModuleEvictions.Inc()
}

// RecordRefresh records the duration of a refresh pass
func (m *Metrics) RecordRefresh(duration time.Duration) {
	m.RefreshDuration.Observe(duration.Seconds())
}

// RecordBind records a successful key binding
func (m *Metrics) RecordBind() {
	m.KeymapBinds.Inc()
}

// RecordBindFailure records a key-map line that failed to bind
func (m *Metrics) RecordBindFailure() {
	m.KeymapBindFails.Inc()
}

// SetModulesLive sets the number of cached app modules
func (m *Metrics) SetModulesLive(count int) {
	m.ModulesLive.Set(float64(count))
}

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus-метрик сервиса
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBConnections   *prometheus.GaugeVec

	RotationRuns            *prometheus.CounterVec
	RotationDuration        *prometheus.HistogramVec
	RotationStatusChanges   *prometheus.CounterVec
	RotationFeaturedUpdates *prometheus.CounterVec
	RotationWriteErrors     *prometheus.CounterVec
}

// New создает и регистрирует метрики в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"service", "method", "path"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"service", "operation"}),

		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),

		DBConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),

		RotationRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "departure_rotation_runs_total",
			Help: "Total number of departure rotation runs",
		}, []string{"service", "trigger", "result"}),

		RotationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "departure_rotation_duration_seconds",
			Help:    "Departure rotation run duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"service", "trigger"}),

		RotationStatusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "departure_status_changes_total",
			Help: "Departure status transitions applied by rotation",
		}, []string{"service", "status"}),

		RotationFeaturedUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "departure_featured_updates_total",
			Help: "Featured departure changes applied by rotation",
		}, []string{"service"}),

		RotationWriteErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "departure_rotation_write_errors_total",
			Help: "Per-departure write failures during rotation",
		}, []string{"service"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBConnections,
		m.RotationRuns,
		m.RotationDuration,
		m.RotationStatusChanges,
		m.RotationFeaturedUpdates,
		m.RotationWriteErrors,
	)

	return m
}

// ServiceName возвращает имя сервиса, используемое как значение label "service"
func (m *Metrics) ServiceName() string {
	return m.serviceName
}

// ObserveHTTPRequest фиксирует завершенный HTTP-запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполненный запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	m.DBQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(m.serviceName, operation).Inc()
	}
}

// SetDBConnections обновляет метрики пула соединений
func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	m.DBConnections.WithLabelValues(m.serviceName, "open").Set(float64(open))
	m.DBConnections.WithLabelValues(m.serviceName, "in_use").Set(float64(inUse))
	m.DBConnections.WithLabelValues(m.serviceName, "idle").Set(float64(idle))
}

// ObserveRotationRun фиксирует завершенный прогон ротации
func (m *Metrics) ObserveRotationRun(trigger string, success bool, duration time.Duration) {
	result := "success"
	if !success {
		result = "failure"
	}
	m.RotationRuns.WithLabelValues(m.serviceName, trigger, result).Inc()
	m.RotationDuration.WithLabelValues(m.serviceName, trigger).Observe(duration.Seconds())
}

func (m *Metrics) IncStatusChange(status string) {
	m.RotationStatusChanges.WithLabelValues(m.serviceName, status).Inc()
}

func (m *Metrics) IncFeaturedUpdate() {
	m.RotationFeaturedUpdates.WithLabelValues(m.serviceName).Inc()
}

func (m *Metrics) IncRotationWriteError() {
	m.RotationWriteErrors.WithLabelValues(m.serviceName).Inc()
}

package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics - набор Prometheus-метрик сервиса.
// Все метрики имеют лейбл service, чтобы несколько инстансов
// могли писать в общий Prometheus.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	dbQueryDuration     *prometheus.HistogramVec
	dbQueryErrors       *prometheus.CounterVec
	dbPoolOpenConns     *prometheus.GaugeVec
	dbPoolInUseConns    *prometheus.GaugeVec
	dbPoolIdleConns     *prometheus.GaugeVec
	dbPoolWaitCount     *prometheus.GaugeVec
}

// New регистрирует и возвращает метрики сервиса
func New(serviceName string) *Metrics {
	_ = serviceName // имя сервиса передается лейблом при записи

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "operation"}),

		dbQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),

		dbPoolOpenConns: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_open_connections",
			Help: "Number of open connections in the pool",
		}, []string{"service"}),

		dbPoolInUseConns: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		dbPoolIdleConns: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_idle_connections",
			Help: "Number of idle connections in the pool",
		}, []string{"service"}),

		dbPoolWaitCount: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),
	}
}

// ObserveHTTPRequest записывает метрики одного HTTP-запроса
func (m *Metrics) ObserveHTTPRequest(service, method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(service, method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(service, method, path).Observe(duration.Seconds())
}

// ObserveDBQuery записывает метрики одного запроса к БД
func (m *Metrics) ObserveDBQuery(service, operation string, duration time.Duration, err error) {
	m.dbQueryDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(service, operation).Inc()
	}
}

// SetDBPoolStats записывает состояние connection pool
func (m *Metrics) SetDBPoolStats(service string, stats sql.DBStats) {
	m.dbPoolOpenConns.WithLabelValues(service).Set(float64(stats.OpenConnections))
	m.dbPoolInUseConns.WithLabelValues(service).Set(float64(stats.InUse))
	m.dbPoolIdleConns.WithLabelValues(service).Set(float64(stats.Idle))
	m.dbPoolWaitCount.WithLabelValues(service).Set(float64(stats.WaitCount))
}

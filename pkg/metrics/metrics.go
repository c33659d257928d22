// Package metrics Prometheus-метрики сервиса: HTTP, база данных, батчи напоминаний
package metrics

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса
type Metrics struct {
	serviceName string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueriesTotal  *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec

	dbPoolOpenConns  *prometheus.GaugeVec
	dbPoolInUseConns *prometheus.GaugeVec
	dbPoolIdleConns  *prometheus.GaugeVec

	remindersProcessedTotal *prometheus.CounterVec
	busySyncTotal           *prometheus.CounterVec
}

// New создает и регистрирует метрики сервиса в default registry
func New(serviceName string) *Metrics {
	return &Metrics{
		serviceName: serviceName,

		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		dbQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "db_queries_total",
			Help: "Total number of database queries",
		}, []string{"service", "operation", "status"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
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

		remindersProcessedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "reminders_processed_total",
			Help: "Total number of reminders processed by the batch endpoint",
		}, []string{"service", "kind", "status"}),

		busySyncTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "busy_calendar_sync_total",
			Help: "Total number of external calendar sync attempts",
		}, []string{"service", "provider", "status"}),
	}
}

// ObserveHTTPRequest записывает метрики HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, path, status string, seconds float64) {
	m.httpRequestsTotal.WithLabelValues(m.serviceName, method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(seconds)
}

// ObserveDBQuery записывает метрики запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, err error, seconds float64) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueriesTotal.WithLabelValues(m.serviceName, operation, status).Inc()
	m.dbQueryDuration.WithLabelValues(m.serviceName, operation).Observe(seconds)
}

// SetDBPoolStats записывает состояние пула соединений
func (m *Metrics) SetDBPoolStats(stats sql.DBStats) {
	m.dbPoolOpenConns.WithLabelValues(m.serviceName).Set(float64(stats.OpenConnections))
	m.dbPoolInUseConns.WithLabelValues(m.serviceName).Set(float64(stats.InUse))
	m.dbPoolIdleConns.WithLabelValues(m.serviceName).Set(float64(stats.Idle))
}

// IncReminderProcessed увеличивает счетчик обработанных напоминаний
func (m *Metrics) IncReminderProcessed(kind string, success bool) {
	status := "sent"
	if !success {
		status = "failed"
	}
	m.remindersProcessedTotal.WithLabelValues(m.serviceName, kind, status).Inc()
}

// IncBusySync увеличивает счетчик синхронизаций внешних календарей
func (m *Metrics) IncBusySync(provider string, success bool) {
	status := "ok"
	if !success {
		status = "error"
	}
	m.busySyncTotal.WithLabelValues(m.serviceName, provider, status).Inc()
}

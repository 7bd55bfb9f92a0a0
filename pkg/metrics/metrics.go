package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBQueryErrors     *prometheus.CounterVec
	DBConnections     *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec
	DBWaitDurationSec *prometheus.GaugeVec

	ScheduleEdits      *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	ScheduleCommits    *prometheus.CounterVec
	CacheLookups       *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в указанном реестре (для тестов)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),

		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),

		DBConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),

		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		DBWaitDurationSec: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_wait_duration_seconds",
			Help: "Total time blocked waiting for a new connection",
		}, []string{"service"}),

		ScheduleEdits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schedule_edits_total",
			Help: "Schedule edit attempts by operation and result",
		}, []string{"service", "op", "result"}),

		ValidationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schedule_validation_failures_total",
			Help: "Rejected schedule mutations by rule",
		}, []string{"service", "kind"}),

		ScheduleCommits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schedule_commits_total",
			Help: "Schedule commit attempts by result",
		}, []string{"service", "result"}),

		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schedule_cache_lookups_total",
			Help: "Committed schedule cache lookups by result",
		}, []string{"service", "result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBConnections,
		m.DBWaitCount,
		m.DBWaitDurationSec,
		m.ScheduleEdits,
		m.ValidationFailures,
		m.ScheduleCommits,
		m.CacheLookups,
	)

	return m
}

// ObserveHTTP записывает результат HTTP запроса
func (m *Metrics) ObserveHTTP(method, path, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// ObserveQuery записывает длительность запроса к БД
func (m *Metrics) ObserveQuery(operation string, duration time.Duration, err error) {
	m.DBQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(m.serviceName, operation).Inc()
	}
}

// RecordEdit учитывает попытку редактирования расписания.
// kind - код правила валидации, пустой при успехе.
func (m *Metrics) RecordEdit(op string, kind string) {
	if m == nil {
		return
	}
	if kind == "" {
		m.ScheduleEdits.WithLabelValues(m.serviceName, op, "ok").Inc()
		return
	}
	m.ScheduleEdits.WithLabelValues(m.serviceName, op, "rejected").Inc()
	m.ValidationFailures.WithLabelValues(m.serviceName, kind).Inc()
}

// RecordCommit учитывает попытку фиксации расписания
func (m *Metrics) RecordCommit(kind string) {
	if m == nil {
		return
	}
	if kind == "" {
		m.ScheduleCommits.WithLabelValues(m.serviceName, "ok").Inc()
		return
	}
	m.ScheduleCommits.WithLabelValues(m.serviceName, "rejected").Inc()
	m.ValidationFailures.WithLabelValues(m.serviceName, kind).Inc()
}

// RecordCacheLookup учитывает попадание или промах кэша
func (m *Metrics) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(m.serviceName, result).Inc()
}

package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор prometheus-коллекторов сервиса.
// Все методы безопасны для nil-получателя: если метрики выключены, вызовы ничего не делают.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration   *prometheus.HistogramVec
	dbOpenConnections prometheus.Gauge
	dbInUse           prometheus.Gauge
	dbIdle            prometheus.Gauge
	dbWaitCount       prometheus.Gauge

	availabilityDays      *prometheus.CounterVec
	reconciliationResults *prometheus.CounterVec
	paymentMismatches     prometheus.Counter
	normalizedBookings    *prometheus.CounterVec
	dateParseFallbacks    *prometheus.CounterVec
	paymentActions        *prometheus.GaugeVec
}

// New создает и регистрирует коллекторы в собственном registry
func New(serviceName string) *Metrics {
	ns := namespace(serviceName)
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "db_query_duration_seconds",
			Help:      "Database query latency.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		dbOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_open_connections",
			Help:      "Number of established connections.",
		}),
		dbInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_in_use_connections",
			Help:      "Number of connections currently in use.",
		}),
		dbIdle: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_idle_connections",
			Help:      "Number of idle connections.",
		}),
		dbWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_wait_count",
			Help:      "Total number of connections waited for.",
		}),
		availabilityDays: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "availability_days_total",
			Help:      "Resolved boat days by availability status.",
		}, []string{"status"}),
		reconciliationResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "reconciliation_results_total",
			Help:      "Charter reconciliations by status and urgency.",
		}, []string{"status", "urgency"}),
		paymentMismatches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "payment_mismatch_warnings_total",
			Help:      "Charters whose cash and card payments do not sum to the paid amount.",
		}),
		normalizedBookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "normalized_bookings_total",
			Help:      "Bookings mapped to the canonical shape by schema variant.",
		}, []string{"variant"}),
		dateParseFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "date_parse_fallbacks_total",
			Help:      "Legacy rows whose date could not be parsed.",
		}, []string{"variant"}),
		paymentActions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "payment_actions",
			Help:      "Charters needing balance collection at the last digest run, by urgency.",
		}, []string{"urgency"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbOpenConnections,
		m.dbInUse,
		m.dbIdle,
		m.dbWaitCount,
		m.availabilityDays,
		m.reconciliationResults,
		m.paymentMismatches,
		m.normalizedBookings,
		m.dateParseFallbacks,
		m.paymentActions,
	)

	return m
}

// Handler отдает метрики в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry нужен тестам для чтения значений
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil && err != sql.ErrNoRows {
		status = "error"
	}
	m.dbQueryDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

func (m *Metrics) SetDBStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbOpenConnections.Set(float64(stats.OpenConnections))
	m.dbInUse.Set(float64(stats.InUse))
	m.dbIdle.Set(float64(stats.Idle))
	m.dbWaitCount.Set(float64(stats.WaitCount))
}

func (m *Metrics) ObserveAvailability(status string) {
	if m == nil {
		return
	}
	m.availabilityDays.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveReconciliation(status, urgency string, mismatch bool) {
	if m == nil {
		return
	}
	m.reconciliationResults.WithLabelValues(status, urgency).Inc()
	if mismatch {
		m.paymentMismatches.Inc()
	}
}

func (m *Metrics) ObserveNormalization(variant string, dateFallback bool) {
	if m == nil {
		return
	}
	m.normalizedBookings.WithLabelValues(variant).Inc()
	if dateFallback {
		m.dateParseFallbacks.WithLabelValues(variant).Inc()
	}
}

// SetPaymentActions выставляет число чартеров, требующих действия, по срочности
func (m *Metrics) SetPaymentActions(urgency string, count int) {
	if m == nil {
		return
	}
	m.paymentActions.WithLabelValues(urgency).Set(float64(count))
}

func namespace(serviceName string) string {
	ns := strings.ToLower(strings.TrimSpace(serviceName))
	ns = strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(ns)
	if ns == "" {
		return "charter_service"
	}
	return ns
}

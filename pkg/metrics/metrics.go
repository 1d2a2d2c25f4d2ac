package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
// Все методы безопасно вызывать на nil (метрики выключены)
type Metrics struct {
	service string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration     *prometheus.HistogramVec
	DBQueryErrors       *prometheus.CounterVec
	DBOpenConnections   *prometheus.GaugeVec
	DBInUseConnections  *prometheus.GaugeVec
	DBIdleConnections   *prometheus.GaugeVec
	DBWaitCount         *prometheus.GaugeVec
	TransactionsTotal   *prometheus.CounterVec
	TransactionRetries  *prometheus.CounterVec

	SlotQueriesTotal       *prometheus.CounterVec
	BookingsCommittedTotal *prometheus.CounterVec
	BookingConflictsTotal  *prometheus.CounterVec
}

// New регистрирует метрики в глобальном registry prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в переданном registry
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		service: serviceName,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),
		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),
		DBOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),
		DBInUseConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		DBIdleConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		DBWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),
		TransactionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "db_transactions_total",
			Help: "Total number of transactions by outcome",
		}, []string{"service", "outcome"}),
		TransactionRetries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "db_transaction_retries_total",
			Help: "Total number of retried serializable transactions",
		}, []string{"service"}),

		SlotQueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduling_slot_queries_total",
			Help: "Total number of available slot calculations",
		}, []string{"service"}),
		BookingsCommittedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduling_bookings_committed_total",
			Help: "Total number of committed appointments",
		}, []string{"service"}),
		BookingConflictsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduling_booking_conflicts_total",
			Help: "Total number of rejected bookings by reason",
		}, []string{"service", "reason"}),
	}
}

// Service имя сервиса, которым помечаются метрики
func (m *Metrics) Service() string {
	if m == nil {
		return ""
	}
	return m.service
}

func (m *Metrics) IncSlotQuery() {
	if m == nil {
		return
	}
	m.SlotQueriesTotal.WithLabelValues(m.service).Inc()
}

func (m *Metrics) IncBookingCommitted() {
	if m == nil {
		return
	}
	m.BookingsCommittedTotal.WithLabelValues(m.service).Inc()
}

func (m *Metrics) IncBookingConflict(reason string) {
	if m == nil {
		return
	}
	m.BookingConflictsTotal.WithLabelValues(m.service, reason).Inc()
}

func (m *Metrics) IncTransaction(outcome string) {
	if m == nil {
		return
	}
	m.TransactionsTotal.WithLabelValues(m.service, outcome).Inc()
}

func (m *Metrics) IncTransactionRetry() {
	if m == nil {
		return
	}
	m.TransactionRetries.WithLabelValues(m.service).Inc()
}

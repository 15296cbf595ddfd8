package metrics

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

const (
	SourceFailureTimeout       = "timeout"
	SourceFailureCanceled      = "canceled"
	SourceFailurePanic         = "panic"
	SourceFailureQueryCanceled = "query_canceled"
	SourceFailureDB            = "db"
	SourceFailureUnknown       = "unknown"
)

const (
	LedgerRowFound       = "found"
	LedgerRowSynthesized = "synthesized"
)

// SourceLedger labels failures of the ledger read itself.
const SourceLedger = "ledger"

// OrdersMetrics tracks the health of the per-source fan-out scraped from /metrics.
type OrdersMetrics struct {
	sourceFailures *prometheus.CounterVec
	sourceDuration *prometheus.HistogramVec
	ledgerRows     *prometheus.CounterVec
	claims         *prometheus.CounterVec
}

var (
	ordersMetricsOnce sync.Once
	ordersMetrics     *OrdersMetrics
)

// Orders returns the singleton orders metrics registered on the default registry.
func Orders(cfg Config) *OrdersMetrics {
	ordersMetricsOnce.Do(func() {
		ordersMetrics = NewOrdersMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return ordersMetrics
}

// NewOrdersMetrics registers a fresh set of collectors; tests pass their own registry.
func NewOrdersMetrics(registerer prometheus.Registerer, cfg Config) *OrdersMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "orderhub"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	sourceFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "orderhub_source_failures_total",
		Help:        "Record sources that were skipped while listing orders, by reason.",
		ConstLabels: constLabels,
	}, []string{"source", "reason"})
	sourceDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:        "orderhub_source_duration_seconds",
		Help:        "Latency of one record source query including row mapping.",
		Buckets:     []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		ConstLabels: constLabels,
	}, []string{"source"})
	ledgerRows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "orderhub_ledger_rows_total",
		Help:        "Orders recovered from ledger credits, found in a store or synthesized.",
		ConstLabels: constLabels,
	}, []string{"outcome"})
	claims := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "orderhub_claims_total",
		Help:        "Booking claim attempts by outcome.",
		ConstLabels: constLabels,
	}, []string{"outcome"})

	registerer.MustRegister(sourceFailures, sourceDuration, ledgerRows, claims)

	return &OrdersMetrics{
		sourceFailures: sourceFailures,
		sourceDuration: sourceDuration,
		ledgerRows:     ledgerRows,
		claims:         claims,
	}
}

// IncSourceFailure counts one skipped source.
func (m *OrdersMetrics) IncSourceFailure(source, reason string) {
	if m == nil {
		return
	}
	m.sourceFailures.WithLabelValues(source, reason).Inc()
}

// ObserveSourceDuration records how long one source took.
func (m *OrdersMetrics) ObserveSourceDuration(source string, d time.Duration) {
	if m == nil {
		return
	}
	m.sourceDuration.WithLabelValues(source).Observe(d.Seconds())
}

// IncLedgerRow counts one ledger-derived row.
func (m *OrdersMetrics) IncLedgerRow(outcome string) {
	if m == nil {
		return
	}
	m.ledgerRows.WithLabelValues(outcome).Inc()
}

// IncClaim counts one claim attempt.
func (m *OrdersMetrics) IncClaim(outcome string) {
	if m == nil {
		return
	}
	m.claims.WithLabelValues(outcome).Inc()
}

// ClassifySourceFailure maps a source error to a low-cardinality reason.
func ClassifySourceFailure(err error) string {
	if err == nil {
		return SourceFailureUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return SourceFailureTimeout
	}
	if errors.Is(err, context.Canceled) {
		return SourceFailureCanceled
	}
	if hasPGCode(err, "57014") {
		return SourceFailureQueryCanceled
	}
	if isDBError(err) {
		return SourceFailureDB
	}
	return SourceFailureUnknown
}

func hasPGCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

func isDBError(err error) bool {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false
	}
	if errors.Is(err, gorm.ErrInvalidDB) ||
		errors.Is(err, gorm.ErrInvalidTransaction) ||
		errors.Is(err, gorm.ErrInvalidField) ||
		errors.Is(err, gorm.ErrInvalidData) ||
		errors.Is(err, gorm.ErrUnsupportedDriver) ||
		errors.Is(err, gorm.ErrInvalidValue) ||
		errors.Is(err, gorm.ErrNotImplemented) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr)
}

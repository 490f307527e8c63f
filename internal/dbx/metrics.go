package dbx

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by Instrumented handles.
type Metrics struct {
	queryDuration *prometheus.HistogramVec
	queryErrors   *prometheus.CounterVec
}

// NewMetrics creates the query collectors and registers them on reg
// (prometheus.DefaultRegisterer when nil). Registering twice reuses the
// collectors that are already in place.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "identity_db_query_duration_seconds",
		Help:    "Duration of identity store SQL statements.",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
	}, []string{"op"})

	errs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "identity_db_query_errors_total",
		Help: "Identity store SQL statements that returned an error.",
	}, []string{"op"})

	m := &Metrics{queryDuration: duration, queryErrors: errs}

	if err := reg.Register(duration); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		m.queryDuration = are.ExistingCollector.(*prometheus.HistogramVec)
	}
	if err := reg.Register(errs); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		m.queryErrors = are.ExistingCollector.(*prometheus.CounterVec)
	}

	return m, nil
}

func (m *Metrics) observe(op string, start time.Time, err error) {
	m.queryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		m.queryErrors.WithLabelValues(op).Inc()
	}
}

// Instrumented is a DBTX that records statement durations and failures.
type Instrumented struct {
	inner   DBTX
	metrics *Metrics
}

// Instrument wraps db so that every statement is observed by m. A nil m
// returns db unchanged.
func Instrument(db DBTX, m *Metrics) DBTX {
	if m == nil {
		return db
	}
	return &Instrumented{inner: db, metrics: m}
}

func (i *Instrumented) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := i.inner.ExecContext(ctx, query, args...)
	i.metrics.observe("exec", start, err)
	return res, err
}

func (i *Instrumented) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := i.inner.QueryContext(ctx, query, args...)
	i.metrics.observe("query", start, err)
	return rows, err
}

// QueryRowContext only records the duration; row errors surface on Scan.
func (i *Instrumented) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := i.inner.QueryRowContext(ctx, query, args...)
	i.metrics.observe("query_row", start, row.Err())
	return row
}

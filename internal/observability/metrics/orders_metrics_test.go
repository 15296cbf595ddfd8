package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"gorm.io/gorm"
)

func TestClassifySourceFailure(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{name: "deadline", err: fmt.Errorf("find: %w", context.DeadlineExceeded), want: SourceFailureTimeout},
		{name: "canceled", err: context.Canceled, want: SourceFailureCanceled},
		{name: "query_canceled", err: &pgconn.PgError{Code: "57014"}, want: SourceFailureQueryCanceled},
		{name: "pg", err: &pgconn.PgError{Code: "42P01"}, want: SourceFailureDB},
		{name: "gorm", err: gorm.ErrInvalidDB, want: SourceFailureDB},
		{name: "unknown", err: errors.New("boom"), want: SourceFailureUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifySourceFailure(tc.err); got != tc.want {
				t.Fatalf("expected reason %q, got %q", tc.want, got)
			}
		})
	}
}

func TestIncSourceFailure(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewOrdersMetrics(registry, Config{
		ServiceName: "orderhub",
		Environment: "test",
	})

	metrics.IncSourceFailure("hotel", SourceFailureTimeout)
	metrics.IncSourceFailure("hotel", SourceFailureTimeout)
	metrics.IncClaim("linked")

	got := testutil.ToFloat64(metrics.sourceFailures.WithLabelValues("hotel", SourceFailureTimeout))
	if got != 2 {
		t.Fatalf("expected failure count 2, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.claims.WithLabelValues("linked")); got != 1 {
		t.Fatalf("expected claim count 1, got %v", got)
	}

	var nilMetrics *OrdersMetrics
	nilMetrics.IncSourceFailure("hotel", SourceFailurePanic)
}

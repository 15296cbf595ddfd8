package service

import (
	"context"
	"strings"
	"time"

	bookingdomain "github.com/smallbiznis/orderhub/internal/booking/domain"
	"github.com/smallbiznis/orderhub/internal/identity"
	"github.com/smallbiznis/orderhub/internal/observability/tracing"
	"github.com/smallbiznis/orderhub/internal/orders/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func (s *Service) ListOrders(ctx context.Context, caller identity.Identity) ([]bookingdomain.OrderView, error) {
	if strings.TrimSpace(caller.OwnerID) == "" {
		return nil, domain.ErrInvalidIdentity
	}

	ctx, span := s.tracer.Start(ctx, "orders.list")
	defer span.End()

	cfg := s.config.Get()
	stores := s.stores(cfg)
	normalized := identity.Normalize(caller, cfg.PseudoEmailDomain)
	match := bookingdomain.Match{
		OwnerID:      normalized.OwnerID,
		Emails:       normalized.Emails,
		Phones:       normalized.Phones,
		PseudoEmails: normalized.PseudoEmails,
	}

	// rows without a usable timestamp all fall back to the same instant
	now := s.clock.Now()
	direct := s.fanOut(ctx, stores, match, cfg.SourceTimeout, now)
	reconciled := s.reconcile(ctx, stores, normalized.OwnerID, cfg, now)
	orders := mergeOrders(direct, reconciled)

	span.SetAttributes(tracing.SafeAttributes(attribute.Int("orders.count", len(orders)))...)
	s.log.Debug("orders listed",
		zap.Int("direct", len(direct)),
		zap.Int("ledger", len(reconciled)),
		zap.Int("returned", len(orders)),
	)
	return orders, nil
}

// fanOut queries every store concurrently. A failing store contributes nothing;
// results keep the fixed category order.
func (s *Service) fanOut(ctx context.Context, stores []bookingdomain.Store, match bookingdomain.Match, timeout time.Duration, now time.Time) []bookingdomain.OrderView {
	results := make([][]bookingdomain.OrderView, len(stores))

	var g errgroup.Group
	for i, store := range stores {
		g.Go(func() error {
			results[i] = s.fetchSource(ctx, store, match, timeout, now)
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, rows := range results {
		total += len(rows)
	}
	out := make([]bookingdomain.OrderView, 0, total)
	for _, rows := range results {
		out = append(out, rows...)
	}
	return out
}

func (s *Service) fetchSource(ctx context.Context, store bookingdomain.Store, match bookingdomain.Match, timeout time.Duration, now time.Time) []bookingdomain.OrderView {
	source := string(store.Category())
	ctx, span := s.tracer.Start(ctx, "orders.source",
		trace.WithAttributes(tracing.SafeAttributes(attribute.String("orders.source", source))...),
	)
	defer span.End()

	start := time.Now()
	records, err := bounded(ctx, timeout, func(ctx context.Context) ([]bookingdomain.Record, error) {
		return store.FindMany(ctx, match)
	})
	s.metrics.ObserveSourceDuration(source, time.Since(start))
	if err != nil {
		span.RecordError(tracing.SafeError(err))
		span.SetStatus(codes.Error, failureReason(err))
		s.sourceFailed(source, "find_many", err)
		return nil
	}

	views, err := guard(func() ([]bookingdomain.OrderView, error) {
		views := make([]bookingdomain.OrderView, 0, len(records))
		for _, r := range records {
			views = append(views, s.mapper.MapAt(ctx, r, now))
		}
		return views, nil
	})
	if err != nil {
		span.SetStatus(codes.Error, failureReason(err))
		s.sourceFailed(source, "map", err)
		return nil
	}
	span.SetAttributes(tracing.SafeAttributes(attribute.Int("orders.count", len(views)))...)
	return views
}

package service

import (
	"context"
	"strings"
	"time"

	bookingdomain "github.com/smallbiznis/orderhub/internal/booking/domain"
	"github.com/smallbiznis/orderhub/internal/config"
	ledgerdomain "github.com/smallbiznis/orderhub/internal/ledger/domain"
	"github.com/smallbiznis/orderhub/internal/money"
	"github.com/smallbiznis/orderhub/internal/observability/metrics"
	"golang.org/x/sync/errgroup"
)

// reconcile recovers bookings the caller earned ledger credits on. Ids are
// resolved concurrently; each id probes the stores sequentially in fixed order.
func (s *Service) reconcile(ctx context.Context, stores []bookingdomain.Store, accountID string, cfg config.OrdersConfig, now time.Time) []bookingdomain.OrderView {
	ctx, span := s.tracer.Start(ctx, "orders.reconcile")
	defer span.End()

	entries, err := bounded(ctx, cfg.SourceTimeout, func(ctx context.Context) ([]ledgerdomain.Entry, error) {
		return s.ledger.ListCredits(ctx, accountID)
	})
	if err != nil {
		s.sourceFailed(metrics.SourceLedger, "list_credits", err)
		return nil
	}

	pending := firstEntryPerBooking(entries)
	if len(pending) == 0 {
		return nil
	}

	rows := make([]bookingdomain.OrderView, len(pending))
	var g errgroup.Group
	g.SetLimit(max(cfg.ReconcileConcurrency, 1))
	for i, entry := range pending {
		g.Go(func() error {
			rows[i] = s.resolveCredit(ctx, stores, entry, cfg.SourceTimeout, now)
			return nil
		})
	}
	_ = g.Wait()
	return rows
}

// firstEntryPerBooking keeps the first entry of each distinct booking id, in order.
func firstEntryPerBooking(entries []ledgerdomain.Entry) []ledgerdomain.Entry {
	seen := make(map[string]struct{}, len(entries))
	out := make([]ledgerdomain.Entry, 0, len(entries))
	for _, e := range entries {
		id := strings.TrimSpace(e.BookingID)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		e.BookingID = id
		out = append(out, e)
	}
	return out
}

func (s *Service) resolveCredit(ctx context.Context, stores []bookingdomain.Store, entry ledgerdomain.Entry, timeout time.Duration, now time.Time) bookingdomain.OrderView {
	if record := s.findByID(ctx, stores, entry.BookingID, timeout); record != nil {
		view, err := guard(func() (bookingdomain.OrderView, error) {
			return s.mapper.MapAt(ctx, record, now), nil
		})
		if err == nil {
			view.Source = bookingdomain.SourceLedger
			s.metrics.IncLedgerRow(metrics.LedgerRowFound)
			return view
		}
		s.sourceFailed(string(record.Schema().Category), "map", err)
	}
	s.metrics.IncLedgerRow(metrics.LedgerRowSynthesized)
	return s.synthesize(entry, now)
}

// findByID returns the first store's hit. A failing or slow store is skipped;
// each lookup gets its own timeout.
func (s *Service) findByID(ctx context.Context, stores []bookingdomain.Store, id string, timeout time.Duration) bookingdomain.Record {
	for _, store := range stores {
		record, err := bounded(ctx, timeout, func(ctx context.Context) (bookingdomain.Record, error) {
			return store.FindByID(ctx, id)
		})
		if err != nil {
			s.sourceFailed(string(store.Category()), "find_by_id", err)
			continue
		}
		if record != nil {
			return record
		}
	}
	return nil
}

// synthesize builds a placeholder from the ledger entry for a booking no store has.
func (s *Service) synthesize(entry ledgerdomain.Entry, now time.Time) bookingdomain.OrderView {
	meta := entry.BookingMeta()

	category := bookingdomain.Category(meta.Category)
	if category == "" {
		category = bookingdomain.CategoryOrder
	}
	title := meta.Title
	if title == "" {
		title = bookingdomain.DefaultTitle(bookingdomain.CategoryOrder)
	}
	createdAt := now.UTC()
	if entry.CreatedAt != nil && !entry.CreatedAt.IsZero() {
		createdAt = entry.CreatedAt.UTC()
	}

	return bookingdomain.OrderView{
		ID:               entry.BookingID,
		Category:         category,
		Title:            title,
		SubTitle:         meta.SubTitle,
		Amount:           money.ParseAmount(entry.Amount),
		Email:            "",
		PaymentReference: meta.PaymentReference,
		CreatedAt:        createdAt,
		PaymentStatus:    bookingdomain.PaymentStatusPaid,
		Canceled:         false,
		Source:           bookingdomain.SourceLedgerSynthesized,
	}
}

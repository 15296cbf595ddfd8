package mapper

import (
	"context"
	"strings"
	"time"

	"github.com/smallbiznis/orderhub/internal/booking/domain"
	"github.com/smallbiznis/orderhub/internal/clock"
	"github.com/smallbiznis/orderhub/internal/money"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Catalog domain.Catalog
	Clock   clock.Clock
	Log     *zap.Logger
}

// Mapper projects category records into OrderViews.
type Mapper struct {
	catalog domain.Catalog
	clock   clock.Clock
	log     *zap.Logger
}

func New(p Params) *Mapper {
	return &Mapper{
		catalog: p.Catalog,
		clock:   p.Clock,
		log:     p.Log.Named("booking.mapper"),
	}
}

// Map never fails: unresolved titles fall back to the category label and
// unparseable amounts become 0.
func (m *Mapper) Map(ctx context.Context, r domain.Record) domain.OrderView {
	return m.MapAt(ctx, r, m.clock.Now())
}

// MapAt is Map with the fallback creation time fixed to now, so rows mapped in
// one listing share the same fallback.
func (m *Mapper) MapAt(ctx context.Context, r domain.Record, now time.Time) domain.OrderView {
	schema := r.Schema()
	dates := r.Dates()

	view := domain.OrderView{
		ID:               r.RecordID(),
		Category:         schema.Category,
		Title:            m.title(ctx, schema.Category, r.PrimaryEntity()),
		Amount:           amount(r),
		Email:            r.OwnerEmail(),
		PaymentReference: r.ResolvedReference(),
		CreatedAt:        domain.CreatedAt(r, now),
		PaymentStatus:    r.PaymentStatus(),
		Canceled:         r.Canceled(),
		CheckIn:          dates.CheckIn,
		CheckOut:         dates.CheckOut,
		EventDate:        dates.EventDate,
		ReservationDate:  dates.ReservationDate,
		ReservationTime:  dates.ReservationTime,
		TourDate:         dates.TourDate,
		Source:           domain.SourceDirect,
	}

	if hotel, ok := r.(*domain.HotelBooking); ok {
		view.SubTitle = m.hotelSubTitle(ctx, hotel)
	}
	return view
}

func (m *Mapper) title(ctx context.Context, category domain.Category, ref domain.EntityRef) string {
	if name, ok := m.lookup(ctx, ref); ok {
		return name
	}
	return domain.DefaultTitle(category)
}

func (m *Mapper) hotelSubTitle(ctx context.Context, b *domain.HotelBooking) string {
	if name, ok := m.lookup(ctx, b.RoomEntity()); ok {
		return name
	}
	return b.RoomSubTitle()
}

func (m *Mapper) lookup(ctx context.Context, ref domain.EntityRef) (string, bool) {
	if m.catalog == nil || strings.TrimSpace(ref.ID) == "" {
		return "", false
	}
	res, err := m.catalog.Name(ctx, ref)
	if err != nil {
		m.log.Debug("entity lookup failed",
			zap.String("kind", string(ref.Kind)),
			zap.String("id", ref.ID),
			zap.Error(err),
		)
		return "", false
	}
	if !res.Found || strings.TrimSpace(res.Name) == "" {
		return "", false
	}
	return res.Name, true
}

func amount(r domain.Record) float64 {
	total := money.PickAmount(r.AmountCandidates()...)
	if total > 0 {
		return total
	}

	hotel, ok := r.(*domain.HotelBooking)
	if !ok || len(hotel.Rooms) == 0 {
		return total
	}
	lines := make([]any, 0, len(hotel.Rooms))
	for _, line := range hotel.Rooms {
		lines = append(lines, line.LineAmount())
	}
	if sum := money.Sum(lines...); sum > 0 {
		return sum
	}
	return total
}

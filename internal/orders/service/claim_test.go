package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	bookingdomain "github.com/smallbiznis/orderhub/internal/booking/domain"
	"github.com/smallbiznis/orderhub/internal/identity"
	"github.com/smallbiznis/orderhub/internal/orders/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func contactEmail(t *testing.T, f *fixture, model any, id string) string {
	t.Helper()
	require.NoError(t, f.db.Where("id = ?", id).Take(model).Error)
	return model.(bookingdomain.Record).OwnerEmail()
}

func TestClaimSessionEmailWins(t *testing.T) {
	f := newFixture(t)
	f.create(t, &bookingdomain.EventBooking{ID: "e-1", ContactEmail: "guest@example.com", PaymentReference: "PSK-100", CreatedAt: at(1)})

	res, err := f.service().ClaimBooking(context.Background(), domain.ClaimRequest{
		Reference: " PSK-100 ",
		Email:     "attacker@example.com",
		Session:   &identity.Identity{OwnerID: "user-1", Email: "Ada@Example.com"},
	})
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", contactEmail(t, f, &bookingdomain.EventBooking{}, "e-1"))
	assert.Equal(t, "Booking linked to your account. Contact email changed from guest@example.com to ada@example.com.", res.Message)
	assert.Equal(t, "ada@example.com", res.Booking.Email)
	assert.Equal(t, bookingdomain.CategoryEvent, res.Booking.Category)
	assert.True(t, res.EmailChanged)
	assert.False(t, res.Fuzzy)
}

func TestClaimAnonymousUsesSuppliedEmail(t *testing.T) {
	f := newFixture(t)
	f.create(t, &bookingdomain.TourBooking{ID: "t-1", UserEmail: "old@example.com", TxRef: "FLW-9", CreatedAt: at(1)})

	res, err := f.service().ClaimBooking(context.Background(), domain.ClaimRequest{Reference: "FLW-9", Email: "New@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", contactEmail(t, f, &bookingdomain.TourBooking{}, "t-1"))
	assert.Equal(t, "new@example.com", res.Booking.Email)
}

func TestClaimAlreadyMatched(t *testing.T) {
	f := newFixture(t)
	f.create(t, &bookingdomain.ChopsOrder{ID: "c-1", Email: "ada@example.com", PaymentReference: "CH-1", CreatedAt: at(1)})

	res, err := f.service().ClaimBooking(context.Background(), domain.ClaimRequest{Reference: "CH-1", Email: "ADA@example.com"})
	require.NoError(t, err)
	assert.Equal(t, domain.MessageAlreadyMatched, res.Message)
	assert.False(t, res.EmailChanged)
}

func TestClaimMatchesNestedGatewayReference(t *testing.T) {
	f := newFixture(t)
	f.create(t, &bookingdomain.GiftOrder{
		ID:         "g-1",
		BuyerEmail: "guest@example.com",
		Metadata:   datatypes.JSONMap{"paystack": map[string]any{"reference": "T123456789"}},
		CreatedAt:  at(1),
	})

	res, err := f.service().ClaimBooking(context.Background(), domain.ClaimRequest{Reference: "T123456789", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "g-1", res.Booking.ID)
	assert.False(t, res.Fuzzy)
}

func TestClaimFuzzyFallback(t *testing.T) {
	f := newFixture(t)
	f.create(t,
		&bookingdomain.RestaurantReservation{ID: "r-1", CustomerEmail: "guest@example.com", Reference: "HP-RES-17000000001", CreatedAt: at(1)},
		&bookingdomain.RestaurantReservation{ID: "r-2", CustomerEmail: "other@example.com", Reference: "HP-RES-29999999999", CreatedAt: at(2)},
	)

	res, err := f.service().ClaimBooking(context.Background(), domain.ClaimRequest{Reference: "17000000001", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.True(t, res.Fuzzy)
	assert.Equal(t, "r-1", res.Booking.ID)
	assert.Equal(t, "HP-RES-17000000001", res.Booking.PaymentReference)
	assert.Equal(t, "other@example.com", contactEmail(t, f, &bookingdomain.RestaurantReservation{}, "r-2"))
}

func TestClaimExactBeatsFuzzyInEarlierStore(t *testing.T) {
	f := newFixture(t)
	f.create(t,
		// Fuzzy candidate in the first store probed.
		&bookingdomain.HotelBooking{ID: "h-1", Email: "a@example.com", PaymentReference: "XREF-123456-OLD", CreatedAt: at(1)},
		// Exact match in a later store.
		&bookingdomain.GiftOrder{ID: "g-1", BuyerEmail: "b@example.com", Reference: "REF-123456", CreatedAt: at(1)},
	)

	res, err := f.service().ClaimBooking(context.Background(), domain.ClaimRequest{Reference: "REF-123456", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "g-1", res.Booking.ID)
	assert.False(t, res.Fuzzy)
}

func TestClaimShortReferenceSkipsFuzzy(t *testing.T) {
	f := newFixture(t)
	f.create(t, &bookingdomain.RestaurantReservation{ID: "r-1", Reference: "HP-RES-17000000001", CreatedAt: at(1)})

	_, err := f.service().ClaimBooking(context.Background(), domain.ClaimRequest{Reference: "0001", Email: "ada@example.com"})
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestClaimValidation(t *testing.T) {
	f := newFixture(t)
	svc := f.service()

	_, err := svc.ClaimBooking(context.Background(), domain.ClaimRequest{Reference: "  ", Email: "ada@example.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidReference)

	_, err = svc.ClaimBooking(context.Background(), domain.ClaimRequest{Reference: "PSK-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.ClaimBooking(context.Background(), domain.ClaimRequest{Reference: "PSK-1", Email: "not-an-email"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	// A session without an email falls back to the supplied one.
	_, err = svc.ClaimBooking(context.Background(), domain.ClaimRequest{
		Reference: "PSK-1",
		Email:     "ada@example.com",
		Session:   &identity.Identity{OwnerID: "user-1"},
	})
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestClaimSkipsFailingStores(t *testing.T) {
	f := newFixture(t)
	f.create(t, &bookingdomain.GiftOrder{ID: "g-1", PaymentReference: "PSK-500", CreatedAt: at(1)})
	f.replace(bookingdomain.CategoryHotel, func(s bookingdomain.Store) bookingdomain.Store {
		return faultyStore{Store: s, panics: true}
	})
	f.replace(bookingdomain.CategoryShortlet, func(s bookingdomain.Store) bookingdomain.Store {
		return faultyStore{Store: s, err: errors.New("shortlet store offline")}
	})

	res, err := f.service().ClaimBooking(context.Background(), domain.ClaimRequest{Reference: "PSK-500", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "g-1", res.Booking.ID)
}

func TestClaimBoundsEachLookupBySourceTimeout(t *testing.T) {
	f := newFixture(t)
	f.cfg.SourceTimeout = 50 * time.Millisecond
	f.create(t, &bookingdomain.GiftOrder{ID: "g-1", PaymentReference: "PSK-900100", CreatedAt: at(1)})
	f.replace(bookingdomain.CategoryHotel, func(s bookingdomain.Store) bookingdomain.Store {
		return faultyStore{Store: s, blocks: true}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	// the fuzzy pass visits the blocked store a second time
	res, err := f.service().ClaimBooking(ctx, domain.ClaimRequest{Reference: "900100", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, "g-1", res.Booking.ID)
	assert.True(t, res.Fuzzy)
}

// readOnlyStore finds records but cannot write them.
type readOnlyStore struct {
	bookingdomain.Store
}

func (readOnlyStore) UpdateOwnerEmail(context.Context, string, string) error {
	return fmt.Errorf("attempt to write a readonly database")
}

func TestClaimPersistFailure(t *testing.T) {
	f := newFixture(t)
	f.create(t, &bookingdomain.ShortletBooking{ID: "s-1", Email: "guest@example.com", Ref: "SL-42", CreatedAt: at(1)})
	f.replace(bookingdomain.CategoryShortlet, func(s bookingdomain.Store) bookingdomain.Store {
		return readOnlyStore{Store: s}
	})

	_, err := f.service().ClaimBooking(context.Background(), domain.ClaimRequest{Reference: "SL-42", Email: "ada@example.com"})
	assert.ErrorIs(t, err, domain.ErrPersistFailed)
	assert.Equal(t, "guest@example.com", contactEmail(t, f, &bookingdomain.ShortletBooking{}, "s-1"))
}

func TestTargetEmail(t *testing.T) {
	assert.Equal(t, "ada@example.com", targetEmail(domain.ClaimRequest{Email: " ADA@example.com "}))
	assert.Equal(t, "s@example.com", targetEmail(domain.ClaimRequest{
		Email:   "ada@example.com",
		Session: &identity.Identity{Email: "S@example.com"},
	}))
	assert.Empty(t, targetEmail(domain.ClaimRequest{Email: "ada"}))
}

package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/orderhub/internal/booking/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(domain.Models()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, kind := range domain.EntityKinds {
		stmt := fmt.Sprintf("CREATE TABLE %s (id TEXT PRIMARY KEY, name TEXT)", kind)
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create %s: %v", kind, err)
		}
	}
	return db
}

func at(minutes int) *time.Time {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(minutes) * time.Minute)
	return &ts
}

func TestFindManySmartMatch(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	rows := []domain.ShortletBooking{
		{ID: "s-owner", UserID: "user-1", CreatedAt: at(1)},
		{ID: "s-email", Email: "Ada@Example.com", CreatedAt: at(2)},
		{ID: "s-phone", PhoneNumber: "2348012345678", CreatedAt: at(3)},
		{ID: "s-pseudo", Email: "08012345678@phone.orderhub.local", CreatedAt: at(4)},
		{ID: "s-other", UserID: "user-2", Email: "someone@else.com", PhoneNumber: "08099999999", CreatedAt: at(5)},
	}
	require.NoError(t, db.Create(&rows).Error)

	store := NewStore[domain.ShortletBooking](db)
	assert.Equal(t, domain.CategoryShortlet, store.Category())

	t.Run("matches every identity form", func(t *testing.T) {
		got, err := store.FindMany(ctx, domain.Match{
			OwnerID:      "user-1",
			Emails:       []string{"ada@example.com"},
			Phones:       []string{"08012345678", "2348012345678"},
			PseudoEmails: []string{"08012345678@phone.orderhub.local"},
		})
		require.NoError(t, err)

		ids := make([]string, 0, len(got))
		for _, r := range got {
			ids = append(ids, r.RecordID())
		}
		assert.Equal(t, []string{"s-pseudo", "s-phone", "s-email", "s-owner"}, ids)
	})

	t.Run("empty identity matches nothing", func(t *testing.T) {
		got, err := store.FindMany(ctx, domain.Match{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestFindByID(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&domain.EventBooking{ID: "evt-1", ContactEmail: "a@b.co"}).Error)
	store := NewStore[domain.EventBooking](db)

	got, err := store.FindByID(ctx, "evt-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a@b.co", got.OwnerEmail())

	missing, err := store.FindByID(ctx, "evt-404")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	_, err = store.FindByID(ctx, " ")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestFindByReference(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	rows := []domain.TourBooking{
		{ID: "tour-col", TxRef: "TX-123", CreatedAt: at(1)},
		{ID: "tour-meta", Metadata: datatypes.JSONMap{"paystack": map[string]any{"reference": "PS-999"}}, CreatedAt: at(2)},
	}
	require.NoError(t, db.Create(&rows).Error)
	store := NewStore[domain.TourBooking](db)

	got, err := store.FindByReference(ctx, "TX-123")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "tour-col", got.RecordID())

	got, err = store.FindByReference(ctx, "PS-999")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "tour-meta", got.RecordID())
	assert.Equal(t, "PS-999", got.ResolvedReference())

	got, err = store.FindByReference(ctx, "TX-12")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestSearchReference(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	rows := []domain.RestaurantReservation{
		{ID: "res-old", Reference: "HP-RES-17000000001", CreatedAt: at(1)},
		{ID: "res-new", Reference: "hp-res-17000000001-b", CreatedAt: at(5)},
		{ID: "res-pct", Reference: "100%OFF", CreatedAt: at(2)},
	}
	require.NoError(t, db.Create(&rows).Error)
	store := NewStore[domain.RestaurantReservation](db)

	got, err := store.SearchReference(ctx, "17000000001")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "res-new", got.RecordID())

	got, err = store.SearchReference(ctx, "HP-RES")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "res-new", got.RecordID())

	got, err = store.SearchReference(ctx, "0%O")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "res-pct", got.RecordID())

	got, err = store.SearchReference(ctx, "_")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateOwnerEmail(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&domain.GiftOrder{ID: "gift-1", BuyerEmail: "old@x.com"}).Error)
	store := NewStore[domain.GiftOrder](db)

	require.NoError(t, store.UpdateOwnerEmail(ctx, "gift-1", "new@x.com"))

	var row domain.GiftOrder
	require.NoError(t, db.First(&row, "id = ?", "gift-1").Error)
	assert.Equal(t, "new@x.com", row.BuyerEmail)

	assert.ErrorIs(t, store.UpdateOwnerEmail(ctx, "", "new@x.com"), domain.ErrInvalidID)
}

func TestStoresFollowProbeOrder(t *testing.T) {
	db := setupTestDB(t)

	registry := domain.NewRegistry(Stores(db)...)
	got := make([]domain.Category, 0, len(domain.ProbeOrder))
	for _, s := range registry.Stores() {
		got = append(got, s.Category())
	}
	assert.Equal(t, domain.ProbeOrder, got)
}

func TestCatalogName(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	require.NoError(t, db.Exec("INSERT INTO hotels (id, name) VALUES (?, ?), (?, NULL)", "h-1", "Lagos Grand", "h-2").Error)

	catalog := NewCatalog(db)

	got, err := catalog.Name(ctx, domain.EntityRef{Kind: domain.EntityHotel, ID: "h-1"})
	require.NoError(t, err)
	assert.Equal(t, domain.Lookup{Name: "Lagos Grand", Found: true}, got)

	got, err = catalog.Name(ctx, domain.EntityRef{Kind: domain.EntityHotel, ID: "h-2"})
	require.NoError(t, err)
	assert.False(t, got.Found)

	got, err = catalog.Name(ctx, domain.EntityRef{Kind: domain.EntityHotel, ID: "h-404"})
	require.NoError(t, err)
	assert.False(t, got.Found)

	_, err = catalog.Name(ctx, domain.EntityRef{Kind: "users", ID: "u-1"})
	assert.ErrorIs(t, err, ErrUnknownEntity)
}

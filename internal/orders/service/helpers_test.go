package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	bookingdomain "github.com/smallbiznis/orderhub/internal/booking/domain"
	"github.com/smallbiznis/orderhub/internal/booking/mapper"
	bookingrepo "github.com/smallbiznis/orderhub/internal/booking/repository"
	"github.com/smallbiznis/orderhub/internal/clock"
	"github.com/smallbiznis/orderhub/internal/config"
	ledgerdomain "github.com/smallbiznis/orderhub/internal/ledger/domain"
	ledgerrepo "github.com/smallbiznis/orderhub/internal/ledger/repository"
	"github.com/smallbiznis/orderhub/internal/migration"
	"github.com/smallbiznis/orderhub/internal/observability/metrics"
	"github.com/smallbiznis/orderhub/pkg/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	db       *gorm.DB
	clock    *clock.FakeClock
	registry *prometheus.Registry
	cfg      config.OrdersConfig
	ledger   ledgerdomain.Repository
	stores   []bookingdomain.Store
	// tick advances the clock on every read when set.
	tick time.Duration
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(conn))

	return &fixture{
		db:       conn,
		clock:    clock.NewFakeClock(testNow),
		registry: prometheus.NewRegistry(),
		cfg:      config.DefaultOrdersConfig(),
		ledger:   ledgerrepo.New(conn),
		stores:   bookingrepo.Stores(conn),
	}
}

// replace swaps the store for category c, keeping probe order.
func (f *fixture) replace(c bookingdomain.Category, wrap func(bookingdomain.Store) bookingdomain.Store) {
	for i, s := range f.stores {
		if s.Category() == c {
			f.stores[i] = wrap(s)
		}
	}
}

func (f *fixture) service() *Service {
	var clk clock.Clock = f.clock
	if f.tick > 0 {
		clk = tickingClock{FakeClock: f.clock, step: f.tick}
	}
	m := mapper.New(mapper.Params{
		Catalog: bookingrepo.NewCatalog(f.db),
		Clock:   clk,
		Log:     zap.NewNop(),
	})
	return New(Params{
		Log:      zap.NewNop(),
		Clock:    clk,
		Registry: bookingdomain.NewRegistry(f.stores...),
		Mapper:   m,
		Ledger:   f.ledger,
		Config:   config.NewStaticOrdersConfigHolder(f.cfg),
		Metrics:  metrics.NewOrdersMetrics(f.registry, metrics.Config{ServiceName: "orderhub-test"}),
	}).(*Service)
}

func (f *fixture) create(t *testing.T, rows ...any) {
	t.Helper()
	for _, row := range rows {
		require.NoError(t, f.db.Create(row).Error)
	}
}

func (f *fixture) name(t *testing.T, kind bookingdomain.EntityKind, id, name string) {
	t.Helper()
	require.NoError(t, f.db.Table(string(kind)).Create(map[string]any{"id": id, "name": name}).Error)
}

// faultyStore fails every read and write of the wrapped store.
type faultyStore struct {
	bookingdomain.Store
	err    error
	panics bool
	blocks bool
}

func (f faultyStore) fail(ctx context.Context) error {
	if f.panics {
		panic("collection driver crashed")
	}
	if f.blocks {
		<-ctx.Done()
		return ctx.Err()
	}
	return f.err
}

func (f faultyStore) FindMany(ctx context.Context, _ bookingdomain.Match) ([]bookingdomain.Record, error) {
	return nil, f.fail(ctx)
}

func (f faultyStore) FindByID(ctx context.Context, _ string) (bookingdomain.Record, error) {
	return nil, f.fail(ctx)
}

func (f faultyStore) FindByReference(ctx context.Context, _ string) (bookingdomain.Record, error) {
	return nil, f.fail(ctx)
}

func (f faultyStore) SearchReference(ctx context.Context, _ string) (bookingdomain.Record, error) {
	return nil, f.fail(ctx)
}

func (f faultyStore) UpdateOwnerEmail(ctx context.Context, _, _ string) error {
	return f.fail(ctx)
}

// tickingClock moves forward by step after every read.
type tickingClock struct {
	*clock.FakeClock
	step time.Duration
}

func (c tickingClock) Now() time.Time {
	now := c.FakeClock.Now()
	c.Advance(c.step)
	return now
}

func at(minutes int) *time.Time {
	ts := testNow.Add(-24 * time.Hour).Add(time.Duration(minutes) * time.Minute)
	return &ts
}

func num(v float64) *float64 { return &v }

func str(v string) *string { return &v }

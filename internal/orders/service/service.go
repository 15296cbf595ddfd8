package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingdomain "github.com/smallbiznis/orderhub/internal/booking/domain"
	"github.com/smallbiznis/orderhub/internal/booking/mapper"
	"github.com/smallbiznis/orderhub/internal/clock"
	"github.com/smallbiznis/orderhub/internal/config"
	ledgerdomain "github.com/smallbiznis/orderhub/internal/ledger/domain"
	"github.com/smallbiznis/orderhub/internal/observability/metrics"
	"github.com/smallbiznis/orderhub/internal/orders/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const tracerName = "orderhub/orders"

type Params struct {
	fx.In

	Log      *zap.Logger
	Clock    clock.Clock
	Registry *bookingdomain.Registry
	Mapper   *mapper.Mapper
	Ledger   ledgerdomain.Repository
	Config   *config.OrdersConfigHolder
	Metrics  *metrics.OrdersMetrics `optional:"true"`
}

type Service struct {
	log      *zap.Logger
	clock    clock.Clock
	registry *bookingdomain.Registry
	mapper   *mapper.Mapper
	ledger   ledgerdomain.Repository
	config   *config.OrdersConfigHolder
	metrics  *metrics.OrdersMetrics
	tracer   trace.Tracer
}

func New(p Params) domain.Service {
	return &Service{
		log:      p.Log.Named("orders.service"),
		clock:    p.Clock,
		registry: p.Registry,
		mapper:   p.Mapper,
		ledger:   p.Ledger,
		config:   p.Config,
		metrics:  p.Metrics,
		tracer:   otel.Tracer(tracerName),
	}
}

// stores returns the enabled stores in probe order.
func (s *Service) stores(cfg config.OrdersConfig) []bookingdomain.Store {
	if len(cfg.DisabledSources) == 0 {
		return s.registry.Stores()
	}
	disabled := make(map[bookingdomain.Category]bool, len(cfg.DisabledSources))
	for _, store := range s.registry.Stores() {
		if cfg.IsDisabled(string(store.Category())) {
			disabled[store.Category()] = true
		}
	}
	return s.registry.Without(disabled).Stores()
}

var errSourcePanic = errors.New("source panicked")

// guard turns a panic inside a store call into an error.
func guard[T any](fn func() (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errSourcePanic, r)
		}
	}()
	return fn()
}

// bounded runs fn under guard with its own deadline of timeout.
func bounded[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return guard(func() (T, error) {
		return fn(ctx)
	})
}

func failureReason(err error) string {
	if errors.Is(err, errSourcePanic) {
		return metrics.SourceFailurePanic
	}
	return metrics.ClassifySourceFailure(err)
}

// sourceFailed logs and counts a contained per-source failure.
func (s *Service) sourceFailed(source, op string, err error) {
	reason := failureReason(err)
	s.metrics.IncSourceFailure(source, reason)
	s.log.Warn("order source failed",
		zap.String("source", source),
		zap.String("operation", op),
		zap.String("reason", reason),
		zap.Error(err),
	)
}

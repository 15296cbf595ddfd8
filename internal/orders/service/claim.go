package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	bookingdomain "github.com/smallbiznis/orderhub/internal/booking/domain"
	"github.com/smallbiznis/orderhub/internal/config"
	"github.com/smallbiznis/orderhub/internal/observability/tracing"
	"github.com/smallbiznis/orderhub/internal/orders/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

func (s *Service) ClaimBooking(ctx context.Context, req domain.ClaimRequest) (*domain.ClaimResult, error) {
	ctx, span := s.tracer.Start(ctx, "orders.claim")
	defer span.End()

	outcome := domain.ClaimOutcomeInvalid
	defer func() {
		s.metrics.IncClaim(outcome)
		span.SetAttributes(tracing.SafeAttributes(attribute.String("orders.claim.outcome", outcome))...)
	}()

	reference := strings.TrimSpace(req.Reference)
	if reference == "" {
		return nil, domain.ErrInvalidReference
	}
	email := targetEmail(req)
	if email == "" {
		return nil, domain.ErrInvalidEmail
	}

	cfg := s.config.Get()
	store, record, fuzzy := s.resolveReference(ctx, s.stores(cfg), reference, cfg)
	if record == nil {
		outcome = domain.ClaimOutcomeNotFound
		return nil, domain.ErrBookingNotFound
	}

	previous := record.OwnerEmail()
	if err := store.UpdateOwnerEmail(ctx, record.RecordID(), email); err != nil {
		outcome = domain.ClaimOutcomePersistFailed
		s.log.Error("failed to link booking",
			zap.String("category", string(store.Category())),
			zap.String("booking_id", record.RecordID()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistFailed, err)
	}
	record.SetOwnerEmail(email)

	changed := !strings.EqualFold(strings.TrimSpace(previous), email)
	message := domain.MessageAlreadyMatched
	outcome = domain.ClaimOutcomeAlreadyLinked
	if changed {
		message = fmt.Sprintf(domain.MessageEmailChanged, previous, email)
		outcome = domain.ClaimOutcomeLinked
	}

	s.log.Info("booking linked",
		zap.String("category", string(store.Category())),
		zap.String("booking_id", record.RecordID()),
		zap.Bool("fuzzy", fuzzy),
		zap.Bool("email_changed", changed),
	)

	return &domain.ClaimResult{
		Message:       message,
		Booking:       s.mapper.Map(ctx, record),
		PreviousEmail: previous,
		EmailChanged:  changed,
		Fuzzy:         fuzzy,
	}, nil
}

// targetEmail prefers the session's account email over the supplied one.
func targetEmail(req domain.ClaimRequest) string {
	raw := req.Email
	if req.Session != nil && strings.TrimSpace(req.Session.Email) != "" {
		raw = req.Session.Email
	}
	email := strings.ToLower(strings.TrimSpace(raw))
	if !strings.Contains(email, "@") {
		return ""
	}
	return email
}

// resolveReference runs the exact pass over every store, then the fuzzy pass
// when the reference is long enough. Failing stores are skipped.
func (s *Service) resolveReference(ctx context.Context, stores []bookingdomain.Store, reference string, cfg config.OrdersConfig) (bookingdomain.Store, bookingdomain.Record, bool) {
	for _, store := range stores {
		record, err := bounded(ctx, cfg.SourceTimeout, func(ctx context.Context) (bookingdomain.Record, error) {
			return store.FindByReference(ctx, reference)
		})
		if err != nil {
			s.sourceFailed(string(store.Category()), "find_by_reference", err)
			continue
		}
		if record != nil {
			return store, record, false
		}
	}

	if utf8.RuneCountInString(reference) < cfg.ClaimFuzzyMinLength {
		return nil, nil, false
	}

	for _, store := range stores {
		record, err := bounded(ctx, cfg.SourceTimeout, func(ctx context.Context) (bookingdomain.Record, error) {
			return store.SearchReference(ctx, reference)
		})
		if err != nil {
			s.sourceFailed(string(store.Category()), "search_reference", err)
			continue
		}
		if record != nil {
			return store, record, true
		}
	}
	return nil, nil, false
}

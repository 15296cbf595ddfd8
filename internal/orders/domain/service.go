package domain

import (
	"context"
	"errors"

	bookingdomain "github.com/smallbiznis/orderhub/internal/booking/domain"
	"github.com/smallbiznis/orderhub/internal/identity"
)

// ClaimRequest links a guest booking to a caller. Session is nil for
// anonymous callers; when present its email wins over Email.
type ClaimRequest struct {
	Reference string
	Email     string
	Session   *identity.Identity
}

type ClaimResult struct {
	Message string                  `json:"message"`
	Booking bookingdomain.OrderView `json:"booking"`

	PreviousEmail string `json:"-"`
	EmailChanged  bool   `json:"-"`
	Fuzzy         bool   `json:"-"`
}

type Service interface {
	// ListOrders returns the caller's merged order history, newest first.
	ListOrders(ctx context.Context, caller identity.Identity) ([]bookingdomain.OrderView, error)
	ClaimBooking(ctx context.Context, req ClaimRequest) (*ClaimResult, error)
}

const (
	MessageEmailChanged   = "Booking linked to your account. Contact email changed from %s to %s."
	MessageAlreadyMatched = "Booking already matched this account and is now linked."
)

const (
	ClaimOutcomeLinked        = "linked"
	ClaimOutcomeAlreadyLinked = "already_linked"
	ClaimOutcomeNotFound      = "not_found"
	ClaimOutcomeInvalid       = "invalid"
	ClaimOutcomePersistFailed = "persist_failed"
)

var (
	ErrInvalidReference = errors.New("invalid_reference")
	ErrInvalidEmail     = errors.New("invalid_email")
	ErrInvalidIdentity  = errors.New("invalid_identity")
	ErrBookingNotFound  = errors.New("booking_not_found")
	ErrPersistFailed    = errors.New("persist_failed")
)

package domain

import (
	"context"
	"errors"
)

type Repository interface {
	// ListCredits returns the account's booking-related credits, newest first.
	ListCredits(ctx context.Context, accountID string) ([]Entry, error)
}

var ErrInvalidAccount = errors.New("invalid_account")

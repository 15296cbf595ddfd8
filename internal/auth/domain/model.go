package domain

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of an access token issued by the account service.
type Claims struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	jwt.RegisteredClaims
}

// Session is the authenticated caller.
type Session struct {
	AccountID string
	Email     string
	Phone     string
	ExpiresAt time.Time
}

type Service interface {
	Authenticate(ctx context.Context, rawToken string) (*Session, error)
}

var (
	ErrInvalidSession = errors.New("invalid session")
	ErrSessionExpired = errors.New("session expired")
	ErrSecretMissing  = errors.New("auth secret not configured")
)

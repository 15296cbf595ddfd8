package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/smallbiznis/orderhub/internal/auth/domain"
	"github.com/smallbiznis/orderhub/internal/clock"
	"github.com/smallbiznis/orderhub/internal/config"
)

// Manager verifies HS256 access tokens.
type Manager struct {
	secret []byte
	issuer string
	clock  clock.Clock
}

func NewManager(cfg config.Config, clk clock.Clock) *Manager {
	return &Manager{
		secret: []byte(cfg.AuthJWTSecret),
		issuer: strings.TrimSpace(cfg.AuthJWTIssuer),
		clock:  clk,
	}
}

// Parse validates signature, expiry and issuer and returns the claims.
func (m *Manager) Parse(raw string) (*domain.Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, domain.ErrInvalidSession
	}
	if len(m.secret) == 0 {
		return nil, domain.ErrSecretMissing
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.clock.Now),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	claims := &domain.Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrSessionExpired
		}
		return nil, domain.ErrInvalidSession
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, domain.ErrInvalidSession
	}
	return claims, nil
}

// Issue signs a token for subject. Used by the dev CLI and tests; production
// tokens come from the account service.
func (m *Manager) Issue(subject, email string, ttl time.Duration) (string, error) {
	if len(m.secret) == 0 {
		return "", domain.ErrSecretMissing
	}
	now := m.clock.Now()
	claims := domain.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

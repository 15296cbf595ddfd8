package service

import (
	"context"
	"errors"
	"fmt"

	accountdomain "github.com/smallbiznis/orderhub/internal/account/domain"
	"github.com/smallbiznis/orderhub/internal/auth/domain"
	"github.com/smallbiznis/orderhub/internal/auth/token"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log      *zap.Logger
	Tokens   *token.Manager
	Accounts accountdomain.Repository
}

type Service struct {
	log      *zap.Logger
	tokens   *token.Manager
	accounts accountdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		log:      p.Log.Named("auth.service"),
		tokens:   p.Tokens,
		accounts: p.Accounts,
	}
}

// Authenticate verifies the token and loads the account's current contact details.
func (s *Service) Authenticate(ctx context.Context, rawToken string) (*domain.Session, error) {
	claims, err := s.tokens.Parse(rawToken)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, accountdomain.ErrAccountNotFound) || errors.Is(err, accountdomain.ErrInvalidAccountID) {
			return nil, domain.ErrInvalidSession
		}
		return nil, fmt.Errorf("resolve account: %w", err)
	}

	session := &domain.Session{
		AccountID: account.ID,
		Email:     account.Email,
		Phone:     account.Phone,
	}
	if session.Email == "" {
		session.Email = claims.Email
	}
	if session.Phone == "" {
		session.Phone = claims.Phone
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}

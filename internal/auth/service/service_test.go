package service

import (
	"context"
	"errors"
	"testing"
	"time"

	accountdomain "github.com/smallbiznis/orderhub/internal/account/domain"
	"github.com/smallbiznis/orderhub/internal/auth/domain"
	"github.com/smallbiznis/orderhub/internal/auth/token"
	"github.com/smallbiznis/orderhub/internal/clock"
	"github.com/smallbiznis/orderhub/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockAccounts struct {
	mock.Mock
}

func (m *mockAccounts) FindByID(ctx context.Context, id string) (*accountdomain.Account, error) {
	args := m.Called(ctx, id)
	account, _ := args.Get(0).(*accountdomain.Account)
	return account, args.Error(1)
}

func newTestService(accounts accountdomain.Repository) (domain.Service, *token.Manager) {
	tokens := token.NewManager(config.Config{AuthJWTSecret: "s3cret"}, clock.New())
	return New(Params{Log: zap.NewNop(), Tokens: tokens, Accounts: accounts}), tokens
}

func TestAuthenticateLoadsAccount(t *testing.T) {
	accounts := &mockAccounts{}
	accounts.On("FindByID", mock.Anything, "u-1").
		Return(&accountdomain.Account{ID: "u-1", Email: "ada@example.com", Phone: "08031234567"}, nil)
	svc, tokens := newTestService(accounts)

	raw, err := tokens.Issue("u-1", "stale@example.com", time.Hour)
	require.NoError(t, err)

	session, err := svc.Authenticate(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "u-1", session.AccountID)
	assert.Equal(t, "ada@example.com", session.Email)
	assert.Equal(t, "08031234567", session.Phone)
	assert.False(t, session.ExpiresAt.IsZero())
}

func TestAuthenticateFallsBackToClaimEmail(t *testing.T) {
	accounts := &mockAccounts{}
	accounts.On("FindByID", mock.Anything, "u-1").Return(&accountdomain.Account{ID: "u-1"}, nil)
	svc, tokens := newTestService(accounts)

	raw, err := tokens.Issue("u-1", "ada@example.com", time.Hour)
	require.NoError(t, err)

	session, err := svc.Authenticate(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", session.Email)
}

func TestAuthenticateUnknownAccount(t *testing.T) {
	accounts := &mockAccounts{}
	accounts.On("FindByID", mock.Anything, "ghost").Return(nil, accountdomain.ErrAccountNotFound)
	svc, tokens := newTestService(accounts)

	raw, err := tokens.Issue("ghost", "", time.Hour)
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), raw)
	assert.ErrorIs(t, err, domain.ErrInvalidSession)
}

func TestAuthenticateAccountStoreFailure(t *testing.T) {
	accounts := &mockAccounts{}
	boom := errors.New("connection reset")
	accounts.On("FindByID", mock.Anything, "u-1").Return(nil, boom)
	svc, tokens := newTestService(accounts)

	raw, err := tokens.Issue("u-1", "", time.Hour)
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), raw)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrInvalidSession)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	accounts := &mockAccounts{}
	svc, _ := newTestService(accounts)

	_, err := svc.Authenticate(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidSession)
	accounts.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

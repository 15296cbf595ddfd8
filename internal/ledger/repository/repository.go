package repository

import (
	"context"
	"strings"

	"github.com/smallbiznis/orderhub/internal/ledger/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) ListCredits(ctx context.Context, accountID string) ([]domain.Entry, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, domain.ErrInvalidAccount
	}

	var entries []domain.Entry
	err := r.db.WithContext(ctx).
		Where("account_type = ? AND account_id = ?", domain.AccountTypeUser, accountID).
		Where("direction = ?", domain.DirectionCredit).
		Where("reason IN ?", domain.BookingReasons).
		Order("created_at desc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Package domain contains the account read model used to resolve a caller's identity.
package domain

import (
	"context"
	"errors"
)

// Account is the subset of a user record needed to match orders.
type Account struct {
	ID    string `gorm:"primaryKey;column:id"`
	Email string `gorm:"column:email;type:text"`
	Phone string `gorm:"column:phone;type:text"`
}

// TableName sets the database table name.
func (Account) TableName() string { return "users" }

type Repository interface {
	FindByID(ctx context.Context, id string) (*Account, error)
}

var (
	ErrInvalidAccountID = errors.New("invalid_account_id")
	ErrAccountNotFound  = errors.New("account_not_found")
)

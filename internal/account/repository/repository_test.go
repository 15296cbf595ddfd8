package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/orderhub/internal/account/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFindByID(t *testing.T) {
	dsn := fmt.Sprintf("file:memdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	require.NoError(t, db.AutoMigrate(&domain.Account{}))
	require.NoError(t, db.Create(&domain.Account{ID: "u-1", Email: "ada@example.com", Phone: "08012345678"}).Error)

	repo := New(db)
	ctx := context.Background()

	got, err := repo.FindByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Equal(t, "08012345678", got.Phone)

	_, err = repo.FindByID(ctx, "u-404")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = repo.FindByID(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidAccountID)
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/smallbiznis/orderhub/internal/booking/domain"
	"gorm.io/gorm"
)

var ErrUnknownEntity = errors.New("unknown_entity")

type catalog struct {
	db *gorm.DB
}

// NewCatalog resolves reference entities by reading the name column of their table.
func NewCatalog(db *gorm.DB) domain.Catalog {
	return &catalog{db: db}
}

func (c *catalog) Name(ctx context.Context, ref domain.EntityRef) (domain.Lookup, error) {
	id := strings.TrimSpace(ref.ID)
	if id == "" {
		return domain.Lookup{}, nil
	}
	if !ref.Kind.Valid() {
		return domain.Lookup{}, ErrUnknownEntity
	}

	var names []sql.NullString
	err := c.db.WithContext(ctx).
		Table(string(ref.Kind)).
		Where("id = ?", id).
		Limit(1).
		Pluck("name", &names).Error
	if err != nil {
		return domain.Lookup{}, err
	}
	if len(names) == 0 || !names[0].Valid {
		return domain.Lookup{}, nil
	}

	name := strings.TrimSpace(names[0].String)
	return domain.Lookup{Name: name, Found: name != ""}, nil
}

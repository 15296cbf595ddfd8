package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/smallbiznis/orderhub/internal/booking/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// recordPtr constrains T so that *T is a domain.Record.
type recordPtr[T any] interface {
	*T
	domain.Record
}

type store[T any, PT recordPtr[T]] struct {
	db     *gorm.DB
	schema domain.Schema
}

// NewStore returns a gorm-backed store for the record type T.
func NewStore[T any, PT recordPtr[T]](db *gorm.DB) domain.Store {
	return &store[T, PT]{
		db:     db,
		schema: PT(new(T)).Schema(),
	}
}

func (s *store[T, PT]) Category() domain.Category { return s.schema.Category }

func (s *store[T, PT]) Schema() domain.Schema { return s.schema }

func (s *store[T, PT]) FindMany(ctx context.Context, match domain.Match) ([]domain.Record, error) {
	where, args, err := SmartMatchPredicate(s.schema, match)
	if err != nil {
		return nil, fmt.Errorf("build %s filter: %w", s.schema.Category, err)
	}

	var rows []T
	err = s.db.WithContext(ctx).
		Model(new(T)).
		Where(where, args...).
		Order("created_at desc, id desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toRecords[T, PT](rows), nil
}

func (s *store[T, PT]) FindByID(ctx context.Context, id string) (domain.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrInvalidID
	}
	return s.first(s.db.WithContext(ctx).Where("id = ?", id))
}

func (s *store[T, PT]) FindByReference(ctx context.Context, ref string) (domain.Record, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, domain.ErrInvalidReference
	}

	where, args, err := ExactReferencePredicate(s.schema, ref)
	if err != nil {
		return nil, fmt.Errorf("build %s reference filter: %w", s.schema.Category, err)
	}

	stmt := s.db.WithContext(ctx).Where(where, args...)
	for _, path := range domain.ReferencePaths {
		stmt = stmt.Or(datatypes.JSONQuery(domain.MetadataColumn).Equals(ref, path...))
	}
	return s.first(stmt.Order("created_at desc"))
}

func (s *store[T, PT]) SearchReference(ctx context.Context, ref string) (domain.Record, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, domain.ErrInvalidReference
	}

	where, args, err := FuzzyReferencePredicate(s.schema, ref)
	if err != nil {
		return nil, fmt.Errorf("build %s fuzzy filter: %w", s.schema.Category, err)
	}
	return s.first(s.db.WithContext(ctx).Where(where, args...).Order("created_at desc"))
}

func (s *store[T, PT]) UpdateOwnerEmail(ctx context.Context, id, email string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrInvalidID
	}
	return s.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ?", id).
		UpdateColumn(s.schema.ContactEmailColumn, email).Error
}

func (s *store[T, PT]) first(stmt *gorm.DB) (domain.Record, error) {
	var row T
	err := stmt.Model(new(T)).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return PT(&row), nil
}

func toRecords[T any, PT recordPtr[T]](rows []T) []domain.Record {
	out := make([]domain.Record, 0, len(rows))
	for i := range rows {
		out = append(out, PT(&rows[i]))
	}
	return out
}

// Stores builds one store per category, in probe order.
func Stores(db *gorm.DB) []domain.Store {
	return []domain.Store{
		NewStore[domain.HotelBooking](db),
		NewStore[domain.ShortletBooking](db),
		NewStore[domain.EventBooking](db),
		NewStore[domain.RestaurantReservation](db),
		NewStore[domain.TourBooking](db),
		NewStore[domain.ChopsOrder](db),
		NewStore[domain.GiftOrder](db),
	}
}

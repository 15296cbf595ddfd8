package domain

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Record is implemented by every category's booking model. It replaces guessing
// field names at runtime with an explicit adapter per store.
type Record interface {
	Schema() Schema
	RecordID() string
	OwnerEmail() string
	SetOwnerEmail(email string)
	ResolvedReference() string
	AmountCandidates() []any
	PrimaryEntity() EntityRef
	Dates() Dates
	PaymentStatus() string
	Canceled() bool
	Timestamps() (created, updated *time.Time)
}

// Dates carries the category-specific date fields verbatim.
type Dates struct {
	CheckIn         *time.Time
	CheckOut        *time.Time
	EventDate       *time.Time
	ReservationDate *time.Time
	ReservationTime string
	TourDate        *time.Time
}

// CreatedAt resolves a record's creation time: created, else updated, else now.
func CreatedAt(r Record, now time.Time) time.Time {
	created, updated := r.Timestamps()
	if created != nil && !created.IsZero() {
		return created.UTC()
	}
	if updated != nil && !updated.IsZero() {
		return updated.UTC()
	}
	return now.UTC()
}

// firstReference returns the first non-empty value among columns, then the nested
// gateway fields in metadata.
func firstReference(meta datatypes.JSONMap, values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	for _, path := range ReferencePaths {
		if v := lookupPath(meta, path); v != "" {
			return v
		}
	}
	return ""
}

func lookupPath(meta datatypes.JSONMap, path []string) string {
	var current any = map[string]any(meta)
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return ""
		}
		current = m[key]
	}
	switch v := current.(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

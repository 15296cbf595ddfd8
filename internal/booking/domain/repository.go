package domain

import (
	"context"
	"errors"
)

// Match is the caller's identity, expanded into every stored representation.
type Match struct {
	OwnerID      string
	Emails       []string
	Phones       []string
	PseudoEmails []string
}

// IsEmpty reports whether the match could only ever select nothing.
func (m Match) IsEmpty() bool {
	return m.OwnerID == "" && len(m.Emails) == 0 && len(m.Phones) == 0 && len(m.PseudoEmails) == 0
}

// Store is one category's record store.
type Store interface {
	Category() Category
	Schema() Schema
	// FindMany returns every record matching the caller, newest first.
	FindMany(ctx context.Context, match Match) ([]Record, error)
	// FindByID returns nil, nil when no record has id.
	FindByID(ctx context.Context, id string) (Record, error)
	// FindByReference returns the first record whose reference fields equal ref.
	FindByReference(ctx context.Context, ref string) (Record, error)
	// SearchReference returns the newest record whose fuzzy reference columns contain ref.
	SearchReference(ctx context.Context, ref string) (Record, error)
	// UpdateOwnerEmail rewrites the contact email column of one record.
	UpdateOwnerEmail(ctx context.Context, id, email string) error
}

// Lookup is the typed result of a reference-entity lookup.
type Lookup struct {
	Name  string
	Found bool
}

// Catalog resolves reference entities (hotels, rooms, restaurants, ...) to names.
type Catalog interface {
	Name(ctx context.Context, ref EntityRef) (Lookup, error)
}

// Registry holds the stores in probe order.
type Registry struct {
	stores []Store
}

// NewRegistry orders stores by ProbeOrder; unknown or duplicate categories are dropped.
func NewRegistry(stores ...Store) *Registry {
	byCategory := make(map[Category]Store, len(stores))
	for _, s := range stores {
		if s == nil {
			continue
		}
		if _, ok := byCategory[s.Category()]; !ok {
			byCategory[s.Category()] = s
		}
	}
	ordered := make([]Store, 0, len(ProbeOrder))
	for _, c := range ProbeOrder {
		if s, ok := byCategory[c]; ok {
			ordered = append(ordered, s)
		}
	}
	return &Registry{stores: ordered}
}

// Stores returns the registered stores in probe order.
func (r *Registry) Stores() []Store {
	if r == nil {
		return nil
	}
	return r.stores
}

// Without returns a registry that skips the given categories.
func (r *Registry) Without(disabled map[Category]bool) *Registry {
	if len(disabled) == 0 {
		return r
	}
	kept := make([]Store, 0, len(r.Stores()))
	for _, s := range r.Stores() {
		if !disabled[s.Category()] {
			kept = append(kept, s)
		}
	}
	return &Registry{stores: kept}
}

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidReference = errors.New("invalid_reference")
)

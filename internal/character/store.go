// Copyright (c) 2026 Holocron. All rights reserved.

package character

import "context"

// Repository abstracts persistence of characters.
//
// Lookup methods return (nil, nil) when no record matches — absence is a
// domain outcome for the service to interpret, not a storage error.
type Repository interface {
	// Exists reports whether a character with the given name is stored.
	Exists(ctx context.Context, name string) (bool, error)

	// Insert persists a new character. A uniqueness violation (duplicate
	// name racing the service-layer pre-check) surfaces as a conflict error.
	Insert(ctx context.Context, character *Character) error

	// Update replaces the record matching name with the character's current
	// parameters and returns the persisted state, or nil if nothing matched.
	Update(ctx context.Context, name string, character *Character) (*Character, error)

	// GetAll returns a page of characters starting at offset, at most limit
	// entries, plus the total collection count. The count is read
	// independently of the page and the two are not transactionally
	// consistent with each other.
	GetAll(ctx context.Context, offset, limit int) ([]*Character, int, error)

	// GetByName returns the character with the given name, or nil.
	GetByName(ctx context.Context, name string) (*Character, error)

	// DeleteByName removes the character if present. Idempotent.
	DeleteByName(ctx context.Context, name string) error
}

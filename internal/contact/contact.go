// Copyright (c) 2026 Rolodex. All rights reserved.

/*
Package contact implements the contact directory domain.

It defines the Contact entity, its Active/Trashed lifecycle, and the
owner-scoped query semantics (search + sort) layered on top.

# Ownership

Every read, mutation, and lifecycle transition verifies that the record's
OwnerID matches the caller's account ID. "Does not exist" and "exists but
not yours" are distinct errors (404 vs 403); the 403 body never carries any
contact data, matching the upstream API's disclosure policy.

# Lifecycle

A contact is created Active. Soft deletion moves it to Trashed (stamping
DeletedAt); restore moves it back to Active (clearing DeletedAt); purge is
an irreversible hard delete and is only legal from Trashed. Favorite toggles
are allowed in both states.
*/
package contact

import "time"

// # Domain Entities

// Contact represents a single directory entry owned by one account.
type Contact struct {
	ID string `json:"id"`

	// OwnerID is immutable after creation and scopes every operation.
	OwnerID string `json:"owner_id"`

	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	IsFavorite bool   `json:"is_favorite"`

	// IsTrashed marks the soft-deleted state. A purged contact is simply an
	// absent row, not a stored state.
	IsTrashed bool       `json:"is_trashed"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Query Semantics

// Sort identifies the ordering of an active contact listing.
type Sort string

const (
	// SortNewestFirst orders by creation time descending (the default).
	SortNewestFirst Sort = ""
	// SortOldestFirst orders by creation time ascending.
	SortOldestFirst Sort = "date-asc"
	// SortNameAsc orders alphabetically A-Z by name.
	SortNameAsc Sort = "name"
	// SortNameDesc orders alphabetically Z-A by name.
	SortNameDesc Sort = "name-desc"
)

// NormalizeSort maps a raw query value onto a supported [Sort].
//
// Unrecognized values silently fall back to newest-first; clients are not
// punished for a misspelled sort parameter.
func NormalizeSort(raw string) Sort {
	switch Sort(raw) {
	case SortOldestFirst, SortNameAsc, SortNameDesc:
		return Sort(raw)
	default:
		return SortNewestFirst
	}
}

// ListFilter carries the optional query refinements for active listings.
//
// The trash listing ignores both fields: trash is always ordered by deletion
// time descending.
type ListFilter struct {
	// Search is a single case-insensitive substring matched against name OR
	// email OR phone. Empty means no filtering.
	Search string

	// Sort is the normalized ordering.
	Sort Sort
}

// # Field Identifiers

const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldID      = "id"
	FieldMessage = "message"
	FieldContact = "contact"
)

// Copyright (c) 2026 Rolodex. All rights reserved.

package contact

import "context"

// Repository defines the data access contract for contacts.
//
// # Ownership
//
// FindByID deliberately loads by primary key WITHOUT an owner filter: the
// service needs the stored OwnerID to distinguish "absent" (NotFound) from
// "exists but not yours" (Forbidden). List operations, by contrast, are
// always owner-scoped at the storage layer.
type Repository interface {
	// Create persists a new contact row.
	Create(context context.Context, contact *Contact) error

	// FindByID returns the contact with the given ID regardless of owner.
	FindByID(context context.Context, id string) (*Contact, error)

	// Update persists the contact's mutable fields and lifecycle state.
	Update(context context.Context, contact *Contact) error

	// Delete irreversibly removes the row. Lifecycle legality (Trashed only)
	// is enforced by the service, not here.
	Delete(context context.Context, id string) error

	// ListActive returns the owner's non-trashed contacts, filtered and
	// ordered per the filter.
	ListActive(context context.Context, ownerID string, filter ListFilter) ([]*Contact, error)

	// ListTrashed returns the owner's trashed contacts ordered by deletion
	// time descending.
	ListTrashed(context context.Context, ownerID string) ([]*Contact, error)
}

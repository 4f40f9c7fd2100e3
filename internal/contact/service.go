// Copyright (c) 2026 Rolodex. All rights reserved.

package contact

import (
	"context"
	"time"

	"github.com/rolodexhq/rolodex/internal/platform/apperr"
	"github.com/rolodexhq/rolodex/internal/platform/metrics"
	"github.com/rolodexhq/rolodex/pkg/uuid"
)

// Service implements the contact directory use cases: CRUD, search, and the
// Active/Trashed lifecycle.
type Service struct {
	repository Repository
	metrics    *metrics.Metrics
}

// NewService constructs a new contact [Service].
func NewService(repo Repository, m *metrics.Metrics) *Service {
	return &Service{repository: repo, metrics: m}
}

// # Ownership Guard

// findOwned loads a contact and enforces the caller's ownership.
//
// The two failure modes are kept distinct: an absent ID is NotFound, while a
// present row owned by somebody else is Forbidden. The Forbidden message is
// uniform and carries no contact data.
func (service *Service) findOwned(context context.Context, ownerID, contactID string) (*Contact, error) {
	contact, err := service.repository.FindByID(context, contactID)
	if err != nil {
		return nil, err
	}

	if contact.OwnerID != ownerID {
		return nil, apperr.Forbidden("You do not have access to this contact")
	}

	return contact, nil
}

// # CRUD

// CreateInput holds the data required to create a contact.
type CreateInput struct {
	Name  string
	Email string
	Phone string
}

// Create persists a new Active contact owned by ownerID.
func (service *Service) Create(context context.Context, ownerID string, input CreateInput) (*Contact, error) {
	contact := &Contact{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
	}

	if err := service.repository.Create(context, contact); err != nil {
		return nil, err
	}

	service.metrics.IncrementContactsCreated()
	return contact, nil
}

// Get returns a single contact after the ownership check. Trashed contacts
// remain retrievable by ID.
func (service *Service) Get(context context.Context, ownerID, contactID string) (*Contact, error) {
	return service.findOwned(context, ownerID, contactID)
}

// UpdateInput holds the optional field changes for an update. Nil pointers
// leave the stored value untouched.
type UpdateInput struct {
	Name  *string
	Email *string
	Phone *string
}

// Update applies partial field changes to an Active contact. Trashed
// contacts must be restored before they can be edited.
func (service *Service) Update(context context.Context, ownerID, contactID string, input UpdateInput) (*Contact, error) {
	contact, err := service.findOwned(context, ownerID, contactID)
	if err != nil {
		return nil, err
	}

	if contact.IsTrashed {
		return nil, apperr.Unprocessable("Contact is in trash")
	}

	if input.Name != nil {
		contact.Name = *input.Name
	}
	if input.Email != nil {
		contact.Email = *input.Email
	}
	if input.Phone != nil {
		contact.Phone = *input.Phone
	}

	if err := service.repository.Update(context, contact); err != nil {
		return nil, err
	}

	return contact, nil
}

// ToggleFavorite flips the favorite flag. Legal in both lifecycle states.
func (service *Service) ToggleFavorite(context context.Context, ownerID, contactID string) (*Contact, error) {
	contact, err := service.findOwned(context, ownerID, contactID)
	if err != nil {
		return nil, err
	}

	contact.IsFavorite = !contact.IsFavorite

	if err := service.repository.Update(context, contact); err != nil {
		return nil, err
	}

	return contact, nil
}

// # Lifecycle Transitions

// SoftDelete moves an Active contact into the trash, stamping DeletedAt.
func (service *Service) SoftDelete(context context.Context, ownerID, contactID string) (*Contact, error) {
	contact, err := service.findOwned(context, ownerID, contactID)
	if err != nil {
		return nil, err
	}

	if contact.IsTrashed {
		return nil, apperr.Unprocessable("Contact is already in trash")
	}

	now := time.Now()
	contact.IsTrashed = true
	contact.DeletedAt = &now

	if err := service.repository.Update(context, contact); err != nil {
		return nil, err
	}

	service.metrics.IncrementContactsTrashed()
	return contact, nil
}

// Restore returns a Trashed contact to the Active state, clearing DeletedAt.
func (service *Service) Restore(context context.Context, ownerID, contactID string) (*Contact, error) {
	contact, err := service.findOwned(context, ownerID, contactID)
	if err != nil {
		return nil, err
	}

	if !contact.IsTrashed {
		return nil, apperr.Unprocessable("Contact is not in trash")
	}

	contact.IsTrashed = false
	contact.DeletedAt = nil

	if err := service.repository.Update(context, contact); err != nil {
		return nil, err
	}

	service.metrics.IncrementContactsRestored()
	return contact, nil
}

// Purge permanently deletes a Trashed contact. Active contacts must pass
// through the trash first; the two-step path is the safety net against
// accidental permanent loss.
//
// The deleted contact is returned so the response can echo what was removed.
func (service *Service) Purge(context context.Context, ownerID, contactID string) (*Contact, error) {
	contact, err := service.findOwned(context, ownerID, contactID)
	if err != nil {
		return nil, err
	}

	if !contact.IsTrashed {
		return nil, apperr.Unprocessable("Contact is not in trash")
	}

	if err := service.repository.Delete(context, contact.ID); err != nil {
		return nil, err
	}

	service.metrics.IncrementContactsPurged()
	return contact, nil
}

// # Listings

// List returns the caller's Active contacts, filtered and ordered.
func (service *Service) List(context context.Context, ownerID string, filter ListFilter) ([]*Contact, error) {
	return service.repository.ListActive(context, ownerID, filter)
}

// ListTrash returns the caller's Trashed contacts, most recently deleted
// first.
func (service *Service) ListTrash(context context.Context, ownerID string) ([]*Contact, error) {
	return service.repository.ListTrashed(context, ownerID)
}

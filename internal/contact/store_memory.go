// Copyright (c) 2026 Rolodex. All rights reserved.

package contact

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rolodexhq/rolodex/internal/platform/apperr"
)

// InMemoryRepository is a thread-safe, map-backed implementation of
// [Repository] used by tests.
type InMemoryRepository struct {
	mu       sync.RWMutex
	contacts map[string]*Contact
}

// NewInMemoryRepository creates an empty in-memory contact store.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{contacts: make(map[string]*Contact)}
}

func (repository *InMemoryRepository) Create(_ context.Context, contact *Contact) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	now := time.Now()
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = now
	}
	contact.UpdatedAt = now

	stored := *contact
	repository.contacts[contact.ID] = &stored
	return nil
}

func (repository *InMemoryRepository) FindByID(_ context.Context, id string) (*Contact, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	stored, ok := repository.contacts[id]
	if !ok {
		return nil, apperr.NotFound("Contact")
	}

	found := *stored
	return &found, nil
}

func (repository *InMemoryRepository) Update(_ context.Context, contact *Contact) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.contacts[contact.ID]; !ok {
		return apperr.NotFound("Contact")
	}

	contact.UpdatedAt = time.Now()
	stored := *contact
	repository.contacts[contact.ID] = &stored
	return nil
}

func (repository *InMemoryRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.contacts[id]; !ok {
		return apperr.NotFound("Contact")
	}

	delete(repository.contacts, id)
	return nil
}

func (repository *InMemoryRepository) ListActive(_ context.Context, ownerID string, filter ListFilter) ([]*Contact, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	term := strings.ToLower(filter.Search)
	matched := make([]*Contact, 0)
	for _, stored := range repository.contacts {
		if stored.OwnerID != ownerID || stored.IsTrashed {
			continue
		}
		if term != "" && !matchesSearch(stored, term) {
			continue
		}
		found := *stored
		matched = append(matched, &found)
	}

	sortContacts(matched, filter.Sort)
	return matched, nil
}

func (repository *InMemoryRepository) ListTrashed(_ context.Context, ownerID string) ([]*Contact, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	matched := make([]*Contact, 0)
	for _, stored := range repository.contacts {
		if stored.OwnerID != ownerID || !stored.IsTrashed {
			continue
		}
		found := *stored
		matched = append(matched, &found)
	}

	slices.SortStableFunc(matched, func(a, b *Contact) int {
		return deletedAtOf(b).Compare(deletedAtOf(a))
	})
	return matched, nil
}

// matchesSearch reports whether term occurs in any searchable field.
// The term must already be lowercased.
func matchesSearch(contact *Contact, term string) bool {
	return strings.Contains(strings.ToLower(contact.Name), term) ||
		strings.Contains(strings.ToLower(contact.Email), term) ||
		strings.Contains(strings.ToLower(contact.Phone), term)
}

func sortContacts(contacts []*Contact, sort Sort) {
	switch sort {
	case SortOldestFirst:
		slices.SortStableFunc(contacts, func(a, b *Contact) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
	case SortNameAsc:
		slices.SortStableFunc(contacts, func(a, b *Contact) int {
			return strings.Compare(a.Name, b.Name)
		})
	case SortNameDesc:
		slices.SortStableFunc(contacts, func(a, b *Contact) int {
			return strings.Compare(b.Name, a.Name)
		})
	default:
		slices.SortStableFunc(contacts, func(a, b *Contact) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
}

func deletedAtOf(contact *Contact) time.Time {
	if contact.DeletedAt == nil {
		return time.Time{}
	}
	return *contact.DeletedAt
}

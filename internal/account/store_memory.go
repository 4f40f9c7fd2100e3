// Copyright (c) 2026 Rolodex. All rights reserved.

package account

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rolodexhq/rolodex/internal/platform/apperr"
)

// InMemoryRepository is a map-backed [Repository] used by unit tests and
// local development. Email uniqueness is enforced under the same lock that
// performs the insert, mirroring the atomicity of the Postgres unique index.
type InMemoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]*Account // keyed by ID
}

// NewInMemoryRepository creates an empty in-memory account repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{accounts: make(map[string]*Account)}
}

// Create inserts the account, rejecting duplicate emails atomically.
func (repository *InMemoryRepository) Create(_ context.Context, account *Account) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, existing := range repository.accounts {
		if strings.EqualFold(existing.Email, account.Email) {
			return apperr.Conflict("Email is already registered")
		}
	}

	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	stored := *account
	repository.accounts[account.ID] = &stored
	return nil
}

// FindByID returns a copy of the account with the given ID.
func (repository *InMemoryRepository) FindByID(_ context.Context, id string) (*Account, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	stored, ok := repository.accounts[id]
	if !ok {
		return nil, apperr.NotFound("Account")
	}

	found := *stored
	return &found, nil
}

// FindByEmail returns a copy of the account with the given email.
func (repository *InMemoryRepository) FindByEmail(_ context.Context, email string) (*Account, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	for _, stored := range repository.accounts {
		if strings.EqualFold(stored.Email, email) {
			found := *stored
			return &found, nil
		}
	}

	return nil, apperr.NotFound("Account")
}

// UpdateEmail replaces the account's email, enforcing uniqueness.
func (repository *InMemoryRepository) UpdateEmail(_ context.Context, accountID, newEmail string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.accounts[accountID]
	if !ok {
		return apperr.NotFound("Account")
	}

	for id, existing := range repository.accounts {
		if id != accountID && strings.EqualFold(existing.Email, newEmail) {
			return apperr.Conflict("Email is already in use")
		}
	}

	stored.Email = newEmail
	stored.UpdatedAt = time.Now()
	return nil
}

// UpdatePassword replaces the account's password hash.
func (repository *InMemoryRepository) UpdatePassword(_ context.Context, accountID, newHash string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.accounts[accountID]
	if !ok {
		return apperr.NotFound("Account")
	}

	stored.PasswordHash = newHash
	stored.UpdatedAt = time.Now()
	return nil
}

// # Volatile Store (memory)

// InMemoryResetTokenRepository is a map-backed [ResetTokenRepository] with
// TTL handling, used by unit tests.
type InMemoryResetTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]resetEntry
}

type resetEntry struct {
	accountID string
	expiresAt time.Time
}

// NewInMemoryResetTokenRepository creates an empty in-memory token store.
func NewInMemoryResetTokenRepository() *InMemoryResetTokenRepository {
	return &InMemoryResetTokenRepository{tokens: make(map[string]resetEntry)}
}

// Set stores a token digest with an expiry.
func (repository *InMemoryResetTokenRepository) Set(_ context.Context, tokenHash, accountID string, ttl time.Duration) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.tokens[tokenHash] = resetEntry{accountID: accountID, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Get resolves a token digest to its accountID, honoring expiry.
func (repository *InMemoryResetTokenRepository) Get(_ context.Context, tokenHash string) (string, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	entry, ok := repository.tokens[tokenHash]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(repository.tokens, tokenHash)
		return "", apperr.Unauthorized("Invalid or expired reset token")
	}

	return entry.accountID, nil
}

// Delete removes a token digest.
func (repository *InMemoryResetTokenRepository) Delete(_ context.Context, tokenHash string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	delete(repository.tokens, tokenHash)
	return nil
}

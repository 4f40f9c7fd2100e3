// Copyright (c) 2026 Rolodex. All rights reserved.

package account

import (
	"context"
	"time"
)

// # Account Data Access

// Repository defines the data access contract for accounts.
//
// # Uniqueness
//
// Create and UpdateEmail enforce email uniqueness atomically at the storage
// layer (a unique index in Postgres, a lock-guarded map in memory) and
// return a Conflict error on violation. Any service-level duplicate
// pre-check is an optimization only, never the authoritative guard.
type Repository interface {
	// FindByID returns the account with the given ID.
	FindByID(context context.Context, id string) (*Account, error)

	// FindByEmail returns the account with the given email.
	FindByEmail(context context.Context, email string) (*Account, error)

	// Create persists a brand-new account.
	Create(context context.Context, account *Account) error

	// UpdateEmail replaces the account's email and refreshes UpdatedAt.
	UpdateEmail(context context.Context, accountID, newEmail string) error

	// UpdatePassword replaces only the account's password hash.
	UpdatePassword(context context.Context, accountID, newHash string) error
}

// # Volatile Data Access

// ResetTokenRepository defines the contract for storing volatile password
// reset tokens. Keys are token digests, never the raw token.
type ResetTokenRepository interface {
	// Set stores a reset token digest associated with an accountID for a
	// limited duration.
	Set(context context.Context, tokenHash string, accountID string, ttl time.Duration) error

	// Get retrieves the accountID associated with a given token digest.
	Get(context context.Context, tokenHash string) (string, error)

	// Delete removes a reset token after successful use.
	Delete(context context.Context, tokenHash string) error
}

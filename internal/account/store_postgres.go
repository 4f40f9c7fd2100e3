// Copyright (c) 2026 Rolodex. All rights reserved.

package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rolodexhq/rolodex/internal/platform/apperr"
	"github.com/rolodexhq/rolodex/internal/platform/dberr"
)

// PostgresRepository implements the [Repository] interface using pgx.
//
// # Error Mapping
//
// Storage-specific errors (pgx.ErrNoRows, SQLSTATE 23505) are mapped to
// domain-friendly [apperr.AppError] values so storage details never leak.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create persists a new account. The unique index on accounts.email is the
// authoritative duplicate guard; a violation becomes a Conflict.
func (repository *PostgresRepository) Create(context context.Context, account *Account) error {
	const query = `
		INSERT INTO accounts (id, username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		account.ID,
		account.Username,
		account.Email,
		account.PasswordHash,
		account.CreatedAt,
		account.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Email is already registered")
		}
		return fmt.Errorf("postgres_account_repo_create_failed: %w", err)
	}

	return nil
}

// FindByEmail retrieves an account by its unique email address.
func (repository *PostgresRepository) FindByEmail(context context.Context, email string) (*Account, error) {
	const query = `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM accounts
		WHERE email = $1`

	account := &Account{}
	err := repository.pool.QueryRow(context, query, email).Scan(
		&account.ID,
		&account.Username,
		&account.Email,
		&account.PasswordHash,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Account")
		}
		return nil, fmt.Errorf("postgres_account_repo_find_by_email_failed: %w", err)
	}

	return account, nil
}

// FindByID retrieves an account by its primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Account, error) {
	const query = `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM accounts
		WHERE id = $1`

	account := &Account{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&account.ID,
		&account.Username,
		&account.Email,
		&account.PasswordHash,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Account")
		}
		return nil, fmt.Errorf("postgres_account_repo_find_by_id_failed: %w", err)
	}

	return account, nil
}

// UpdateEmail replaces the account's email. The unique index enforces
// uniqueness against concurrent writers; a violation becomes a Conflict.
func (repository *PostgresRepository) UpdateEmail(context context.Context, accountID, newEmail string) error {
	const query = `
		UPDATE accounts
		SET email = $2, updated_at = $3
		WHERE id = $1`

	commandTag, err := repository.pool.Exec(context, query, accountID, newEmail, time.Now())
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Email is already in use")
		}
		return fmt.Errorf("postgres_account_repo_update_email_failed: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return apperr.NotFound("Account")
	}

	return nil
}

// UpdatePassword replaces only the password hash for a specific account.
func (repository *PostgresRepository) UpdatePassword(context context.Context, accountID, newHash string) error {
	const query = `
		UPDATE accounts
		SET password_hash = $2, updated_at = $3
		WHERE id = $1`

	commandTag, err := repository.pool.Exec(context, query, accountID, newHash, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_account_repo_update_password_failed: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return apperr.NotFound("Account")
	}

	return nil
}

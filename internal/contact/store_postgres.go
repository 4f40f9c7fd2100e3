// Copyright (c) 2026 Rolodex. All rights reserved.

package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rolodexhq/rolodex/internal/platform/apperr"
	"github.com/rolodexhq/rolodex/internal/platform/dberr"
)

// PostgresRepository implements the [Repository] interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const contactColumns = `id, owner_id, name, email, phone, is_favorite, is_trashed, deleted_at, created_at, updated_at`

// Create persists a new contact row.
func (repository *PostgresRepository) Create(context context.Context, contact *Contact) error {
	const query = `
		INSERT INTO contacts (id, owner_id, name, email, phone, is_favorite, is_trashed, deleted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	now := time.Now()
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = now
	}
	contact.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		contact.ID,
		contact.OwnerID,
		contact.Name,
		contact.Email,
		contact.Phone,
		contact.IsFavorite,
		contact.IsTrashed,
		contact.DeletedAt,
		contact.CreatedAt,
		contact.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_contact_repo_create_failed: %w", err)
	}

	return nil
}

// FindByID retrieves a contact by primary key, regardless of owner.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Contact, error) {
	query := fmt.Sprintf(`SELECT %s FROM contacts WHERE id = $1`, contactColumns)

	contact := &Contact{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&contact.ID,
		&contact.OwnerID,
		&contact.Name,
		&contact.Email,
		&contact.Phone,
		&contact.IsFavorite,
		&contact.IsTrashed,
		&contact.DeletedAt,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Contact")
		}
		return nil, fmt.Errorf("postgres_contact_repo_find_by_id_failed: %w", err)
	}

	return contact, nil
}

// Update persists the contact's mutable fields and lifecycle state.
func (repository *PostgresRepository) Update(context context.Context, contact *Contact) error {
	const query = `
		UPDATE contacts
		SET name = $2, email = $3, phone = $4, is_favorite = $5,
		    is_trashed = $6, deleted_at = $7, updated_at = $8
		WHERE id = $1`

	contact.UpdatedAt = time.Now()
	commandTag, err := repository.pool.Exec(context, query,
		contact.ID,
		contact.Name,
		contact.Email,
		contact.Phone,
		contact.IsFavorite,
		contact.IsTrashed,
		contact.DeletedAt,
		contact.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_contact_repo_update_failed: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return apperr.NotFound("Contact")
	}

	return nil
}

// Delete irreversibly removes the row.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM contacts WHERE id = $1`

	commandTag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_contact_repo_delete_failed: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return apperr.NotFound("Contact")
	}

	return nil
}

// ListActive returns the owner's non-trashed contacts.
//
// The WHERE clause, optional search predicate, and ORDER BY are composed
// here so the three query concerns (scope, filter, order) stay in one place.
func (repository *PostgresRepository) ListActive(context context.Context, ownerID string, filter ListFilter) ([]*Contact, error) {
	var builder strings.Builder
	fmt.Fprintf(&builder, `SELECT %s FROM contacts WHERE owner_id = $1 AND is_trashed = FALSE`, contactColumns)

	args := []any{ownerID}
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		args = append(args, pattern)
		builder.WriteString(` AND (name ILIKE $2 ESCAPE '\' OR email ILIKE $2 ESCAPE '\' OR phone ILIKE $2 ESCAPE '\')`)
	}

	builder.WriteString(orderClause(filter.Sort))

	rows, err := repository.pool.Query(context, builder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_active_contacts")
	}
	defer rows.Close()

	return scanContacts(rows)
}

// ListTrashed returns the owner's trashed contacts, newest deletion first.
func (repository *PostgresRepository) ListTrashed(context context.Context, ownerID string) ([]*Contact, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM contacts
		WHERE owner_id = $1 AND is_trashed = TRUE
		ORDER BY deleted_at DESC`, contactColumns)

	rows, err := repository.pool.Query(context, query, ownerID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_trashed_contacts")
	}
	defer rows.Close()

	return scanContacts(rows)
}

// orderClause maps a normalized [Sort] onto its ORDER BY fragment.
func orderClause(sort Sort) string {
	switch sort {
	case SortOldestFirst:
		return ` ORDER BY created_at ASC`
	case SortNameAsc:
		return ` ORDER BY name ASC, created_at DESC`
	case SortNameDesc:
		return ` ORDER BY name DESC, created_at DESC`
	default:
		return ` ORDER BY created_at DESC`
	}
}

// escapeLike neutralizes ILIKE metacharacters in a user-supplied search term.
func escapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}

// scanContacts drains a row set into hydrated entities.
func scanContacts(rows pgx.Rows) ([]*Contact, error) {
	contacts := make([]*Contact, 0)
	for rows.Next() {
		contact := &Contact{}
		err := rows.Scan(
			&contact.ID,
			&contact.OwnerID,
			&contact.Name,
			&contact.Email,
			&contact.Phone,
			&contact.IsFavorite,
			&contact.IsTrashed,
			&contact.DeletedAt,
			&contact.CreatedAt,
			&contact.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_contact")
		}
		contacts = append(contacts, contact)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_contacts")
	}

	return contacts, nil
}

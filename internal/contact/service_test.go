// Copyright (c) 2026 Rolodex. All rights reserved.

package contact_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rolodexhq/rolodex/internal/contact"
	"github.com/rolodexhq/rolodex/internal/platform/apperr"
)

const (
	ownerAnn = "owner-ann"
	ownerBob = "owner-bob"
)

func newTestService(t *testing.T) *contact.Service {
	t.Helper()
	return contact.NewService(contact.NewInMemoryRepository(), nil)
}

func createTestContact(t *testing.T, service *contact.Service, ownerID, name string) *contact.Contact {
	t.Helper()

	created, err := service.Create(context.Background(), ownerID, contact.CreateInput{
		Name:  name,
		Email: name + "@example.com",
		Phone: "+1-555-0100",
	})
	require.NoError(t, err)

	// Creation timestamps must be strictly ordered for the sort assertions.
	time.Sleep(time.Millisecond)
	return created
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, status, ae.HTTPStatus)
}

/*
TestService_Create verifies a new contact starts Active and owned by the
caller.
*/
func TestService_Create(t *testing.T) {
	service := newTestService(t)

	created := createTestContact(t, service, ownerAnn, "alice")

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, ownerAnn, created.OwnerID)
	assert.False(t, created.IsTrashed)
	assert.Nil(t, created.DeletedAt)
	assert.False(t, created.IsFavorite)
}

/*
TestService_OwnershipIsolation verifies that another account's contact is
Forbidden on every operation while an absent ID stays NotFound.
*/
func TestService_OwnershipIsolation(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	created := createTestContact(t, service, ownerAnn, "alice")

	// Absent ID is a plain 404.
	_, err := service.Get(ctx, ownerBob, "no-such-id")
	requireStatus(t, err, http.StatusNotFound)

	// A real contact owned by somebody else is 403 on every operation.
	_, err = service.Get(ctx, ownerBob, created.ID)
	requireStatus(t, err, http.StatusForbidden)

	_, err = service.Update(ctx, ownerBob, created.ID, contact.UpdateInput{})
	requireStatus(t, err, http.StatusForbidden)

	_, err = service.ToggleFavorite(ctx, ownerBob, created.ID)
	requireStatus(t, err, http.StatusForbidden)

	_, err = service.SoftDelete(ctx, ownerBob, created.ID)
	requireStatus(t, err, http.StatusForbidden)

	_, err = service.Restore(ctx, ownerBob, created.ID)
	requireStatus(t, err, http.StatusForbidden)

	_, err = service.Purge(ctx, ownerBob, created.ID)
	requireStatus(t, err, http.StatusForbidden)

	// The owner still sees the contact untouched.
	found, err := service.Get(ctx, ownerAnn, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Name)
}

/*
TestService_ListIsolation verifies listings never leak across owners.
*/
func TestService_ListIsolation(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	createTestContact(t, service, ownerAnn, "alice")
	createTestContact(t, service, ownerBob, "bruno")

	annContacts, err := service.List(ctx, ownerAnn, contact.ListFilter{})
	require.NoError(t, err)
	require.Len(t, annContacts, 1)
	assert.Equal(t, "alice", annContacts[0].Name)

	bobContacts, err := service.List(ctx, ownerBob, contact.ListFilter{})
	require.NoError(t, err)
	require.Len(t, bobContacts, 1)
	assert.Equal(t, "bruno", bobContacts[0].Name)
}

/*
TestService_Update verifies partial updates: absent fields keep their stored
values.
*/
func TestService_Update(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	created := createTestContact(t, service, ownerAnn, "alice")

	newName := "alice cooper"
	updated, err := service.Update(ctx, ownerAnn, created.ID, contact.UpdateInput{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "alice cooper", updated.Name)
	assert.Equal(t, created.Email, updated.Email)
	assert.Equal(t, created.Phone, updated.Phone)
}

/*
TestService_Update_Trashed verifies a trashed contact cannot be edited until
it is restored.
*/
func TestService_Update_Trashed(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	created := createTestContact(t, service, ownerAnn, "alice")
	_, err := service.SoftDelete(ctx, ownerAnn, created.ID)
	require.NoError(t, err)

	newName := "renamed"
	_, err = service.Update(ctx, ownerAnn, created.ID, contact.UpdateInput{Name: &newName})
	requireStatus(t, err, http.StatusUnprocessableEntity)
}

/*
TestService_ToggleFavorite verifies the flag flips in both directions and a
double toggle restores the original state.
*/
func TestService_ToggleFavorite(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	created := createTestContact(t, service, ownerAnn, "alice")

	toggled, err := service.ToggleFavorite(ctx, ownerAnn, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsFavorite)

	toggledBack, err := service.ToggleFavorite(ctx, ownerAnn, created.ID)
	require.NoError(t, err)
	assert.False(t, toggledBack.IsFavorite)
}

/*
TestService_SoftDelete verifies the Active to Trashed transition: the contact
leaves the active listing, appears in trash, and a second soft delete is
rejected.
*/
func TestService_SoftDelete(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	created := createTestContact(t, service, ownerAnn, "alice")

	trashed, err := service.SoftDelete(ctx, ownerAnn, created.ID)
	require.NoError(t, err)
	assert.True(t, trashed.IsTrashed)
	require.NotNil(t, trashed.DeletedAt)

	active, err := service.List(ctx, ownerAnn, contact.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, active)

	trash, err := service.ListTrash(ctx, ownerAnn)
	require.NoError(t, err)
	require.Len(t, trash, 1)
	assert.Equal(t, created.ID, trash[0].ID)

	// Trashed contacts remain retrievable by ID.
	found, err := service.Get(ctx, ownerAnn, created.ID)
	require.NoError(t, err)
	assert.True(t, found.IsTrashed)

	_, err = service.SoftDelete(ctx, ownerAnn, created.ID)
	requireStatus(t, err, http.StatusUnprocessableEntity)
}

/*
TestService_Restore verifies the Trashed to Active transition clears
DeletedAt, and that restoring an Active contact is rejected.
*/
func TestService_Restore(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	created := createTestContact(t, service, ownerAnn, "alice")

	// Restore on an Active contact is a state violation.
	_, err := service.Restore(ctx, ownerAnn, created.ID)
	requireStatus(t, err, http.StatusUnprocessableEntity)

	_, err = service.SoftDelete(ctx, ownerAnn, created.ID)
	require.NoError(t, err)

	restored, err := service.Restore(ctx, ownerAnn, created.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsTrashed)
	assert.Nil(t, restored.DeletedAt)

	active, err := service.List(ctx, ownerAnn, contact.ListFilter{})
	require.NoError(t, err)
	require.Len(t, active, 1)

	trash, err := service.ListTrash(ctx, ownerAnn)
	require.NoError(t, err)
	assert.Empty(t, trash)
}

/*
TestService_Purge verifies permanent deletion requires the trash state,
returns the removed contact, and leaves no trace behind.
*/
func TestService_Purge(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	created := createTestContact(t, service, ownerAnn, "alice")

	// Active contacts must go through the trash first.
	_, err := service.Purge(ctx, ownerAnn, created.ID)
	requireStatus(t, err, http.StatusUnprocessableEntity)

	_, err = service.SoftDelete(ctx, ownerAnn, created.ID)
	require.NoError(t, err)

	purged, err := service.Purge(ctx, ownerAnn, created.ID)
	require.NoError(t, err)
	require.NotNil(t, purged)
	assert.Equal(t, created.ID, purged.ID)
	assert.Equal(t, "alice", purged.Name)
	assert.True(t, purged.IsTrashed)

	_, err = service.Get(ctx, ownerAnn, created.ID)
	requireStatus(t, err, http.StatusNotFound)

	trash, err := service.ListTrash(ctx, ownerAnn)
	require.NoError(t, err)
	assert.Empty(t, trash)
}

/*
TestService_Search verifies the case-insensitive substring match across
name, email, and phone.
*/
func TestService_Search(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	createTestContact(t, service, ownerAnn, "Anna Banks")
	createTestContact(t, service, ownerAnn, "Bruno")
	joe, err := service.Create(ctx, ownerAnn, contact.CreateInput{
		Name:  "Joe",
		Email: "joe@annex.io",
		Phone: "+81-90-1234",
	})
	require.NoError(t, err)

	// "ann" matches Anna Banks by name and Joe by email domain.
	results, err := service.List(ctx, ownerAnn, contact.ListFilter{Search: "ann"})
	require.NoError(t, err)
	require.Len(t, results, 2)

	names := []string{results[0].Name, results[1].Name}
	assert.Contains(t, names, "Anna Banks")
	assert.Contains(t, names, "Joe")

	// Phone digits are searchable too.
	results, err = service.List(ctx, ownerAnn, contact.ListFilter{Search: "90-1234"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, joe.ID, results[0].ID)

	// No match yields an empty, non-nil listing.
	results, err = service.List(ctx, ownerAnn, contact.ListFilter{Search: "zzz"})
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

/*
TestService_ListOrdering verifies all four sort modes against a fixed
creation order.
*/
func TestService_ListOrdering(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	// Created in this order: charlie first, then alice, then bruno.
	createTestContact(t, service, ownerAnn, "charlie")
	createTestContact(t, service, ownerAnn, "alice")
	createTestContact(t, service, ownerAnn, "bruno")

	tests := []struct {
		name  string
		sort  contact.Sort
		order []string
	}{
		{"newest_first_default", contact.SortNewestFirst, []string{"bruno", "alice", "charlie"}},
		{"oldest_first", contact.SortOldestFirst, []string{"charlie", "alice", "bruno"}},
		{"name_ascending", contact.SortNameAsc, []string{"alice", "bruno", "charlie"}},
		{"name_descending", contact.SortNameDesc, []string{"charlie", "bruno", "alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := service.List(ctx, ownerAnn, contact.ListFilter{Sort: tt.sort})
			require.NoError(t, err)
			require.Len(t, results, len(tt.order))

			for i, expected := range tt.order {
				assert.Equal(t, expected, results[i].Name)
			}
		})
	}
}

/*
TestService_TrashOrdering verifies trash is ordered by deletion time, most
recently deleted first.
*/
func TestService_TrashOrdering(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	first := createTestContact(t, service, ownerAnn, "alice")
	second := createTestContact(t, service, ownerAnn, "bruno")

	_, err := service.SoftDelete(ctx, ownerAnn, first.ID)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = service.SoftDelete(ctx, ownerAnn, second.ID)
	require.NoError(t, err)

	trash, err := service.ListTrash(ctx, ownerAnn)
	require.NoError(t, err)
	require.Len(t, trash, 2)

	assert.Equal(t, second.ID, trash[0].ID)
	assert.Equal(t, first.ID, trash[1].ID)
}

/*
TestNormalizeSort verifies raw query values map onto supported sorts, with
unknown values silently falling back to the default.
*/
func TestNormalizeSort(t *testing.T) {
	tests := []struct {
		raw      string
		expected contact.Sort
	}{
		{"", contact.SortNewestFirst},
		{"date-asc", contact.SortOldestFirst},
		{"name", contact.SortNameAsc},
		{"name-desc", contact.SortNameDesc},
		{"bogus", contact.SortNewestFirst},
		{"NAME", contact.SortNewestFirst},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, contact.NormalizeSort(tt.raw))
	}
}

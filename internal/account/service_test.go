// Copyright (c) 2026 Rolodex. All rights reserved.

package account_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rolodexhq/rolodex/internal/account"
	"github.com/rolodexhq/rolodex/internal/platform/apperr"
	"github.com/rolodexhq/rolodex/internal/platform/sec"
)

func newTestService(t *testing.T) (*account.Service, *sec.TokenService) {
	t.Helper()

	tokenService, err := sec.NewTokenService("test-secret-at-least-32-bytes-long", "rolodex.app")
	require.NoError(t, err)

	service := account.NewService(
		account.NewInMemoryRepository(),
		account.NewInMemoryResetTokenRepository(),
		tokenService,
		nil,
	)
	return service, tokenService
}

func registerTestAccount(t *testing.T, service *account.Service, email string) *account.Account {
	t.Helper()

	created, err := service.Register(context.Background(), account.RegisterInput{
		Username: "ann",
		Email:    email,
		Password: "secret-password",
	})
	require.NoError(t, err)
	return created
}

/*
TestService_RegisterAndLogin walks the happy path: register, log in, and
verify the issued token carries the account's identity claims.
*/
func TestService_RegisterAndLogin(t *testing.T) {
	service, tokenService := newTestService(t)
	ctx := context.Background()

	created := registerTestAccount(t, service, "ann@example.com")
	assert.NotEmpty(t, created.ID)
	assert.NotEqual(t, "secret-password", created.PasswordHash)

	accessToken, err := service.Login(ctx, account.LoginInput{
		Email:    "ann@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)

	claims, err := tokenService.VerifyToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.AccountID)
	assert.Equal(t, "ann", claims.Username)
	assert.Equal(t, "ann@example.com", claims.Email)
}

/*
TestService_Register_DuplicateEmail verifies a second registration with the
same email is rejected with a Conflict.
*/
func TestService_Register_DuplicateEmail(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	registerTestAccount(t, service, "ann@example.com")

	_, err := service.Register(ctx, account.RegisterInput{
		Username: "other",
		Email:    "ann@example.com",
		Password: "another-password",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusConflict, ae.HTTPStatus)
}

/*
TestService_Login_BadCredentials verifies that unknown email and wrong
password both produce the same generic Unauthorized message.
*/
func TestService_Login_BadCredentials(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	registerTestAccount(t, service, "ann@example.com")

	_, unknownEmailErr := service.Login(ctx, account.LoginInput{
		Email:    "nobody@example.com",
		Password: "secret-password",
	})
	_, wrongPasswordErr := service.Login(ctx, account.LoginInput{
		Email:    "ann@example.com",
		Password: "wrong-password",
	})

	require.Error(t, unknownEmailErr)
	require.Error(t, wrongPasswordErr)

	// Indistinguishable failures prevent account enumeration.
	assert.Equal(t, unknownEmailErr.Error(), wrongPasswordErr.Error())
	assert.Equal(t, http.StatusUnauthorized, apperr.As(wrongPasswordErr).HTTPStatus)
}

// outageRepository simulates a store that is down: every call fails with a
// server-side error rather than a domain one.
type outageRepository struct{}

var errStoreDown = errors.New("connection refused")

func (outageRepository) Create(context.Context, *account.Account) error {
	return apperr.Internal(errStoreDown)
}

func (outageRepository) FindByID(context.Context, string) (*account.Account, error) {
	return nil, apperr.Internal(errStoreDown)
}

func (outageRepository) FindByEmail(context.Context, string) (*account.Account, error) {
	return nil, apperr.Internal(errStoreDown)
}

func (outageRepository) UpdateEmail(context.Context, string, string) error {
	return apperr.Internal(errStoreDown)
}

func (outageRepository) UpdatePassword(context.Context, string, string) error {
	return apperr.Internal(errStoreDown)
}

/*
TestService_Login_StoreOutage verifies a failing store surfaces as a server
error instead of being disguised as bad credentials.
*/
func TestService_Login_StoreOutage(t *testing.T) {
	tokenService, err := sec.NewTokenService("test-secret-at-least-32-bytes-long", "rolodex.app")
	require.NoError(t, err)

	service := account.NewService(
		outageRepository{},
		account.NewInMemoryResetTokenRepository(),
		tokenService,
		nil,
	)

	_, err = service.Login(context.Background(), account.LoginInput{
		Email:    "ann@example.com",
		Password: "secret-password",
	})
	require.Error(t, err)
	assert.NotEqual(t, "Invalid email or password", err.Error())

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusInternalServerError, ae.HTTPStatus)
}

/*
TestService_UpdateEmail verifies the email change re-issues a token whose
email claim matches the new address.
*/
func TestService_UpdateEmail(t *testing.T) {
	service, tokenService := newTestService(t)
	ctx := context.Background()

	created := registerTestAccount(t, service, "ann@example.com")

	change, err := service.UpdateEmail(ctx, created.ID, "ann@rolodex.app", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, "ann@rolodex.app", change.Email)

	claims, err := tokenService.VerifyToken(change.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ann@rolodex.app", claims.Email)

	// Login now works against the new address only.
	_, err = service.Login(ctx, account.LoginInput{Email: "ann@rolodex.app", Password: "secret-password"})
	assert.NoError(t, err)
	_, err = service.Login(ctx, account.LoginInput{Email: "ann@example.com", Password: "secret-password"})
	assert.Error(t, err)
}

/*
TestService_UpdateEmail_WrongPassword verifies the current password gate.
*/
func TestService_UpdateEmail_WrongPassword(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	created := registerTestAccount(t, service, "ann@example.com")

	_, err := service.UpdateEmail(ctx, created.ID, "ann@rolodex.app", "wrong-password")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperr.As(err).HTTPStatus)
}

/*
TestService_UpdateEmail_Taken verifies an email owned by another account
cannot be claimed.
*/
func TestService_UpdateEmail_Taken(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	registerTestAccount(t, service, "ann@example.com")
	other, err := service.Register(ctx, account.RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)

	_, err = service.UpdateEmail(ctx, other.ID, "ann@example.com", "secret-password")
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.As(err).HTTPStatus)
}

/*
TestService_ChangePassword verifies the old credential stops working and the
new one takes over.
*/
func TestService_ChangePassword(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	created := registerTestAccount(t, service, "ann@example.com")

	err := service.ChangePassword(ctx, created.ID, "secret-password", "brand-new-password")
	require.NoError(t, err)

	_, err = service.Login(ctx, account.LoginInput{Email: "ann@example.com", Password: "secret-password"})
	assert.Error(t, err)
	_, err = service.Login(ctx, account.LoginInput{Email: "ann@example.com", Password: "brand-new-password"})
	assert.NoError(t, err)
}

/*
TestService_PasswordReset walks the forgot-password flow end to end and
checks the reset token is single use.
*/
func TestService_PasswordReset(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	registerTestAccount(t, service, "ann@example.com")

	token, err := service.RequestPasswordReset(ctx, "ann@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	err = service.ResetPassword(ctx, token, "reset-password")
	require.NoError(t, err)

	_, err = service.Login(ctx, account.LoginInput{Email: "ann@example.com", Password: "reset-password"})
	assert.NoError(t, err)

	// The consumed token cannot be replayed.
	err = service.ResetPassword(ctx, token, "yet-another-password")
	assert.Error(t, err)
}

/*
TestService_PasswordReset_UnknownEmail verifies unknown emails fail silently
so the endpoint cannot be used to probe registrations.
*/
func TestService_PasswordReset_UnknownEmail(t *testing.T) {
	service, _ := newTestService(t)

	token, err := service.RequestPasswordReset(context.Background(), "nobody@example.com")
	assert.NoError(t, err)
	assert.Empty(t, token)
}

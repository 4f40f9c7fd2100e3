// Copyright (c) 2026 Rolodex. All rights reserved.

package account

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rolodexhq/rolodex/internal/platform/apperr"
	"github.com/rolodexhq/rolodex/internal/platform/constants"
	"github.com/rolodexhq/rolodex/internal/platform/metrics"
	"github.com/rolodexhq/rolodex/internal/platform/sec"
	"github.com/rolodexhq/rolodex/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating identity tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string carrying the identity
	// claims with an absolute expiry of now+timeToLive.
	GenerateAccessToken(accountID, username, email string, timeToLive time.Duration) (string, error)
}

// Service implements account authentication and credential use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed carefully.
type Service struct {
	repository           Repository
	resetTokenRepository ResetTokenRepository
	tokenProvider        TokenProvider
	metrics              *metrics.Metrics
}

// NewService constructs a new account [Service] with necessary dependencies.
func NewService(repo Repository, resetRepo ResetTokenRepository, tokenProv TokenProvider, m *metrics.Metrics) *Service {
	return &Service{
		repository:           repo,
		resetTokenRepository: resetRepo,
		tokenProvider:        tokenProv,
		metrics:              m,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register validates, hashes, and persists a brand new account.
//
// The duplicate-email pre-check returns a client-safe Conflict early, but it
// is best-effort only: two concurrent registrations can both pass it, and
// the storage layer's unique index decides the loser with the same Conflict.
func (service *Service) Register(context context.Context, input RegisterInput) (*Account, error) {

	// Best-effort duplicate check for a friendly early error.
	_, err := service.repository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("account_service_hash_failed: %w", err)
	}

	// Construct the new Account entity. Time-sortable ID to prevent PG index fragmentation.
	account := &Account{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}

	if err := service.repository.Create(context, account); err != nil {
		return nil, err
	}

	service.metrics.IncrementAccountsRegistered()
	return account, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// Login validates credentials and issues a signed access token.
//
// A single generic Unauthorized covers both "no such email" and "wrong
// password" to prevent account enumeration. Transient store failures are NOT
// folded into that 401: a caller with correct credentials must see an outage
// as a server error, not as a rejection.
func (service *Service) Login(context context.Context, input LoginInput) (string, error) {
	account, err := service.repository.FindByEmail(context, input.Email)
	if err != nil {
		if ae := apperr.As(err); ae != nil && ae.HTTPStatus == http.StatusNotFound {
			service.metrics.IncrementLoginAttempt("failure")
			return "", apperr.Unauthorized("Invalid email or password")
		}
		return "", fmt.Errorf("account_service_login_lookup_failed: %w", err)
	}

	// bcrypt comparison is constant-time to prevent timing attacks.
	if !sec.CheckPasswordHash(input.Password, account.PasswordHash) {
		service.metrics.IncrementLoginAttempt("failure")
		return "", apperr.Unauthorized("Invalid email or password")
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(
		account.ID, account.Username, account.Email, constants.AccessTokenTTL)
	if err != nil {
		return "", fmt.Errorf("account_service_token_generation_failed: %w", err)
	}

	service.metrics.IncrementLoginAttempt("success")
	return accessToken, nil
}

// # Credential Mutation

// EmailChange is the result of a successful email update: the new email and
// a fresh token whose claims carry it.
type EmailChange struct {
	Email       string
	AccessToken string
}

// UpdateEmail verifies the current password, changes the account's email,
// and re-issues the access token so the embedded email claim never goes
// stale relative to the store.
func (service *Service) UpdateEmail(context context.Context, accountID, newEmail, currentPassword string) (*EmailChange, error) {
	account, err := service.repository.FindByID(context, accountID)
	if err != nil {
		return nil, err
	}

	// Verify the current password before touching the email.
	if !sec.CheckPasswordHash(currentPassword, account.PasswordHash) {
		return nil, apperr.Unauthorized("Current password is incorrect")
	}

	// Best-effort uniqueness check excluding self; the unique index is the
	// authoritative guard.
	if existing, err := service.repository.FindByEmail(context, newEmail); err == nil && existing.ID != accountID {
		return nil, apperr.Conflict("Email is already in use")
	}

	if err := service.repository.UpdateEmail(context, accountID, newEmail); err != nil {
		return nil, err
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(
		account.ID, account.Username, newEmail, constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("account_service_token_reissue_failed: %w", err)
	}

	return &EmailChange{Email: newEmail, AccessToken: accessToken}, nil
}

// ChangePassword verifies the current password and replaces the stored hash.
func (service *Service) ChangePassword(context context.Context, accountID, currentPassword, newPassword string) error {
	account, err := service.repository.FindByID(context, accountID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, account.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("account_service_change_password_hash_failed: %w", err)
	}

	if err := service.repository.UpdatePassword(context, accountID, hashedPassword); err != nil {
		return err
	}

	return nil
}

// # Password Recovery

// RequestPasswordReset initiates the forgot-password flow.
//
// It never reveals whether the email exists: unknown emails succeed silently
// with an empty token.
func (service *Service) RequestPasswordReset(context context.Context, email string) (string, error) {
	account, err := service.repository.FindByEmail(context, email)
	if err != nil {
		return "", nil
	}

	token, err := sec.GenerateSecureToken(constants.ResetTokenLength)
	if err != nil {
		return "", fmt.Errorf("account_service_generate_reset_token_failed: %w", err)
	}

	// Only the digest is stored; the raw token travels to the user.
	if err := service.resetTokenRepository.Set(context, sec.HashToken(token), account.ID, constants.ResetTokenTTL); err != nil {
		return "", fmt.Errorf("account_service_save_reset_token_failed: %w", err)
	}

	return token, nil
}

// ResetPassword completes the forgot-password flow, consuming the token.
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {
	tokenHash := sec.HashToken(token)

	accountID, err := service.resetTokenRepository.Get(context, tokenHash)
	if err != nil {
		return err
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("account_service_reset_password_hash_failed: %w", err)
	}

	if err := service.repository.UpdatePassword(context, accountID, hashedPassword); err != nil {
		return err
	}

	// Single use: delete the consumed token.
	_ = service.resetTokenRepository.Delete(context, tokenHash)

	return nil
}

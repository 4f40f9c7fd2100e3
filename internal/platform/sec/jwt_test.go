// Copyright (c) 2026 Rolodex. All rights reserved.

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rolodexhq/rolodex/internal/platform/sec"
)

const testIssuer = "rolodex.app"

func newTestTokenService(t *testing.T) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService("test-secret-at-least-32-bytes-long", testIssuer)
	require.NoError(t, err)
	return service
}

/*
TestTokenService_RoundTrip verifies that a generated token carries the
identity claims back through verification.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTestTokenService(t)

	signed, err := service.GenerateAccessToken("account-1", "ann", "ann@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := service.VerifyToken(signed)
	require.NoError(t, err)

	assert.Equal(t, "account-1", claims.AccountID)
	assert.Equal(t, "ann", claims.Username)
	assert.Equal(t, "ann@example.com", claims.Email)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

/*
TestTokenService_Expired verifies that a token past its expiry is classified
as ErrTokenExpired, not merely invalid.
*/
func TestTokenService_Expired(t *testing.T) {
	service := newTestTokenService(t)

	signed, err := service.GenerateAccessToken("account-1", "ann", "ann@example.com", -time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(signed)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, sec.ErrTokenExpired)
}

/*
TestTokenService_Tampered verifies that a token signed with a different
secret is rejected as invalid.
*/
func TestTokenService_Tampered(t *testing.T) {
	service := newTestTokenService(t)

	forger, err := sec.NewTokenService("a-completely-different-secret-value", testIssuer)
	require.NoError(t, err)

	forged, err := forger.GenerateAccessToken("account-1", "ann", "ann@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := service.VerifyToken(forged)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, sec.ErrTokenInvalid)
}

/*
TestTokenService_TamperedAndExpired verifies precedence: a forged token is
reported invalid even when it is also expired.
*/
func TestTokenService_TamperedAndExpired(t *testing.T) {
	service := newTestTokenService(t)

	forger, err := sec.NewTokenService("a-completely-different-secret-value", testIssuer)
	require.NoError(t, err)

	forged, err := forger.GenerateAccessToken("account-1", "ann", "ann@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(forged)
	assert.ErrorIs(t, err, sec.ErrTokenInvalid)
	assert.NotErrorIs(t, err, sec.ErrTokenExpired)
}

/*
TestTokenService_Malformed verifies rejection of garbage token strings.
*/
func TestTokenService_Malformed(t *testing.T) {
	service := newTestTokenService(t)

	for _, tokenString := range []string{"", "not-a-jwt", strings.Repeat("x.", 10)} {
		claims, err := service.VerifyToken(tokenString)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, sec.ErrTokenInvalid)
	}
}

/*
TestNewTokenService_EmptySecret verifies construction fails without a secret.
*/
func TestNewTokenService_EmptySecret(t *testing.T) {
	service, err := sec.NewTokenService("", testIssuer)
	assert.Nil(t, service)
	assert.Error(t, err)
}

// Copyright (c) 2026 Rolodex. All rights reserved.

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rolodexhq/rolodex/internal/platform/ctxutil"
	"github.com/rolodexhq/rolodex/internal/platform/middleware"
	"github.com/rolodexhq/rolodex/internal/platform/sec"
)

// fakeVerifier resolves one known token string, rejecting everything else.
type fakeVerifier struct {
	validToken string
	claims     *sec.AuthClaims
}

func (v *fakeVerifier) VerifyToken(tokenStr string) (*sec.AuthClaims, error) {
	if tokenStr == v.validToken {
		return v.claims, nil
	}
	return nil, sec.ErrTokenInvalid
}

func newAuthChain(verifier middleware.TokenVerifier, requireAuth bool) http.Handler {
	var handler http.Handler = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetIdentity(request.Context())
		if claims != nil {
			writer.Header().Set("X-Test-Account", claims.AccountID)
		}
		writer.WriteHeader(http.StatusOK)
	})

	if requireAuth {
		handler = middleware.RequireAuth(handler)
	}
	return middleware.Authenticate(verifier)(handler)
}

/*
TestAuthenticate_ValidToken verifies the claims land in the request context.
*/
func TestAuthenticate_ValidToken(t *testing.T) {
	verifier := &fakeVerifier{
		validToken: "good-token",
		claims:     &sec.AuthClaims{AccountID: "account-1"},
	}
	chain := newAuthChain(verifier, true)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer good-token")
	recorder := httptest.NewRecorder()

	chain.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "account-1", recorder.Header().Get("X-Test-Account"))
}

/*
TestAuthenticate_AnonymousPassThrough verifies requests without a token reach
unprotected handlers as anonymous.
*/
func TestAuthenticate_AnonymousPassThrough(t *testing.T) {
	chain := newAuthChain(&fakeVerifier{}, false)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	recorder := httptest.NewRecorder()

	chain.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, recorder.Header().Get("X-Test-Account"))
}

/*
TestRequireAuth_BlocksAnonymous verifies protected routes reject missing
tokens with 401.
*/
func TestRequireAuth_BlocksAnonymous(t *testing.T) {
	chain := newAuthChain(&fakeVerifier{}, true)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	recorder := httptest.NewRecorder()

	chain.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestAuthenticate_RejectedTokens verifies invalid tokens and malformed headers
are rejected before reaching the handler, even on unprotected routes.
*/
func TestAuthenticate_RejectedTokens(t *testing.T) {
	verifier := &fakeVerifier{validToken: "good-token"}

	tests := []struct {
		name   string
		header string
	}{
		{"unknown_token", "Bearer bad-token"},
		{"wrong_scheme", "Basic good-token"},
		{"missing_token", "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := newAuthChain(verifier, false)

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set("Authorization", tt.header)
			recorder := httptest.NewRecorder()

			chain.ServeHTTP(recorder, request)

			require.Equal(t, http.StatusUnauthorized, recorder.Code)
		})
	}
}

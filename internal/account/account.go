// Copyright (c) 2026 Rolodex. All rights reserved.

/*
Package account implements the identity layer of the contact directory.

It defines the Account entity and the use cases for registration, login,
identity projection, and credential mutation (email and password changes).

# Architecture

  - Service: Orchestrates business logic (Register, Login, UpdateEmail).
  - Repository: Abstracted interfaces for Postgres (accounts) and Redis
    (volatile reset tokens).
  - Security: Leverages bcrypt hashing and HS256-signed JWTs via the
    platform sec package.

Tokens are stateless: the identity claims travel inside the JWT and expire
after a fixed window, with no server-side revocation list.
*/
package account

import "time"

// # Domain Entities

// Account represents a registered owner of a contact directory.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the read-only projection of the authenticated caller, derived
// from validated token claims rather than a store lookup.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the account domain.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldToken           = "token"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldAccessToken     = "access_token"
	FieldMessage         = "message"
)

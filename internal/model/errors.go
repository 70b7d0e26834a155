package model

import "errors"

// Core ledger and quota failures. Handlers map these to caller-facing
// statuses; anything else is treated as a storage failure.
var (
	ErrNotFound = errors.New("not found")

	ErrZeroChange     = errors.New("aura change must be non-zero")
	ErrEmptyReason    = errors.New("reason is required")
	ErrSelfTransfer   = errors.New("cannot change own aura")
	ErrNegativeAmount = errors.New("amount must be non-negative")

	ErrQuotaExceeded = errors.New("daily aura quota exceeded")
)

// Registration and login failures.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Refresh token failures.
var (
	ErrTokenRevoked  = errors.New("refresh token revoked")
	ErrTokenExpired  = errors.New("refresh token expired")
	ErrTokenMismatch = errors.New("refresh token mismatch")
)

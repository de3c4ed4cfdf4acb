// Package common defines shared constants and sentinel errors used across
// SnipKeeper components. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrConflict   = errors.New("already exists")

	// Service-level errors.
	ErrorInternal      = errors.New("internal error")
	ErrInvalidInput    = errors.New("invalid input")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")

	// Credential errors. ErrUnknownUser matches ErrInvalidCredentials as well,
	// so callers that do not care about the reason can test for the latter only.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownUser        = fmt.Errorf("%w: unknown user", ErrInvalidCredentials)

	// Auth errors (malformed, expired or badly signed token).
	ErrInvalidToken = errors.New("invalid token")
)

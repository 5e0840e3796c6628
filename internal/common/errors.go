// Package common defines shared constants and sentinel errors used across
// the issuer and the session client. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Issuer input and configuration errors.
	ErrMissingPassword = errors.New("password parameter is required")
	ErrMisconfigured   = errors.New("server misconfigured")

	// Credential record errors.
	ErrMalformedCredential  = errors.New("malformed credential record")
	ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)

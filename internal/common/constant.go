package common

import "time"

const (
	// DefaultTokenKey and DefaultExpiryKey name the client storage slots
	// used when the site configuration does not override them.
	DefaultTokenKey  = "docs_auth_token"
	DefaultExpiryKey = "docs_auth_expiry"

	// TokenSubject and TokenRole are baked into every issued token.
	TokenSubject = "docs-user"
	TokenRole    = "viewer"

	// ProviderPassword selects the shared-password scheme in the site config.
	ProviderPassword = "password"

	DefaultTokenValidity = 7 * 24 * time.Hour
	DefaultFailureDelay  = time.Second
)

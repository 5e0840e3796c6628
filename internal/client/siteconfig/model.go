// Package siteconfig models the docs site's app-config.json and loads it
// once per process from a file, an HTTP endpoint or S3.
package siteconfig

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/docsauth/internal/common"
)

// AuthConfig is features.auth.
type AuthConfig struct {
	Enabled           bool   `json:"enabled"`
	Provider          string `json:"provider"`
	PasswordProtected bool   `json:"passwordProtected,omitempty"`
	APIURL            string `json:"apiUrl,omitempty"`
	TokenKey          string `json:"tokenKey,omitempty"`
	ExpiryKey         string `json:"expiryKey,omitempty"`
}

// ThemeConfig is features.theme.
type ThemeConfig struct {
	DarkMode    bool   `json:"darkMode"`
	ColorScheme string `json:"colorScheme"`
}

type Features struct {
	Auth  AuthConfig  `json:"auth"`
	Theme ThemeConfig `json:"theme"`
}

type MetaConfig struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AppConfig is the site configuration document.
type AppConfig struct {
	Features Features   `json:"features"`
	Meta     MetaConfig `json:"meta"`
}

// Default returns the configuration used for absent keys: auth disabled,
// password provider, default storage keys.
func Default() *AppConfig {
	return &AppConfig{
		Features: Features{
			Auth: AuthConfig{
				Enabled:   false,
				Provider:  common.ProviderPassword,
				TokenKey:  common.DefaultTokenKey,
				ExpiryKey: common.DefaultExpiryKey,
			},
			Theme: ThemeConfig{
				DarkMode:    true,
				ColorScheme: "blue",
			},
		},
		Meta: MetaConfig{
			Title:       "API Documentation Platform",
			Description: "Interactive API documentation for platform services",
		},
	}
}

// Parse decodes data over Default, so keys missing from the document keep
// their default values. Blank storage keys are reset to the defaults.
func Parse(data []byte) (*AppConfig, error) {
	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode app config: %w", err)
	}

	auth := &cfg.Features.Auth
	if strings.TrimSpace(auth.TokenKey) == "" {
		auth.TokenKey = common.DefaultTokenKey
	}
	if strings.TrimSpace(auth.ExpiryKey) == "" {
		auth.ExpiryKey = common.DefaultExpiryKey
	}
	if auth.TokenKey == auth.ExpiryKey {
		return nil, fmt.Errorf("%w: tokenKey and expiryKey must differ", common.ErrorValidation)
	}
	return cfg, nil
}

// PasswordGuarded reports whether pages must be guarded: auth enabled with
// the password provider.
func (c *AppConfig) PasswordGuarded() bool {
	return c.Features.Auth.Enabled && c.Features.Auth.Provider == common.ProviderPassword
}

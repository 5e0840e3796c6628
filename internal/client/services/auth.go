package services

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/docsauth/internal/client/client"
	"github.com/dmitrijs2005/docsauth/internal/client/siteconfig"
	"github.com/dmitrijs2005/docsauth/internal/common"
	"github.com/dmitrijs2005/docsauth/internal/logging"
)

// ErrAuthDisabled is returned by Login when the site does not use password
// authentication.
var ErrAuthDisabled = errors.New("password authentication is not enabled")

// ConfigLoader yields the site configuration.
type ConfigLoader interface {
	Load(ctx context.Context) (*siteconfig.AppConfig, error)
}

// ClientFactory builds an issuer client for the configured endpoint.
type ClientFactory func(apiURL string) client.Client

// AuthService runs the login flow: local validation, the issuer call and
// persisting the session.
type AuthService struct {
	loader    ConfigLoader
	db        *sql.DB
	newClient ClientFactory
	logger    logging.Logger
	now       func() time.Time
}

func NewAuthService(loader ConfigLoader, db *sql.DB, newClient ClientFactory, logger logging.Logger) *AuthService {
	return &AuthService{
		loader:    loader,
		db:        db,
		newClient: newClient,
		logger:    logger,
		now:       time.Now,
	}
}

// Login exchanges password for a token and stores it with an expiry of
// now + expiresIn by the client clock. Surrounding whitespace is trimmed,
// as the login form does, and a blank password is rejected without calling
// the issuer.
func (a *AuthService) Login(ctx context.Context, password []byte) error {
	password = bytes.TrimSpace(password)
	if len(password) == 0 {
		return common.ErrMissingPassword
	}

	cfg, err := a.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("site config: %w", err)
	}
	if !cfg.PasswordGuarded() {
		return ErrAuthDisabled
	}
	if cfg.Features.Auth.APIURL == "" {
		return fmt.Errorf("%w: features.auth.apiUrl is not set", common.ErrorValidation)
	}

	res, err := a.newClient(cfg.Features.Auth.APIURL).Login(ctx, password)
	if err != nil {
		a.logger.Warn(ctx, "login failed", "error", err)
		return err
	}

	expiry := a.now().Unix() + res.ExpiresIn
	if err := NewSessionStore(a.db, cfg.Features.Auth).Save(ctx, res.Token, expiry); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	a.logger.Info(ctx, "login successful", "expires_at", time.Unix(expiry, 0).UTC().Format(time.RFC3339))
	return nil
}

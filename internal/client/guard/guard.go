// Package guard decides whether a docs page may be shown. It reads the
// session stored by the login flow, clears it once it has expired and
// sends unauthenticated readers to the login page.
package guard

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/docsauth/internal/client/deploy"
	"github.com/dmitrijs2005/docsauth/internal/client/services"
	"github.com/dmitrijs2005/docsauth/internal/client/siteconfig"
	"github.com/dmitrijs2005/docsauth/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// State of a page view.
type State int

const (
	Unchecked State = iota
	Checking
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Unchecked:
		return "unchecked"
	case Checking:
		return "checking"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Decision is the outcome of a check. Redirect is empty when the page
// should be rendered.
type Decision struct {
	State    State
	Redirect string
	Reason   string
}

// Render reports whether the page content may be shown.
func (d Decision) Render() bool {
	return d.State == Authenticated && d.Redirect == ""
}

// Options configure a Guard.
type Options struct {
	Deploy    deploy.Context
	LoginPage string

	// FailOpen grants access when the site config cannot be fetched.
	// The default is to treat the reader as unauthenticated.
	FailOpen bool
}

// Guard checks one page view at a time; it is not safe for concurrent use.
type Guard struct {
	loader services.ConfigLoader
	db     *sql.DB
	opts   Options
	logger logging.Logger
	now    func() time.Time

	state State
}

func New(loader services.ConfigLoader, db *sql.DB, opts Options, logger logging.Logger) *Guard {
	return &Guard{
		loader: loader,
		db:     db,
		opts:   opts,
		logger: logger,
		now:    time.Now,
		state:  Unchecked,
	}
}

// State returns the state of the last check.
func (g *Guard) State() State {
	return g.state
}

func (g *Guard) loginURL() string {
	return g.opts.Deploy.LoginURL(g.opts.LoginPage)
}

func (g *Guard) finish(d Decision) Decision {
	g.state = d.State
	return d
}

// Check guards a protected page. Unauthenticated readers get a redirect to
// the login page.
func (g *Guard) Check(ctx context.Context) Decision {
	g.state = Checking

	cfg, err := g.loader.Load(ctx)
	if err != nil {
		if g.opts.FailOpen {
			g.logger.Warn(ctx, "site config unavailable, granting access", "error", err)
			return g.finish(Decision{State: Authenticated, Reason: "site config unavailable (fail-open)"})
		}
		g.logger.Warn(ctx, "site config unavailable, denying access", "error", err)
		return g.finish(Decision{State: Unauthenticated, Redirect: g.loginURL(), Reason: "site config unavailable"})
	}

	if !cfg.PasswordGuarded() {
		return g.finish(Decision{State: Authenticated, Reason: "password authentication disabled"})
	}

	ok, reason, err := g.validate(ctx, cfg.Features.Auth)
	if err != nil {
		g.logger.Error(ctx, "session check failed", "error", err)
		return g.finish(Decision{State: Unauthenticated, Redirect: g.loginURL(), Reason: "session storage unavailable"})
	}
	if !ok {
		return g.finish(Decision{State: Unauthenticated, Redirect: g.loginURL(), Reason: reason})
	}

	return g.finish(Decision{State: Authenticated})
}

// CheckLoginPage handles a visit to the login page: an already
// authenticated reader is sent to the docs root.
func (g *Guard) CheckLoginPage(ctx context.Context) Decision {
	d := g.Check(ctx)
	if d.State == Authenticated {
		return g.finish(Decision{State: Authenticated, Redirect: g.opts.Deploy.RootURL(), Reason: "already authenticated"})
	}
	return g.finish(Decision{State: Unauthenticated, Reason: d.Reason})
}

// Logout clears the stored session and redirects to the login page.
func (g *Guard) Logout(ctx context.Context) (Decision, error) {
	if err := services.NewSessionStore(g.db, g.authConfig(ctx)).Clear(ctx); err != nil {
		return Decision{}, fmt.Errorf("clear session: %w", err)
	}
	g.logger.Info(ctx, "logged out")
	return g.finish(Decision{State: Unauthenticated, Redirect: g.loginURL(), Reason: "logged out"}), nil
}

// authConfig returns the storage keys in use, falling back to the defaults
// when the site config is unavailable.
func (g *Guard) authConfig(ctx context.Context) siteconfig.AuthConfig {
	if cfg, err := g.loader.Load(ctx); err == nil {
		return cfg.Features.Auth
	}
	return siteconfig.Default().Features.Auth
}

// validate applies the expiry check to the stored session. Expired or
// unreadable sessions are cleared.
func (g *Guard) validate(ctx context.Context, auth siteconfig.AuthConfig) (bool, string, error) {
	store := services.NewSessionStore(g.db, auth)

	session, err := store.Load(ctx)
	if err != nil {
		return false, "", err
	}
	if session == nil {
		return false, "no session", nil
	}

	expiry, err := effectiveExpiry(session)
	if err != nil {
		g.logger.Warn(ctx, "discarding unreadable session", "error", err)
		return false, "invalid session", store.Clear(ctx)
	}

	if g.now().Unix() > expiry {
		g.logger.Info(ctx, "session expired", "expired_at", time.Unix(expiry, 0).UTC().Format(time.RFC3339))
		return false, "session expired", store.Clear(ctx)
	}

	return true, "", nil
}

// effectiveExpiry is the earlier of the stored expiry and the token's exp
// claim. The token signature is not verified here; only the issuer can do
// that.
func effectiveExpiry(s *services.StoredSession) (int64, error) {
	expiry, err := strconv.ParseInt(strings.TrimSpace(s.Expiry), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("stored expiry %q is not a number", s.Expiry)
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return 0, fmt.Errorf("stored token is malformed: %w", err)
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Unix() < expiry {
		expiry = claims.ExpiresAt.Unix()
	}
	return expiry, nil
}

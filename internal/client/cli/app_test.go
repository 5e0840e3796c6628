package cli

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dmitrijs2005/docsauth/internal/client/client"
	"github.com/dmitrijs2005/docsauth/internal/client/config"
	"github.com/dmitrijs2005/docsauth/internal/client/deploy"
	"github.com/dmitrijs2005/docsauth/internal/client/guard"
	"github.com/dmitrijs2005/docsauth/internal/client/services"
	"github.com/dmitrijs2005/docsauth/internal/client/siteconfig"
	"github.com/dmitrijs2005/docsauth/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticLoader struct {
	cfg *siteconfig.AppConfig
	err error
}

func (l staticLoader) Load(context.Context) (*siteconfig.AppConfig, error) { return l.cfg, l.err }

type fakeClient struct {
	token string
	err   error
}

func (f *fakeClient) Login(context.Context, []byte) (*client.LoginResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &client.LoginResult{Token: f.token, ExpiresIn: 3600}, nil
}

func testToken(t *testing.T) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func newTestApp(t *testing.T, loader services.ConfigLoader, c client.Client) (*App, *bytes.Buffer) {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.BaseURL = "https://docs.example.com"
	cfg.BasePath = "/docs"

	dc, err := deploy.New(cfg.BaseURL, cfg.BasePath)
	require.NoError(t, err)

	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var out bytes.Buffer
	app := newApp(cfg, dc, db, loader, func(string) client.Client { return c },
		logging.NewTextLogger(io.Discard, slog.LevelError), &out)
	return app, &out
}

func guardedLoader() staticLoader {
	cfg := siteconfig.Default()
	cfg.Features.Auth.Enabled = true
	cfg.Features.Auth.APIURL = "https://auth.example.com/auth"
	return staticLoader{cfg: cfg}
}

func sessionCount(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM local_storage`).Scan(&n))
	return n
}

func TestApp_ProtectedPageRedirectsUntilLogin(t *testing.T) {
	stubPassword(t, " hunter2 ")
	app, out := newTestApp(t, guardedLoader(), &fakeClient{token: testToken(t)})
	ctx := context.Background()

	require.NoError(t, app.Open(ctx, "/guide.html"))
	assert.Contains(t, out.String(), "Redirecting to https://docs.example.com/docs/login.html (no session)")
	assert.Equal(t, guard.Unauthenticated, app.guard.State())
	assert.Equal(t, "(/login.html unauthenticated)", app.getStatus())

	out.Reset()
	require.NoError(t, app.Login(ctx))
	assert.Contains(t, out.String(), "Login successful")
	assert.Contains(t, out.String(), "Showing https://docs.example.com/docs/")
	assert.Equal(t, 2, sessionCount(t, app.db))

	out.Reset()
	require.NoError(t, app.Open(ctx, "/guide.html"))
	assert.Equal(t, "Showing https://docs.example.com/docs/guide.html\n", out.String())
	assert.Equal(t, "(/guide.html authenticated)", app.getStatus())
}

func TestApp_LoginPageRedirectsAuthenticatedReader(t *testing.T) {
	stubPassword(t, "hunter2")
	app, out := newTestApp(t, guardedLoader(), &fakeClient{token: testToken(t)})
	ctx := context.Background()

	require.NoError(t, app.Open(ctx, "/login.html"))
	assert.Equal(t, "Showing https://docs.example.com/docs/login.html\n", out.String())

	require.NoError(t, app.Login(ctx))
	out.Reset()

	require.NoError(t, app.Open(ctx, "/docs/login.html"))
	assert.Contains(t, out.String(), "Redirecting to https://docs.example.com/docs/ (already authenticated)")
}

func TestApp_LoginFailure(t *testing.T) {
	stubPassword(t, "wrong")
	app, out := newTestApp(t, guardedLoader(), &fakeClient{err: client.ErrUnauthorized})

	err := app.Login(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, client.ErrUnauthorized))
	assert.NotContains(t, out.String(), "Login successful")
	assert.Equal(t, 0, sessionCount(t, app.db))
}

func TestApp_Logout(t *testing.T) {
	stubPassword(t, "hunter2")
	app, out := newTestApp(t, guardedLoader(), &fakeClient{token: testToken(t)})
	ctx := context.Background()

	require.NoError(t, app.Login(ctx))
	out.Reset()

	require.NoError(t, app.Logout(ctx))
	assert.Equal(t, "Redirecting to https://docs.example.com/docs/login.html (logged out)\n", out.String())
	assert.Equal(t, 0, sessionCount(t, app.db))
}

func TestApp_Status(t *testing.T) {
	t.Run("auth disabled", func(t *testing.T) {
		app, out := newTestApp(t, staticLoader{cfg: siteconfig.Default()}, &fakeClient{})
		require.NoError(t, app.Status(context.Background()))
		assert.Equal(t, "authenticated (password authentication disabled)\n", out.String())
	})

	t.Run("config unavailable", func(t *testing.T) {
		app, out := newTestApp(t, staticLoader{err: errors.New("offline")}, &fakeClient{})
		require.NoError(t, app.Status(context.Background()))
		assert.Equal(t, "unauthenticated (site config unavailable)\n", out.String())
	})
}

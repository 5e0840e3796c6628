package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/dmitrijs2005/docsauth/internal/client/client"
	"github.com/dmitrijs2005/docsauth/internal/client/config"
	"github.com/dmitrijs2005/docsauth/internal/client/deploy"
	"github.com/dmitrijs2005/docsauth/internal/client/guard"
	"github.com/dmitrijs2005/docsauth/internal/client/services"
	"github.com/dmitrijs2005/docsauth/internal/client/siteconfig"
	"github.com/dmitrijs2005/docsauth/internal/logging"
)

type App struct {
	config *config.Config
	deploy deploy.Context
	db     *sql.DB
	auth   *services.AuthService
	guard  *guard.Guard
	logger logging.Logger
	out    io.Writer

	// page is the last page opened through the guard.
	page string
}

// NewApp opens local storage, resolves the site config source and wires
// the login flow and the guard.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	dc, err := deploy.New(c.BaseURL, c.BasePath)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	httpClient := &http.Client{Timeout: c.RequestTimeout}

	source, err := siteconfig.NewSource(ctx, c, httpClient)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("site config source: %w", err)
	}

	newClient := func(apiURL string) client.Client {
		return client.NewHTTPClient(apiURL, httpClient)
	}

	return newApp(c, dc, db, siteconfig.NewLoader(source), newClient, logger, os.Stdout), nil
}

func newApp(c *config.Config, dc deploy.Context, db *sql.DB, loader services.ConfigLoader,
	newClient services.ClientFactory, logger logging.Logger, out io.Writer) *App {

	g := guard.New(loader, db, guard.Options{
		Deploy:    dc,
		LoginPage: c.LoginPage,
		FailOpen:  c.FailOpen,
	}, logger)

	return &App{
		config: c,
		deploy: dc,
		db:     db,
		auth:   services.NewAuthService(loader, db, newClient, logger),
		guard:  g,
		logger: logger,
		out:    out,
	}
}

// Run starts the REPL on stdin and closes local storage when it returns.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	printlnFn("Docs session client (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) getStatus() string {
	s := a.guard.State().String()
	if a.page != "" {
		s = a.page + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}

// Package server initializes and runs the token issuer: it builds the logger,
// the issuance service and the HTTP endpoint, and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/docsauth/internal/logging"
	"github.com/dmitrijs2005/docsauth/internal/server/config"
	"github.com/dmitrijs2005/docsauth/internal/server/httpapi"
	"github.com/dmitrijs2005/docsauth/internal/server/issuer"
	"github.com/dmitrijs2005/docsauth/internal/server/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type App struct {
	config  *config.Config
	zap     *zap.Logger
	logger  logging.Logger
	issuer  *issuer.Service
	handler *gin.Engine
}

func NewApp(c *config.Config) (*App, error) {

	zl, err := logging.NewZap(logging.Config{Level: c.LogLevel, Format: c.LogFormat})
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}
	logger := logging.NewZapLogger(zl)

	if c.MetricsEnabled {
		if err := metrics.Init(); err != nil {
			return nil, fmt.Errorf("metrics init error: %w", err)
		}
	}

	is := issuer.NewService(c, logger)

	gin.SetMode(gin.ReleaseMode)
	handler := httpapi.NewRouter(httpapi.RouterConfig{
		Logger:         zl,
		Issuer:         is,
		AuthPath:       c.AuthPath,
		AllowOrigins:   c.AllowOrigins,
		MetricsEnabled: c.MetricsEnabled,
	})

	return &App{config: c, zap: zl, logger: logger, issuer: is, handler: handler}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.handler, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until the parent context is cancelled or a termination signal
// arrives.
func (app *App) Run(parent context.Context) {

	ctx, cancelFunc := context.WithCancel(parent)
	defer cancelFunc()
	defer func() { _ = app.zap.Sync() }()

	app.logger.Info(ctx, "Starting app...",
		"environment", app.config.Environment,
		"auth_path", app.config.AuthPath,
	)

	if err := app.issuer.Ready(); err != nil {
		// requests will be answered with 500 until the deployment is fixed
		app.logger.Warn(ctx, "issuer is not configured", "error", err)
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}

// Package httpapi exposes the token issuer over HTTP using gin.
package httpapi

import (
	"github.com/dmitrijs2005/docsauth/internal/server/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RouterConfig holds the dependencies of the HTTP router.
type RouterConfig struct {
	Logger         *zap.Logger
	Issuer         Issuer
	AuthPath       string
	AllowOrigins   []string
	MetricsEnabled bool
}

// NewRouter wires middleware and routes:
//
//	POST    <AuthPath>   issue a token
//	OPTIONS <AuthPath>   CORS preflight
//	GET     /health/live liveness probe
//	GET     /metrics     Prometheus metrics (when enabled)
func NewRouter(config RouterConfig) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	if config.MetricsEnabled {
		router.Use(Metrics())
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	router.Use(RequestLogger(logger))

	if len(config.AllowOrigins) > 0 {
		router.Use(CORS(config.AllowOrigins))
	}

	authPath := config.AuthPath
	if authPath == "" {
		authPath = "/auth"
	}

	authHandler := NewAuthHandler(config.Issuer)
	router.POST(authPath, authHandler.Authenticate)
	router.OPTIONS(authPath, authHandler.Preflight)

	router.GET("/health/live", Liveness)

	if config.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(
			metrics.Registry,
			promhttp.HandlerOpts{},
		)))
	}

	return router
}

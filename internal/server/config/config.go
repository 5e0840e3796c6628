// Package config handles configuration for the token issuer, including
// defaults, JSON overlay, environment variables and command-line flags.
package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/docsauth/internal/common"
)

// Config holds runtime settings for the token issuer.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP endpoint.
//   - AuthPath: route of the token endpoint (POST + OPTIONS).
//   - PasswordHash: credential record "algorithm:salt:hash". Never logged.
//   - SecretKey: HMAC secret for signing tokens (HS256). Never logged.
//   - Environment: tag embedded in every issued token.
//   - TokenValidityDuration: lifetime of an issued token.
//   - FailureDelay: pause before answering a wrong password.
//   - AllowOrigins: CORS origins allowed to call the endpoint ("*" for any).
//   - LogLevel / LogFormat: zap logger settings.
//   - MetricsEnabled: expose GET /metrics.
type Config struct {
	EndpointAddrHTTP      string
	AuthPath              string
	PasswordHash          string
	SecretKey             string
	Environment           string
	TokenValidityDuration time.Duration
	FailureDelay          time.Duration
	AllowOrigins          []string
	LogLevel              string
	LogFormat             string
	MetricsEnabled        bool
}

// LoadDefaults populates Config with development defaults. The credential
// record and the signing secret have no default: they must come from the
// hosting environment.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.AuthPath = "/auth"
	c.PasswordHash = ""
	c.SecretKey = ""
	c.Environment = "development"
	c.TokenValidityDuration = common.DefaultTokenValidity
	c.FailureDelay = common.DefaultFailureDelay
	c.AllowOrigins = []string{"*"}
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.MetricsEnabled = true
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// validTokenValidity panics unless d is positive: a zero or negative
// validity would mint tokens that are already expired.
func validTokenValidity(key string, d time.Duration) time.Duration {
	if d <= 0 {
		panic(fmt.Errorf("%s: token validity must be positive, got %s", key, d))
	}
	return d
}

// validFailureDelay panics if d is negative.
func validFailureDelay(key string, d time.Duration) time.Duration {
	if d < 0 {
		panic(fmt.Errorf("%s: failure delay must not be negative, got %s", key, d))
	}
	return d
}

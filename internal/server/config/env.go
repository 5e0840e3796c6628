package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces the issuer's environment variables.
const EnvPrefix = "DOCSAUTH_"

// envAliases maps the bare variable names used by serverless deployments to
// config keys. They are read in addition to the DOCSAUTH_ names; a non-empty
// DOCSAUTH_ value wins.
var envAliases = map[string]string{
	"PASSWORD_HASH": "password_hash",
	"JWT_SECRET":    "secret_key",
	"ENVIRONMENT":   "environment",
}

// EnvConfig is the DTO environment variables are unmarshalled into. All
// values arrive as strings and are converted by parseEnv.
type EnvConfig struct {
	EndpointAddrHTTP      string `koanf:"endpoint_addr_http"`
	AuthPath              string `koanf:"auth_path"`
	PasswordHash          string `koanf:"password_hash"`
	SecretKey             string `koanf:"secret_key"`
	Environment           string `koanf:"environment"`
	TokenValidityDuration string `koanf:"token_validity_duration"`
	FailureDelay          string `koanf:"failure_delay"`
	AllowOrigins          string `koanf:"allow_origins"`
	LogLevel              string `koanf:"log_level"`
	LogFormat             string `koanf:"log_format"`
	MetricsEnabled        string `koanf:"metrics_enabled"`
}

func loadEnv(prefix string, cb func(string) string) (*EnvConfig, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider(prefix, ".", cb), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	c := &EnvConfig{}
	if err := k.Unmarshal("", c); err != nil {
		return nil, fmt.Errorf("unmarshal env: %w", err)
	}
	return c, nil
}

// parseEnv overlays config with values from the environment. It panics on
// values that cannot be converted, like parseJson does for bad files.
func parseEnv(config *Config) {
	aliases, err := loadEnv("", func(s string) string {
		return envAliases[s]
	})
	if err != nil {
		panic(err)
	}
	overlayEnv(config, aliases)

	prefixed, err := loadEnv(EnvPrefix, func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err != nil {
		panic(err)
	}
	overlayEnv(config, prefixed)
}

// overlayEnv applies the non-empty values of c to config.
func overlayEnv(config *Config, c *EnvConfig) {
	overlayString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	overlayString(&config.AuthPath, c.AuthPath)
	overlayString(&config.PasswordHash, c.PasswordHash)
	overlayString(&config.SecretKey, c.SecretKey)
	overlayString(&config.Environment, c.Environment)
	overlayString(&config.LogLevel, c.LogLevel)
	overlayString(&config.LogFormat, c.LogFormat)

	if c.TokenValidityDuration != "" {
		config.TokenValidityDuration = validTokenValidity("token_validity_duration",
			mustParseDuration("token_validity_duration", c.TokenValidityDuration))
	}
	if c.FailureDelay != "" {
		config.FailureDelay = validFailureDelay("failure_delay",
			mustParseDuration("failure_delay", c.FailureDelay))
	}
	if c.AllowOrigins != "" {
		config.AllowOrigins = SplitOrigins(c.AllowOrigins)
	}
	if c.MetricsEnabled != "" {
		enabled, err := strconv.ParseBool(c.MetricsEnabled)
		if err != nil {
			panic(fmt.Errorf("metrics_enabled: %w", err))
		}
		config.MetricsEnabled = enabled
	}
}

func mustParseDuration(key, v string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Errorf("%s: %w", key, err))
	}
	return d
}

// SplitOrigins parses a comma-separated origin list, dropping blanks.
func SplitOrigins(s string) []string {
	var result []string
	for _, origin := range strings.Split(s, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}

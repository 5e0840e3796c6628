package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/docsauth/internal/flagx"
	"github.com/dmitrijs2005/docsauth/internal/timex"
)

// JsonConfig is a DTO used only for reading JSON configuration files.
// Interval fields use timex.Duration, so they accept "1s" style strings or
// integer nanoseconds. Pointer fields distinguish an absent key from a
// zero value.
type JsonConfig struct {
	EndpointAddrHTTP      string          `json:"endpoint_addr_http"`
	AuthPath              string          `json:"auth_path"`
	PasswordHash          string          `json:"password_hash"`
	SecretKey             string          `json:"secret_key"`
	Environment           string          `json:"environment"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	FailureDelay          *timex.Duration `json:"failure_delay"`
	AllowOrigins          []string        `json:"allow_origins"`
	LogLevel              string          `json:"log_level"`
	LogFormat             string          `json:"log_format"`
	MetricsEnabled        *bool           `json:"metrics_enabled"`
}

// parseJson overlays config with values from the JSON file named by the -c
// or -config flag. Only keys present in the file replace existing values.
// It panics if the file cannot be read or decoded.
func parseJson(config *Config) {

	jsonConfigFile := flagx.ConfigFile(os.Args[1:])

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	overlayString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	overlayString(&config.AuthPath, c.AuthPath)
	overlayString(&config.PasswordHash, c.PasswordHash)
	overlayString(&config.SecretKey, c.SecretKey)
	overlayString(&config.Environment, c.Environment)
	overlayString(&config.LogLevel, c.LogLevel)
	overlayString(&config.LogFormat, c.LogFormat)

	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = validTokenValidity("token_validity_duration", c.TokenValidityDuration.Duration)
	}
	if c.FailureDelay != nil {
		config.FailureDelay = validFailureDelay("failure_delay", c.FailureDelay.Duration)
	}
	if len(c.AllowOrigins) > 0 {
		config.AllowOrigins = c.AllowOrigins
	}
	if c.MetricsEnabled != nil {
		config.MetricsEnabled = *c.MetricsEnabled
	}
}

func overlayString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

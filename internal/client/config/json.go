package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/docsauth/internal/flagx"
	"github.com/dmitrijs2005/docsauth/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. RequestTimeout
// accepts "10s" style strings or integer nanoseconds.
type JsonConfig struct {
	SiteConfigSource string         `json:"site_config_source"`
	BaseURL          string         `json:"base_url"`
	BasePath         *string        `json:"base_path"`
	LoginPage        string         `json:"login_page"`
	DatabasePath     string         `json:"database_path"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	FailOpen         *bool          `json:"fail_open"`
	S3Region         string         `json:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint"`
	S3AccessKey      string         `json:"s3_access_key"`
	S3SecretKey      string         `json:"s3_secret_key"`
}

// parseJson overlays cfg with the keys present in the JSON file named by
// -c/-config. It panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFile(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&cfg.SiteConfigSource, jc.SiteConfigSource)
	set(&cfg.BaseURL, jc.BaseURL)
	set(&cfg.LoginPage, jc.LoginPage)
	set(&cfg.DatabasePath, jc.DatabasePath)
	set(&cfg.S3Region, jc.S3Region)
	set(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	set(&cfg.S3AccessKey, jc.S3AccessKey)
	set(&cfg.S3SecretKey, jc.S3SecretKey)

	// base path may legitimately be set to "" (site at the root)
	if jc.BasePath != nil {
		cfg.BasePath = *jc.BasePath
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.FailOpen != nil {
		cfg.FailOpen = *jc.FailOpen
	}
}

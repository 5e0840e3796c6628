package config

import "time"

// Config holds runtime settings for the docs session client.
//
// Fields:
//   - SiteConfigSource: where app-config.json lives: a file path, an
//     http(s):// URL or s3://bucket/key.
//   - BaseURL / BasePath: deployment context of the docs site.
//   - LoginPage: path of the login page relative to BasePath.
//   - DatabasePath: SQLite file backing local session storage.
//   - RequestTimeout: bound for each issuer call and config fetch.
//   - FailOpen: grant access when the site config cannot be fetched.
//   - S3*: object storage settings used only for s3:// sources. Empty
//     credentials fall back to the default AWS chain.
type Config struct {
	SiteConfigSource string
	BaseURL          string
	BasePath         string
	LoginPage        string
	DatabasePath     string
	RequestTimeout   time.Duration
	FailOpen         bool

	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.SiteConfigSource = "config/app-config.json"
	c.BaseURL = "http://localhost:3000"
	c.BasePath = ""
	c.LoginPage = "/login.html"
	c.DatabasePath = "session.db"
	c.RequestTimeout = 10 * time.Second
	c.FailOpen = false
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
	c.S3AccessKey = ""
	c.S3SecretKey = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/docsauth/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-s string      site config source (path, http(s) URL or s3://bucket/key)
//	-b string      docs site base URL
//	-p string      docs site base path
//	-l string      login page
//	-d string      session database path
//	-t int         request timeout in seconds
//	-fail-open     grant access when the site config cannot be fetched
//
// -fail-open never consumes the next argument; use -fail-open=false to unset it.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-b", "-p", "-l", "-d", "-t", "-fail-open"}, "-fail-open")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.SiteConfigSource, "s", cfg.SiteConfigSource, "site config source")
	fs.StringVar(&cfg.BaseURL, "b", cfg.BaseURL, "docs site base URL")
	fs.StringVar(&cfg.BasePath, "p", cfg.BasePath, "docs site base path")
	fs.StringVar(&cfg.LoginPage, "l", cfg.LoginPage, "login page")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "session database path")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.BoolVar(&cfg.FailOpen, "fail-open", cfg.FailOpen, "grant access when the site config cannot be fetched")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}

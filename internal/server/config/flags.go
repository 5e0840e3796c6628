package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/docsauth/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-p string   token endpoint path
//	-k string   credential record "algorithm:salt:hash"
//	-s string   token HMAC secret
//	-e string   environment tag
//	-t int      token validity, minutes
//	-d int      failure delay, milliseconds
//	-o string   comma-separated CORS origins
//	-l string   log level
//	-f string   log format (json, console)
//
// The function first filters os.Args with flagx.FilterArgs so subcommand
// flags do not collide with these. -t and -d only replace the configured
// durations when given; -t must be positive and -d must not be negative.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-p", "-k", "-s", "-e", "-t", "-d", "-o", "-l", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.AuthPath, "p", config.AuthPath, "token endpoint path")
	fs.StringVar(&config.PasswordHash, "k", config.PasswordHash, "credential record algorithm:salt:hash")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")
	fs.StringVar(&config.Environment, "e", config.Environment, "environment tag")

	tokenValidity := fs.Int("t", 0, "token validity (in minutes)")
	failureDelay := fs.Int("d", 0, "failure delay (in milliseconds)")
	origins := fs.String("o", "", "comma-separated CORS origins")

	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "f", config.LogFormat, "log format (json, console)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.TokenValidityDuration = validTokenValidity("-t", time.Duration(*tokenValidity)*time.Minute)
		case "d":
			config.FailureDelay = validFailureDelay("-d", time.Duration(*failureDelay)*time.Millisecond)
		}
	})
	if *origins != "" {
		config.AllowOrigins = SplitOrigins(*origins)
	}
}

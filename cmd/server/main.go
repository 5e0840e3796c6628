package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dmitrijs2005/docsauth/internal/server"
	"github.com/dmitrijs2005/docsauth/internal/server/commands"
	"github.com/dmitrijs2005/docsauth/internal/server/config"
)

const usage = `usage: server [serve|hash-password|verify-token] [flags]

  serve          run the token endpoint (default)
  hash-password  print a credential record for a password
  verify-token   validate a token with the configured secret
`

func main() {

	command := "serve"
	var args []string
	if len(os.Args) > 1 && os.Args[1] != "" && os.Args[1][0] != '-' {
		command = os.Args[1]
		args = os.Args[2:]
	}

	switch command {
	case "serve":
		serve()
	case "hash-password":
		if err := commands.HashPassword(os.Stdout, args, commands.TerminalPasswordReader); err != nil {
			log.Fatalf("hash-password: %v", err)
		}
	case "verify-token":
		cfg := config.LoadConfig()
		if err := commands.VerifyToken(os.Stdout, args, cfg.SecretKey, time.Now()); err != nil {
			log.Fatalf("verify-token: %v", err)
		}
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func serve() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}

// Package cli provides the interactive docs session client.
//
// It wires configuration, local session storage, the site config loader and
// the issuer client into a REPL that mirrors what the docs site does in a
// browser: log in with the shared password, open pages through the session
// guard and log out.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

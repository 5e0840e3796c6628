// Package client contains the client-side building blocks of the docs
// session client.
//
// # Overview
//
// The package provides:
//  1. The Client interface used to exchange a password for a token, and
//     HTTPClient, its implementation against the issuer's JSON endpoint.
//  2. Local persistence bootstrap (InitDatabase, RunMigrations): an SQLite
//     database standing in for the browser's local storage, migrated with
//     embedded goose migrations.
//
// # Error Handling
//
// Failures are reported with sentinel errors matched by errors.Is:
// ErrUnavailable (network), ErrUnauthorized (401), ErrBadRequest (400) and
// ErrServer (5xx or an unreadable reply).
package client

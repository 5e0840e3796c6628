// Package config loads settings for the docs session client.
//
// Values are resolved in three steps, later ones winning:
//
//  1. LoadDefaults
//  2. a JSON file named by -c or -config
//  3. command-line flags
//
// The resulting Config is passed explicitly to the site-config loader, the
// session guard and the issuer client; nothing reads it from globals.
package config

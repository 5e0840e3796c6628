// Package commands implements the issuer's maintenance subcommands.
package commands

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/docsauth/internal/common"
	"github.com/dmitrijs2005/docsauth/internal/cryptox"
	"github.com/dmitrijs2005/docsauth/internal/flagx"
	"github.com/dmitrijs2005/docsauth/internal/server/auth"
	"github.com/dmitrijs2005/docsauth/internal/server/credential"
	"golang.org/x/term"
)

// PasswordReader reads a password without echo.
type PasswordReader func(prompt string) ([]byte, error)

// TerminalPasswordReader prompts on stderr and reads from the terminal.
func TerminalPasswordReader(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)
	return term.ReadPassword(int(os.Stdin.Fd()))
}

// HashPassword prints a credential record for a password. The password is
// taken from -password or read twice through readPassword.
//
//	hash-password [-algorithm sha256] [-salt hex] [-password p]
func HashPassword(w io.Writer, args []string, readPassword PasswordReader) error {
	fs := flag.NewFlagSet("hash-password", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	alg := fs.String("algorithm", cryptox.DefaultAlgorithm, "digest: "+strings.Join(cryptox.Algorithms(), ", "))
	salt := fs.String("salt", "", "salt (random 16-byte hex when empty)")
	plain := fs.String("password", "", "password (prompted when empty)")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-algorithm", "-salt", "-password"})); err != nil {
		return err
	}

	password := []byte(*plain)
	if len(password) == 0 {
		var err error
		password, err = readConfirmed(readPassword)
		if err != nil {
			return err
		}
	}
	defer common.WipeByteArray(password)

	var (
		record *credential.Record
		err    error
	)
	if *salt == "" {
		record, err = credential.Generate(*alg, password)
	} else {
		record, err = credential.GenerateWithSalt(*alg, *salt, password)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, record.String())
	return err
}

func readConfirmed(readPassword PasswordReader) ([]byte, error) {
	first, err := readPassword("Password: ")
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	if len(first) == 0 {
		return nil, common.ErrMissingPassword
	}

	second, err := readPassword("Repeat password: ")
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	defer common.WipeByteArray(second)

	if string(first) != string(second) {
		common.WipeByteArray(first)
		return nil, errors.New("passwords do not match")
	}
	return first, nil
}

// TokenInfo is what VerifyToken prints for a valid token.
type TokenInfo struct {
	Subject   string    `json:"sub"`
	Role      string    `json:"role"`
	Env       string    `json:"env,omitempty"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// VerifyToken validates -token with secret and prints its claims as JSON.
//
//	verify-token -token <jwt>
func VerifyToken(w io.Writer, args []string, secret string, now time.Time) error {
	fs := flag.NewFlagSet("verify-token", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	token := fs.String("token", "", "token to verify")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-token"})); err != nil {
		return err
	}
	if *token == "" {
		return errors.New("-token is required")
	}
	if secret == "" {
		return common.ErrMisconfigured
	}

	claims, err := auth.ParseToken(*token, []byte(secret), now)
	if err != nil {
		return err
	}

	info := TokenInfo{
		Subject: claims.Subject,
		Role:    claims.Role,
		Env:     claims.Env,
	}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.UTC()
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.UTC()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(info)
}

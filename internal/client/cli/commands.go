package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/docsauth/internal/client/guard"
	"github.com/dmitrijs2005/docsauth/internal/common"
)

// getPassword is a test seam for GetPassword.
var getPassword = GetPassword

// Login reads the password and runs the login flow. On success the reader
// is sent where the login page would send them: the docs root.
func (a *App) Login(ctx context.Context) error {
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, password); err != nil {
		return fmt.Errorf("login unsuccessful: %w", err)
	}

	fmt.Fprintln(a.out, "Login successful")
	return a.Open(ctx, "/")
}

// Logout clears the session and lands on the login page.
func (a *App) Logout(ctx context.Context) error {
	d, err := a.guard.Logout(ctx)
	if err != nil {
		return err
	}
	a.page = a.config.LoginPage
	printDecision(a.out, d)
	return nil
}

// Status runs the guard without changing the current page.
func (a *App) Status(ctx context.Context) error {
	d := a.guard.Check(ctx)
	if d.Reason != "" {
		fmt.Fprintf(a.out, "%s (%s)\n", d.State, d.Reason)
	} else {
		fmt.Fprintln(a.out, d.State)
	}
	return nil
}

// Open navigates to page. Protected pages are checked by the guard; the
// login page only redirects readers that are already authenticated.
func (a *App) Open(ctx context.Context, page string) error {
	var d guard.Decision
	if a.deploy.IsLoginPage(page, a.config.LoginPage) {
		d = a.guard.CheckLoginPage(ctx)
		if d.Redirect == "" {
			a.page = a.config.LoginPage
			fmt.Fprintf(a.out, "Showing %s\n", a.deploy.URL(a.config.LoginPage))
			return nil
		}
		a.page = "/"
	} else {
		d = a.guard.Check(ctx)
		if d.Redirect != "" {
			a.page = a.config.LoginPage
		} else {
			a.page = page
		}
	}

	if d.Redirect == "" {
		fmt.Fprintf(a.out, "Showing %s\n", a.deploy.URL(page))
		return nil
	}
	printDecision(a.out, d)
	return nil
}

func printDecision(w io.Writer, d guard.Decision) {
	if d.Reason != "" {
		fmt.Fprintf(w, "Redirecting to %s (%s)\n", d.Redirect, d.Reason)
		return
	}
	fmt.Fprintf(w, "Redirecting to %s\n", d.Redirect)
}

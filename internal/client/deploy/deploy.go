// Package deploy describes where the docs site is served from. The context
// is resolved once at startup and injected wherever URLs are built.
package deploy

import (
	"fmt"
	"net/url"
	"strings"
)

// Context is the deployment context of the docs site: its origin and the
// path prefix it is mounted under ("" when mounted at the root).
type Context struct {
	BaseURL  string
	BasePath string
}

// New validates baseURL and normalizes basePath to either "" or a path with
// a leading and no trailing slash.
func New(baseURL, basePath string) (Context, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return Context{}, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Context{}, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return Context{}, fmt.Errorf("invalid base url %q: missing host", baseURL)
	}

	return Context{
		BaseURL:  strings.TrimRight(u.Scheme+"://"+u.Host, "/"),
		BasePath: normalizePath(basePath),
	}, nil
}

func normalizePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

// Path returns page prefixed with the base path.
func (c Context) Path(page string) string {
	if !strings.HasPrefix(page, "/") {
		page = "/" + page
	}
	return c.BasePath + page
}

// URL returns the absolute URL of page.
func (c Context) URL(page string) string {
	return c.BaseURL + c.Path(page)
}

// RootURL is the docs landing page.
func (c Context) RootURL() string {
	return c.URL("/")
}

// LoginURL is the absolute URL of loginPage.
func (c Context) LoginURL(loginPage string) string {
	return c.URL(loginPage)
}

// IsLoginPage reports whether page (with or without the base path) is the
// login page.
func (c Context) IsLoginPage(page, loginPage string) bool {
	page = strings.TrimSpace(page)
	if c.BasePath != "" {
		page = strings.TrimPrefix(page, c.BasePath)
	}
	if !strings.HasPrefix(page, "/") {
		page = "/" + page
	}
	if !strings.HasPrefix(loginPage, "/") {
		loginPage = "/" + loginPage
	}
	return page == loginPage
}

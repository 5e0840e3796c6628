package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/docsauth/internal/netx"
)

// LoginResult is a successful issuer response.
type LoginResult struct {
	Token     string
	ExpiresIn int64
}

// Client exchanges a password for a token.
type Client interface {
	Login(ctx context.Context, password []byte) (*LoginResult, error)
}

// HTTPClient talks to the issuer's POST endpoint.
type HTTPClient struct {
	url  string
	http *http.Client
}

// NewHTTPClient returns a client posting to authURL, the full URL of the
// token endpoint (features.auth.apiUrl).
func NewHTTPClient(authURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{url: authURL, http: httpClient}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Message   string `json:"message"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
	Error     string `json:"error"`
}

// Login posts {"password": ...} and maps the reply to a LoginResult or a
// sentinel error carrying the server's message.
func (c *HTTPClient) Login(ctx context.Context, password []byte) (*LoginResult, error) {
	status, body, err := netx.PostJSON(ctx, c.http, c.url, loginRequest{Password: string(password)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var resp loginResponse
	decodeErr := json.Unmarshal(body, &resp)

	switch {
	case status == http.StatusOK:
		if decodeErr != nil || resp.Token == "" || resp.ExpiresIn <= 0 {
			return nil, fmt.Errorf("%w: malformed token response", ErrServer)
		}
		return &LoginResult{Token: resp.Token, ExpiresIn: resp.ExpiresIn}, nil
	case status == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, message(resp.Error, "Authentication failed"))
	case status == http.StatusBadRequest:
		return nil, fmt.Errorf("%w: %s", ErrBadRequest, message(resp.Error, "Authentication failed"))
	default:
		return nil, fmt.Errorf("%w: status %d: %s", ErrServer, status, message(resp.Error, "Authentication failed"))
	}
}

func message(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}

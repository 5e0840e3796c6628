package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/docsauth/internal/common"
	"github.com/dmitrijs2005/docsauth/internal/logging"
	"github.com/dmitrijs2005/docsauth/internal/server/issuer"
	"github.com/gin-gonic/gin"
)

// maxBodySize bounds the auth request body.
const maxBodySize = 1 << 16

// Issuer issues tokens for submitted passwords.
type Issuer interface {
	Issue(ctx context.Context, password []byte) (*issuer.Result, error)
}

// AuthRequest is the body of POST <auth path>.
type AuthRequest struct {
	Password string `json:"password"`
}

// AuthResponse is returned on successful authentication.
type AuthResponse struct {
	Message   string `json:"message"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

// ErrorResponse carries a generic error message.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries an informational message.
type MessageResponse struct {
	Message string `json:"message"`
}

// Client-facing messages. They never reveal which check failed.
const (
	msgAuthenticated   = "Authentication successful"
	msgPasswordMissing = "Password parameter is required"
	msgInvalidPassword = "Invalid password"
	msgInternal        = "Internal server error"
)

// AuthHandler serves the token endpoint.
type AuthHandler struct {
	issuer Issuer
}

func NewAuthHandler(issuer Issuer) *AuthHandler {
	return &AuthHandler{issuer: issuer}
}

// Authenticate handles POST <auth path>. A body that is not a JSON object
// with a string password is treated as a missing password.
func (h *AuthHandler) Authenticate(c *gin.Context) {
	password := readPassword(c)

	ctx := logging.WithRequestID(c.Request.Context(), RequestID(c))
	res, err := h.issuer.Issue(ctx, []byte(password))
	if err != nil {
		_ = c.Error(err)
		switch {
		case errors.Is(err, common.ErrMissingPassword):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgPasswordMissing})
		case errors.Is(err, common.ErrorUnauthorized):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: msgInvalidPassword})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgInternal})
		}
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Message:   msgAuthenticated,
		Token:     res.Token,
		ExpiresIn: res.ExpiresIn,
	})
}

// Preflight answers OPTIONS <auth path>; CORS headers come from middleware.
func (h *AuthHandler) Preflight(c *gin.Context) {
	c.JSON(http.StatusOK, MessageResponse{Message: "OK"})
}

func readPassword(c *gin.Context) string {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize))
	if err != nil || len(body) == 0 {
		return ""
	}

	var req AuthRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return ""
	}
	return req.Password
}

// Liveness handles GET /health/live.
func Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

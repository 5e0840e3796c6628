// Package auth mints and validates the HS256 bearer tokens handed out to
// documentation readers.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/docsauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: the standard subject/iat/exp claims plus the
// reader role and the environment that issued the token.
type Claims struct {
	Role string `json:"role"`
	Env  string `json:"env,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token for the fixed documentation subject, valid from
// issuedAt for validityDuration.
func GenerateToken(env string, secretKey []byte, issuedAt time.Time, validityDuration time.Duration) (string, error) {
	if len(secretKey) == 0 {
		return "", common.ErrMisconfigured
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: common.TokenRole,
		Env:  env,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   common.TokenSubject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(validityDuration)),
		},
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and expiry of tokenString as of now.
// Expired tokens yield common.ErrTokenExpired, everything else that fails
// yields common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte, now time.Time) (*Claims, error) {
	claims := &Claims{}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)

	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

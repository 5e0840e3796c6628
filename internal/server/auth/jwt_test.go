package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/docsauth/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Unix(1_700_000_000, 0)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateToken("staging", secret, testNow, 7*24*time.Hour)
	require.NoError(t, err)
	assert.Len(t, strings.Split(tok, "."), 3)

	claims, err := ParseToken(tok, secret, testNow.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, common.TokenSubject, claims.Subject)
	assert.Equal(t, common.TokenRole, claims.Role)
	assert.Equal(t, "staging", claims.Env)
	assert.Equal(t, testNow.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, testNow.Add(7*24*time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken("", secret, testNow, time.Hour)
	require.NoError(t, err)

	// signature is valid, expiry is not
	_, err = ParseToken(tok, secret, testNow.Add(2*time.Hour))
	if err != common.ErrTokenExpired {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("", []byte("right-secret"), testNow, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("wrong-secret"), testNow)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := ParseToken("not.a.jwt", []byte("k"), testNow)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestGenerateToken_EmptySecret(t *testing.T) {
	t.Parallel()

	_, err := GenerateToken("", nil, testNow, time.Hour)
	require.ErrorIs(t, err, common.ErrMisconfigured)
}

func TestParseToken_AnyMutationFails(t *testing.T) {
	t.Parallel()

	secret := []byte("mutation-secret")
	tok, err := GenerateToken("prod", secret, testNow, time.Hour)
	require.NoError(t, err)

	for i := 0; i < len(tok); i++ {
		if tok[i] == '.' {
			continue
		}
		replacement := byte('A')
		if tok[i] == 'A' {
			replacement = 'B'
		}
		mutated := tok[:i] + string(replacement) + tok[i+1:]

		_, err := ParseToken(mutated, secret, testNow)
		require.Errorf(t, err, "mutation at index %d was accepted", i)
	}
}

func TestParseToken_RejectsNoneAlgorithm(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("", []byte("k"), testNow, time.Hour)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	// {"alg":"none","typ":"JWT"}
	forged := "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0." + parts[1] + "."

	_, err = ParseToken(forged, []byte("k"), testNow)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

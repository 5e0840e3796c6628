// Package credential parses, verifies and generates credential records of the
// form "algorithm:salt:hexHash".
package credential

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/docsauth/internal/common"
	"github.com/dmitrijs2005/docsauth/internal/cryptox"
)

// SaltSize is the number of random bytes behind a generated salt.
const SaltSize = 16

// Record is a parsed credential record. It is immutable once parsed and safe
// for concurrent use.
type Record struct {
	Algorithm string
	Salt      string
	Hash      []byte
}

// Parse splits a raw record into its parts. Any structural problem is
// reported as common.ErrMalformedCredential or common.ErrUnsupportedAlgorithm.
func Parse(raw string) (*Record, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 parts, got %d", common.ErrMalformedCredential, len(parts))
	}

	alg, salt, hexHash := strings.ToLower(parts[0]), parts[1], parts[2]
	if alg == "" || salt == "" || hexHash == "" {
		return nil, fmt.Errorf("%w: empty part", common.ErrMalformedCredential)
	}
	if !cryptox.Supported(alg) {
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedAlgorithm, alg)
	}

	sum, err := hex.DecodeString(hexHash)
	if err != nil {
		return nil, fmt.Errorf("%w: hash is not hex", common.ErrMalformedCredential)
	}
	if len(sum) != cryptox.Size(alg) {
		return nil, fmt.Errorf("%w: hash length %d does not match %s", common.ErrMalformedCredential, len(sum), alg)
	}

	return &Record{Algorithm: alg, Salt: salt, Hash: sum}, nil
}

// Verify recomputes hash(salt + password) and compares it with the stored
// hash in constant time.
func (r *Record) Verify(password []byte) bool {
	candidate, ok := cryptox.SaltedDigest(r.Algorithm, r.Salt, password)
	if !ok {
		return false
	}
	return cryptox.Equal(r.Hash, candidate)
}

// String renders the record in its provisioning format.
func (r *Record) String() string {
	return r.Algorithm + ":" + r.Salt + ":" + hex.EncodeToString(r.Hash)
}

// Generate builds a new record for password with a random hex salt.
func Generate(alg string, password []byte) (*Record, error) {
	salt, err := common.MakeRandHexString(SaltSize)
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return GenerateWithSalt(alg, salt, password)
}

// GenerateWithSalt builds a record using the given salt.
func GenerateWithSalt(alg, salt string, password []byte) (*Record, error) {
	if alg == "" {
		alg = cryptox.DefaultAlgorithm
	}
	alg = strings.ToLower(alg)
	if salt == "" || strings.Contains(salt, ":") {
		return nil, fmt.Errorf("%w: invalid salt", common.ErrMalformedCredential)
	}
	sum, ok := cryptox.SaltedDigest(alg, salt, password)
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedAlgorithm, alg)
	}
	return &Record{Algorithm: alg, Salt: salt, Hash: sum}, nil
}

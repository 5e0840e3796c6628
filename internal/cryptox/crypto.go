// Package cryptox holds the hashing primitives behind credential records:
// a registry of named digests and a constant-time comparison helper.
package cryptox

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"hash"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// DefaultAlgorithm is the digest used for newly generated credentials.
const DefaultAlgorithm = "sha256"

var registry = map[string]func() hash.Hash{
	"sha1":     sha1.New,
	"sha256":   sha256.New,
	"sha384":   sha512.New384,
	"sha512":   sha512.New,
	"sha3-256": sha3.New256,
	"sha3-512": sha3.New512,
	"blake2b-256": func() hash.Hash {
		h, _ := blake2b.New256(nil)
		return h
	},
	"blake2b-512": func() hash.Hash {
		h, _ := blake2b.New512(nil)
		return h
	},
}

// Supported reports whether alg names a registered digest. Names are
// case-insensitive.
func Supported(alg string) bool {
	_, ok := registry[strings.ToLower(alg)]
	return ok
}

// Size returns the output length in bytes of the named digest, or 0 if the
// algorithm is unknown.
func Size(alg string) int {
	newHash, ok := registry[strings.ToLower(alg)]
	if !ok {
		return 0
	}
	return newHash().Size()
}

// Algorithms lists the registered digest names in sorted order.
func Algorithms() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SaltedDigest hashes salt followed by password with the named algorithm.
// The salt is used verbatim (its textual form), matching how credential
// records are provisioned. ok is false for unknown algorithms.
func SaltedDigest(alg string, salt string, password []byte) (sum []byte, ok bool) {
	newHash, ok := registry[strings.ToLower(alg)]
	if !ok {
		return nil, false
	}
	h := newHash()
	h.Write([]byte(salt))
	h.Write(password)
	return h.Sum(nil), true
}

// Equal compares two digests in constant time with respect to their content.
// Only the lengths leak, and those are fixed per algorithm.
func Equal(expected, actual []byte) bool {
	return subtle.ConstantTimeCompare(expected, actual) == 1
}

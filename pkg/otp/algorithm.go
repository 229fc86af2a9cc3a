package otp

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"strings"
)

// Algorithm represents the hash algorithm used for OTP generation.
type Algorithm string

const (
	// AlgorithmSHA1 uses SHA1 hash algorithm.
	AlgorithmSHA1 Algorithm = "SHA1"
	// AlgorithmSHA256 uses SHA256 hash algorithm.
	AlgorithmSHA256 Algorithm = "SHA256"
	// AlgorithmSHA384 uses SHA384 hash algorithm.
	AlgorithmSHA384 Algorithm = "SHA384"
	// AlgorithmSHA512 uses SHA512 hash algorithm.
	AlgorithmSHA512 Algorithm = "SHA512"
)

// DefaultAlgorithm is used when no algorithm is configured.
const DefaultAlgorithm = AlgorithmSHA1

type algorithmSpec struct {
	newHash func() hash.Hash
	size    int
}

var algorithms = map[Algorithm]algorithmSpec{
	AlgorithmSHA1:   {sha1.New, sha1.Size},
	AlgorithmSHA256: {sha256.New, sha256.Size},
	AlgorithmSHA384: {sha512.New384, sha512.Size384},
	AlgorithmSHA512: {sha512.New, sha512.Size},
}

// Algorithms lists the supported algorithms in ascending digest size.
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmSHA1, AlgorithmSHA256, AlgorithmSHA384, AlgorithmSHA512}
}

// ParseAlgorithm converts user or file input such as "sha256", "SHA-256" or
// "Sha256" into an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	a := Algorithm(strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", ""))
	if !a.Valid() {
		return "", fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidConfig, s)
	}
	return a, nil
}

// Valid reports whether a is one of the supported algorithms.
func (a Algorithm) Valid() bool {
	_, ok := algorithms[a]
	return ok
}

// Hash returns the hash constructor used for HMAC.
func (a Algorithm) Hash() (func() hash.Hash, error) {
	entry, ok := algorithms[a]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidConfig, string(a))
	}
	return entry.newHash, nil
}

// Size returns the digest size in bytes, or 0 for an unknown algorithm.
func (a Algorithm) Size() int {
	return algorithms[a].size
}

// String returns the canonical upper-case name.
func (a Algorithm) String() string {
	return string(a)
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidConfig, string(a))
	}
	return []byte(a), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Matching is
// case-insensitive.
func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

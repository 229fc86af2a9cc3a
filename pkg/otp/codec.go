package otp

import (
	"encoding/base32"
	"fmt"
	"strings"
)

var keyEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// DecodeKey decodes an unpadded, upper-case Base32 secret into raw key bytes.
func DecodeKey(secret string) ([]byte, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("%w: secret must not be empty", ErrInvalidKey)
	}
	if strings.ContainsAny(secret, " \t\r\n") {
		return nil, fmt.Errorf("%w: secret contains whitespace", ErrInvalidKey)
	}
	// RFC 4648 never produces a final quantum of 1, 3 or 6 characters;
	// the unpadded decoder would silently drop them.
	switch len(secret) % 8 {
	case 1, 3, 6:
		return nil, fmt.Errorf("%w: illegal base32 length %d", ErrInvalidKey, len(secret))
	}
	key, err := keyEncoding.DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	// The decoder ignores the unused low bits of the last character, so
	// only the canonical spelling of a key is accepted.
	if keyEncoding.EncodeToString(key) != secret {
		return nil, fmt.Errorf("%w: non-zero trailing bits", ErrInvalidKey)
	}
	return key, nil
}

// EncodeKey encodes raw key bytes as unpadded Base32.
func EncodeKey(key []byte) string {
	return keyEncoding.EncodeToString(key)
}

// NormalizeKey upper-cases a user supplied secret and strips the spaces
// authenticator setup screens commonly insert for readability.
func NormalizeKey(secret string) string {
	return strings.ToUpper(strings.Join(strings.Fields(secret), ""))
}

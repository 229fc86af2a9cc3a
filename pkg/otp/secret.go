package otp

import (
	"fmt"

	"github.com/pquerna/otp/totp"
)

// DefaultIssuer labels generated secrets.
const DefaultIssuer = "authenticator"

// GenerateSecret generates a cryptographically random secret for accountName.
// The key length matches the digest size of alg, as recommended by RFC 4226,
// and is returned as unpadded Base32 suitable for an Account key.
func GenerateSecret(accountName string, alg Algorithm) (string, error) {
	if accountName == "" {
		return "", fmt.Errorf("%w: account name must not be empty", ErrInvalidConfig)
	}
	if alg == "" {
		alg = DefaultAlgorithm
	}
	if !alg.Valid() {
		return "", fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidConfig, string(alg))
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      DefaultIssuer,
		AccountName: accountName,
		SecretSize:  uint(alg.Size()),
	})
	if err != nil {
		return "", fmt.Errorf("otp: failed to generate random secret: %w", err)
	}

	secret := key.Secret()
	if _, err := DecodeKey(secret); err != nil {
		return "", err
	}
	return secret, nil
}

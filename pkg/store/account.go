package store

import (
	"fmt"

	"github.com/jeremyhahn/go-authenticator/pkg/clock"
	"github.com/jeremyhahn/go-authenticator/pkg/otp"
)

// Account is a named OTP secret. Counter is non-nil exactly when the account
// is HOTP.
type Account struct {
	Name      string        `json:"name"`
	Key       string        `json:"key"`
	Algorithm otp.Algorithm `json:"algorithm"`
	TOTP      bool          `json:"totp"`
	Counter   *uint64       `json:"counter"`
}

// NewAccount builds an account of the given type. HOTP accounts start at
// counter 0.
func NewAccount(name, key string, alg otp.Algorithm, typ otp.Type) Account {
	acct := Account{
		Name:      name,
		Key:       key,
		Algorithm: alg,
		TOTP:      typ != otp.TypeHOTP,
	}
	if !acct.TOTP {
		acct.Counter = new(uint64)
	}
	return acct
}

// Type returns the account's OTP type.
func (a *Account) Type() otp.Type {
	if a.TOTP {
		return otp.TypeTOTP
	}
	return otp.TypeHOTP
}

// CounterValue returns the HOTP counter, or 0 when there is none.
func (a *Account) CounterValue() uint64 {
	if a.Counter == nil {
		return 0
	}
	return *a.Counter
}

// Advance moves an HOTP counter forward by one. It is a no-op for TOTP.
func (a *Account) Advance() {
	if a.TOTP {
		return
	}
	next := a.CounterValue() + 1
	a.Counter = &next
}

// Engine builds an OTP engine for the account producing codes of the given
// length.
func (a *Account) Engine(digits int, clk clock.Clocker) (*otp.Engine, error) {
	return otp.NewEngine(otp.Config{
		Type:      a.Type(),
		Secret:    a.Key,
		Algorithm: a.Algorithm,
		Counter:   a.CounterValue(),
		Digits:    digits,
		Clock:     clk,
	})
}

// normalize enforces the counter/type invariant and fills defaults.
func (a *Account) normalize() error {
	if a.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidAccount)
	}
	if a.Algorithm == "" {
		a.Algorithm = otp.DefaultAlgorithm
	}
	if !a.Algorithm.Valid() {
		return fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidAccount, string(a.Algorithm))
	}
	switch {
	case a.TOTP:
		a.Counter = nil
	case a.Counter == nil:
		a.Counter = new(uint64)
	}
	return nil
}

func (a *Account) clone() *Account {
	c := *a
	if a.Counter != nil {
		v := *a.Counter
		c.Counter = &v
	}
	return &c
}

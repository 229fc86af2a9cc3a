package otp

import (
	"context"
	"crypto/hmac"
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"strings"

	"github.com/jeremyhahn/go-authenticator/pkg/clock"
)

// Type represents the OTP algorithm type.
type Type string

const (
	// TypeTOTP represents Time-based OTP (RFC 6238).
	TypeTOTP Type = "totp"
	// TypeHOTP represents Counter-based OTP (RFC 4226).
	TypeHOTP Type = "hotp"
)

const (
	// DefaultDigits is the code length used when none is configured.
	DefaultDigits = 6
	// MaxDigits is the longest code the 31-bit truncated value supports.
	MaxDigits = 9
	// Period is the TOTP time step in seconds.
	Period = 30
)

// Common errors returned by the OTP engine.
var (
	// ErrInvalidKey indicates the secret is not valid unpadded Base32.
	ErrInvalidKey = errors.New("otp: invalid key")
	// ErrInvalidConfig indicates the configuration is invalid.
	ErrInvalidConfig = errors.New("otp: invalid configuration")
	// ErrInvalidCode indicates a candidate code does not match.
	ErrInvalidCode = errors.New("otp: invalid code")
	// ErrNilEngine indicates a nil engine was used.
	ErrNilEngine = errors.New("otp: engine is nil")
)

// ParseType converts "totp" or "hotp" (any case) into a Type.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if t != TypeTOTP && t != TypeHOTP {
		return "", fmt.Errorf("%w: type must be 'totp' or 'hotp'", ErrInvalidConfig)
	}
	return t, nil
}

// Config holds OTP engine configuration.
type Config struct {
	// Type specifies the OTP type (TOTP or HOTP).
	// Default: TOTP
	Type Type
	// Secret is the Base32-encoded shared secret key (required).
	Secret string
	// Algorithm specifies the HMAC hash algorithm.
	// Default: SHA1
	Algorithm Algorithm
	// Counter is the moving factor for HOTP. Ignored for TOTP.
	Counter uint64
	// Digits specifies the number of digits in the code (1 to 9).
	// Default: 6
	Digits int
	// Clock supplies the current time for TOTP.
	// Default: the system clock
	Clock clock.Clocker
}

// validate checks that the configuration is valid.
func (c Config) validate() error {
	if c.Type != "" && c.Type != TypeTOTP && c.Type != TypeHOTP {
		return fmt.Errorf("%w: type must be 'totp' or 'hotp'", ErrInvalidConfig)
	}

	if c.Digits < 0 || c.Digits > MaxDigits {
		return fmt.Errorf("%w: digits must be between 1 and %d", ErrInvalidConfig, MaxDigits)
	}

	if c.Algorithm != "" && !c.Algorithm.Valid() {
		return fmt.Errorf("%w: algorithm must be SHA1, SHA256, SHA384, or SHA512", ErrInvalidConfig)
	}

	return nil
}

// Engine generates codes for a single account. It holds no mutable state;
// advancing an HOTP counter is the caller's job.
type Engine struct {
	key     []byte
	typ     Type
	counter uint64
	digits  int
	hash    func() hash.Hash
	clock   clock.Clocker
}

// NewEngine creates an engine from cfg. The secret is decoded here, so a
// malformed key is reported before any code is produced.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	key, err := DecodeKey(cfg.Secret)
	if err != nil {
		return nil, err
	}

	// Apply defaults
	if cfg.Type == "" {
		cfg.Type = TypeTOTP
	}
	if cfg.Digits == 0 {
		cfg.Digits = DefaultDigits
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = DefaultAlgorithm
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}

	h, err := cfg.Algorithm.Hash()
	if err != nil {
		return nil, err
	}

	return &Engine{
		key:     key,
		typ:     cfg.Type,
		counter: cfg.Counter,
		digits:  cfg.Digits,
		hash:    h,
		clock:   cfg.Clock,
	}, nil
}

// Type returns the engine's OTP type.
func (e *Engine) Type() Type {
	return e.typ
}

// Digits returns the configured code length.
func (e *Engine) Digits() int {
	return e.digits
}

// Counter returns the moving factor: the current 30 second time step for
// TOTP, the stored counter for HOTP.
func (e *Engine) Counter() uint64 {
	if e.typ == TypeTOTP {
		sec := e.clock.Now().Unix()
		if sec < 0 {
			return 0
		}
		return uint64(sec) / Period
	}
	return e.counter
}

// Generate returns the code for the engine's current counter value.
func (e *Engine) Generate() string {
	return e.GenerateAt(e.Counter())
}

// GenerateAt returns the code for an explicit counter value.
func (e *Engine) GenerateAt(counter uint64) string {
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(e.hash, e.key)
	mac.Write(msg[:])

	return Format(Truncate(mac.Sum(nil)), e.digits)
}

// Verify checks code against the current code in constant time.
// It never advances the HOTP counter.
func (e *Engine) Verify(ctx context.Context, code string) error {
	if e == nil {
		return ErrNilEngine
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("%w: code must not be empty", ErrInvalidCode)
	}

	if subtle.ConstantTimeCompare([]byte(code), []byte(e.Generate())) != 1 {
		return ErrInvalidCode
	}

	return nil
}

// Truncate applies RFC 4226 dynamic truncation to an HMAC digest: the low
// nibble of the last byte selects a 4 byte window, read big-endian with the
// top bit cleared. Digests shorter than 20 bytes yield 0.
func Truncate(digest []byte) uint32 {
	if len(digest) < 20 {
		return 0
	}
	offset := digest[len(digest)-1] & 0x0f
	return binary.BigEndian.Uint32(digest[offset:offset+4]) & 0x7fffffff
}

// Format reduces code modulo 10^digits and zero-pads it to exactly digits
// characters.
func Format(code uint32, digits int) string {
	mod := uint64(1)
	for range digits {
		mod *= 10
	}
	return fmt.Sprintf("%0*d", digits, uint64(code)%mod)
}

package otp

import (
	"context"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	potp "github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-authenticator/pkg/clock"
)

var (
	rfcSecretSHA1   = EncodeKey([]byte("12345678901234567890"))
	rfcSecretSHA256 = EncodeKey([]byte("12345678901234567890123456789012"))
	rfcSecretSHA512 = EncodeKey([]byte("1234567890123456789012345678901234567890123456789012345678901234"))
)

func TestRFC4226Vectors(t *testing.T) {
	want := []string{
		"755224", "287082", "359152", "969429", "338314",
		"254676", "287922", "162583", "399871", "520489",
	}

	for counter, code := range want {
		engine, err := NewEngine(Config{
			Type:      TypeHOTP,
			Secret:    rfcSecretSHA1,
			Algorithm: AlgorithmSHA1,
			Counter:   uint64(counter),
			Digits:    6,
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(counter), engine.Counter())
		assert.Equal(t, code, engine.Generate(), "counter %d", counter)
	}
}

func TestRFC6238Vectors(t *testing.T) {
	tests := []struct {
		unix   int64
		sha1   string
		sha256 string
		sha512 string
	}{
		{59, "94287082", "46119246", "90693936"},
		{1111111109, "07081804", "68084774", "25091201"},
		{1111111111, "14050471", "67062674", "99943326"},
		{1234567890, "89005924", "91819424", "93441116"},
		{2000000000, "69279037", "90698825", "38618901"},
		{20000000000, "65353130", "77737706", "47863826"},
	}

	for _, tt := range tests {
		for _, c := range []struct {
			alg    Algorithm
			secret string
			want   string
		}{
			{AlgorithmSHA1, rfcSecretSHA1, tt.sha1},
			{AlgorithmSHA256, rfcSecretSHA256, tt.sha256},
			{AlgorithmSHA512, rfcSecretSHA512, tt.sha512},
		} {
			engine, err := NewEngine(Config{
				Type:      TypeTOTP,
				Secret:    c.secret,
				Algorithm: c.alg,
				Digits:    8,
				Clock:     clock.Unix(tt.unix),
			})
			require.NoError(t, err)
			assert.Equal(t, uint64(tt.unix/Period), engine.Counter())
			assert.Equal(t, c.want, engine.Generate(), "%s at %d", c.alg, tt.unix)
		}
	}
}

func TestTruncate(t *testing.T) {
	digest, err := hex.DecodeString("1f8698690e02ca16618550ef7f19da8e945b555a")
	require.NoError(t, err)

	assert.Equal(t, uint32(0x50ef7f19), Truncate(digest))
	assert.Equal(t, "872921", Format(Truncate(digest), 6))
}

func TestTruncateMasksHighBit(t *testing.T) {
	digest := make([]byte, 20)
	digest[19] = 0x00
	digest[0], digest[1], digest[2], digest[3] = 0xff, 0xff, 0xff, 0xff

	assert.Equal(t, uint32(0x7fffffff), Truncate(digest))
}

func TestTruncateShortDigest(t *testing.T) {
	for _, n := range []int{0, 1, 4, 19} {
		digest := make([]byte, n)
		if n > 0 {
			digest[n-1] = 0x0f
		}
		assert.NotPanics(t, func() {
			assert.Equal(t, uint32(0), Truncate(digest), "length %d", n)
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		code   uint32
		digits int
		want   string
	}{
		{42, 6, "000042"},
		{0, 6, "000000"},
		{1234567, 6, "234567"},
		{1234567, 8, "01234567"},
		{0x7fffffff, 9, "147483647"},
		{7, 1, "7"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.code, tt.digits))
	}
}

func TestGenerateDeterministic(t *testing.T) {
	for _, alg := range Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			engine, err := NewEngine(Config{
				Type:      TypeHOTP,
				Secret:    rfcSecretSHA1,
				Algorithm: alg,
				Counter:   42,
				Digits:    7,
			})
			require.NoError(t, err)

			first := engine.Generate()
			for range 5 {
				assert.Equal(t, first, engine.Generate())
			}
			assert.Len(t, first, 7)
			assert.True(t, isDigits(first), "non-digit output %q", first)
		})
	}
}

func TestGenerateOutputShape(t *testing.T) {
	for digits := 1; digits <= MaxDigits; digits++ {
		engine, err := NewEngine(Config{
			Type:    TypeHOTP,
			Secret:  rfcSecretSHA1,
			Digits:  digits,
			Counter: uint64(digits),
		})
		require.NoError(t, err)

		for counter := uint64(0); counter < 50; counter++ {
			code := engine.GenerateAt(counter)
			require.Len(t, code, digits)
			require.True(t, isDigits(code), "non-digit output %q", code)
		}
	}
}

func TestAlgorithmsProduceDistinctCodes(t *testing.T) {
	seen := map[string]Algorithm{}
	for _, alg := range Algorithms() {
		engine, err := NewEngine(Config{Type: TypeHOTP, Secret: rfcSecretSHA512, Algorithm: alg, Digits: 9})
		require.NoError(t, err)

		code := engine.Generate()
		if prev, ok := seen[code]; ok {
			t.Fatalf("%s and %s produced the same code %s", prev, alg, code)
		}
		seen[code] = alg
	}
}

func TestMatchesPquernaHOTP(t *testing.T) {
	tests := []struct {
		alg  Algorithm
		palg potp.Algorithm
	}{
		{AlgorithmSHA1, potp.AlgorithmSHA1},
		{AlgorithmSHA256, potp.AlgorithmSHA256},
		{AlgorithmSHA512, potp.AlgorithmSHA512},
	}

	secret, err := GenerateSecret("crosscheck@example.com", AlgorithmSHA512)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(string(tt.alg), func(t *testing.T) {
			engine, err := NewEngine(Config{Type: TypeHOTP, Secret: secret, Algorithm: tt.alg, Digits: 8})
			require.NoError(t, err)

			for counter := uint64(0); counter < 20; counter++ {
				want, err := hotp.GenerateCodeCustom(secret, counter, hotp.ValidateOpts{
					Digits:    potp.DigitsEight,
					Algorithm: tt.palg,
				})
				require.NoError(t, err)
				assert.Equal(t, want, engine.GenerateAt(counter), "counter %d", counter)
			}
		})
	}
}

func TestNewEngine(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"valid TOTP", Config{Type: TypeTOTP, Secret: rfcSecretSHA1}, nil},
		{"valid HOTP", Config{Type: TypeHOTP, Secret: rfcSecretSHA1, Counter: 3}, nil},
		{"valid SHA384", Config{Secret: rfcSecretSHA1, Algorithm: AlgorithmSHA384}, nil},
		{"valid 9 digits", Config{Secret: rfcSecretSHA1, Digits: 9}, nil},
		{"empty secret", Config{Type: TypeTOTP}, ErrInvalidKey},
		{"lowercase secret", Config{Secret: strings.ToLower(rfcSecretSHA1)}, ErrInvalidKey},
		{"padded secret", Config{Secret: "MFRGG==="}, ErrInvalidKey},
		{"invalid characters", Config{Secret: "invalid@secret!"}, ErrInvalidKey},
		{"invalid type", Config{Type: "motp", Secret: rfcSecretSHA1}, ErrInvalidConfig},
		{"too many digits", Config{Secret: rfcSecretSHA1, Digits: 10}, ErrInvalidConfig},
		{"negative digits", Config{Secret: rfcSecretSHA1, Digits: -1}, ErrInvalidConfig},
		{"invalid algorithm", Config{Secret: rfcSecretSHA1, Algorithm: "MD5"}, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := NewEngine(tt.cfg)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, engine)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, engine)
		})
	}
}

func TestDefaults(t *testing.T) {
	engine, err := NewEngine(Config{Secret: rfcSecretSHA1})
	require.NoError(t, err)

	assert.Equal(t, TypeTOTP, engine.Type())
	assert.Equal(t, DefaultDigits, engine.Digits())

	now := uint64(time.Now().Unix()) / Period
	got := engine.Counter()
	assert.True(t, got == now || got == now+1, "counter %d not near %d", got, now)
}

func TestTOTPIgnoresStoredCounter(t *testing.T) {
	engine, err := NewEngine(Config{
		Type:    TypeTOTP,
		Secret:  rfcSecretSHA1,
		Counter: 999,
		Clock:   clock.Unix(89),
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), engine.Counter())
}

func TestVerify(t *testing.T) {
	engine, err := NewEngine(Config{Type: TypeHOTP, Secret: rfcSecretSHA1, Counter: 1})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, engine.Verify(ctx, "287082"))
	require.NoError(t, engine.Verify(ctx, " 287082 "))
	assert.ErrorIs(t, engine.Verify(ctx, "755224"), ErrInvalidCode)
	assert.ErrorIs(t, engine.Verify(ctx, ""), ErrInvalidCode)

	// the engine never advances its own counter
	assert.Equal(t, uint64(1), engine.Counter())

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, engine.Verify(cancelled, "287082"), context.Canceled)

	var nilEngine *Engine
	assert.ErrorIs(t, nilEngine.Verify(ctx, "287082"), ErrNilEngine)
}

func TestParseType(t *testing.T) {
	typ, err := ParseType("HOTP")
	require.NoError(t, err)
	assert.Equal(t, TypeHOTP, typ)

	_, err = ParseType("steam")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

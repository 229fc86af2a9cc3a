// Package otp generates HOTP (RFC 4226) and TOTP (RFC 6238) codes.
//
// HOTP (HMAC-based One-Time Password) derives a code from a counter that the
// caller advances after each use. TOTP (Time-based One-Time Password) is HOTP
// with the counter taken from the wall clock in 30 second steps.
//
// # Generating a Code
//
//	engine, err := otp.NewEngine(otp.Config{
//	    Type:      otp.TypeHOTP,
//	    Secret:    "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ",
//	    Algorithm: otp.AlgorithmSHA1,
//	    Counter:   0,
//	    Digits:    6,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	code := engine.Generate() // "755224"
//
// The engine is pure: it never changes the counter it was built with. Callers
// that persist HOTP counters increment them after a successful generation.
//
// # Secrets
//
// Secrets are unpadded, upper-case Base32 text. DecodeKey validates and
// decodes them; NormalizeKey cleans up user input first. GenerateSecret
// creates a random secret sized for the chosen algorithm.
//
// # Hash Algorithms
//
// The package supports:
//   - AlgorithmSHA1 (default, widely supported)
//   - AlgorithmSHA256
//   - AlgorithmSHA384
//   - AlgorithmSHA512
//
// # Testing Time
//
// Config.Clock accepts any clock.Clocker, so TOTP codes can be produced for a
// fixed instant:
//
//	engine, _ := otp.NewEngine(otp.Config{Secret: secret, Clock: clock.Unix(59)})
package otp

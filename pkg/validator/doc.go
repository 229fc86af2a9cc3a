// Package validator checks command requests before they reach the account
// store. It wraps go-playground/validator v10 with English messages and the
// OTP-specific rules "base32", "algorithm" and "otptype".
package validator

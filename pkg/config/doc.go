// Package config resolves authenticator settings.
//
// Values come from, in order of precedence: command-line flags bound with
// BindFlag, AUTHENTICATOR_* environment variables, an optional config file,
// and built-in defaults. The config file is looked up as config.{toml,yaml,json}
// in the store directory unless an explicit file is given.
//
//	store.dir      AUTHENTICATOR_STORE_DIR      ~/.authenticator
//	store.file     AUTHENTICATOR_STORE_FILE     accounts.json
//	otp.length     AUTHENTICATOR_OTP_LENGTH     6
//	otp.algorithm  AUTHENTICATOR_OTP_ALGORITHM  sha1
//	otp.mode       AUTHENTICATOR_OTP_MODE       totp
//	log.level      AUTHENTICATOR_LOG_LEVEL      info
package config

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jeremyhahn/go-authenticator/pkg/otp"
)

const (
	// EnvPrefix prefixes environment overrides.
	EnvPrefix = "AUTHENTICATOR"
	// DefaultDirName is the store directory under the user's home.
	DefaultDirName = ".authenticator"
	// DefaultFileName is the store file name.
	DefaultFileName = "accounts.json"
	// ConfigName is the base name of the optional config file.
	ConfigName = "config"
)

// Configuration keys.
const (
	KeyStoreDir     = "store.dir"
	KeyStoreFile    = "store.file"
	KeyOTPLength    = "otp.length"
	KeyOTPAlgorithm = "otp.algorithm"
	KeyOTPMode      = "otp.mode"
	KeyLogLevel     = "log.level"
)

// ErrInvalidConfig indicates a setting is out of range.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the resolved configuration for one invocation.
type Config struct {
	Store StoreConfig `mapstructure:"store"`
	OTP   OTPConfig   `mapstructure:"otp"`
	Log   LogConfig   `mapstructure:"log"`

	file string
}

// StoreConfig locates the account store.
type StoreConfig struct {
	Dir  string `mapstructure:"dir"`
	File string `mapstructure:"file"`
}

// OTPConfig holds defaults for code generation and new accounts.
type OTPConfig struct {
	Length    int    `mapstructure:"length"`
	Algorithm string `mapstructure:"algorithm"`
	Mode      string `mapstructure:"mode"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ConfigFile returns the config file that was read, empty if none.
func (c *Config) ConfigFile() string {
	return c.file
}

// StorePath returns the full path of the account store file.
func (c *Config) StorePath() string {
	return filepath.Join(c.Store.Dir, c.Store.File)
}

// Algorithm returns the parsed default algorithm.
func (c *Config) Algorithm() otp.Algorithm {
	alg, err := otp.ParseAlgorithm(c.OTP.Algorithm)
	if err != nil {
		return otp.DefaultAlgorithm
	}
	return alg
}

// Mode returns the parsed default account type.
func (c *Config) Mode() otp.Type {
	typ, err := otp.ParseType(c.OTP.Mode)
	if err != nil {
		return otp.TypeTOTP
	}
	return typ
}

// SlogLevel returns the configured log level, Info if unparseable.
func (c LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (c *Config) validate() error {
	if c.Store.Dir == "" {
		return fmt.Errorf("%w: store directory is not set and no home directory was found", ErrInvalidConfig)
	}
	if c.Store.File == "" || filepath.Base(c.Store.File) != c.Store.File {
		return fmt.Errorf("%w: store file must be a plain file name, got %q", ErrInvalidConfig, c.Store.File)
	}
	if c.OTP.Length < 1 || c.OTP.Length > otp.MaxDigits {
		return fmt.Errorf("%w: otp length must be between 1 and %d", ErrInvalidConfig, otp.MaxDigits)
	}
	if _, err := otp.ParseAlgorithm(c.OTP.Algorithm); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := otp.ParseType(c.OTP.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// DefaultDir returns ~/.authenticator.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: home directory not found: %w", err)
	}
	return filepath.Join(home, DefaultDirName), nil
}

// Loader builds a Config from defaults, a config file, the environment and
// bound flags.
type Loader struct {
	v *viper.Viper
}

// NewLoader returns a Loader with defaults and environment overrides applied.
func NewLoader() *Loader {
	v := viper.New()

	dir, err := DefaultDir()
	if err != nil {
		dir = ""
	}
	v.SetDefault(KeyStoreDir, dir)
	v.SetDefault(KeyStoreFile, DefaultFileName)
	v.SetDefault(KeyOTPLength, otp.DefaultDigits)
	v.SetDefault(KeyOTPAlgorithm, strings.ToLower(string(otp.DefaultAlgorithm)))
	v.SetDefault(KeyOTPMode, string(otp.TypeTOTP))
	v.SetDefault(KeyLogLevel, "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// BindFlag lets a command-line flag override key when it is set.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("config: no flag to bind for %q", key)
	}
	return l.v.BindPFlag(key, flag)
}

// Load resolves the configuration. An explicit configFile must exist;
// otherwise a config file in the store directory is read if present.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile != "" {
		l.v.SetConfigFile(configFile)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", configFile, err)
		}
	} else if dir := l.v.GetString(KeyStoreDir); dir != "" {
		l.v.AddConfigPath(dir)
		l.v.SetConfigName(ConfigName)
		if err := l.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: failed to read config in %s: %w", dir, err)
			}
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.file = l.v.ConfigFileUsed()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load is shorthand for NewLoader().Load(configFile).
func Load(configFile string) (*Config, error) {
	return NewLoader().Load(configFile)
}

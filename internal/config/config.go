// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rovshanmuradov/pumpportal-go/pkg/pumpportal"
)

// Config holds CLI settings loaded from config.json, .env and PUMPPORTAL_* variables.
type Config struct {
	APIKey           string        `mapstructure:"api_key"`
	PublicKey        string        `mapstructure:"public_key"`
	PrivateKey       string        `mapstructure:"private_key"`
	RPCURL           string        `mapstructure:"rpc_url"`
	APIBaseURL       string        `mapstructure:"api_base_url"`
	WebSocketURL     string        `mapstructure:"websocket_url"`
	DebugLogging     bool          `mapstructure:"debug_logging"`
	SkipPreflight    bool          `mapstructure:"skip_preflight"`
	ConfirmTimeoutMS int           `mapstructure:"confirm_timeout_ms"`
	ConfirmTimeout   time.Duration `mapstructure:"-"`
}

const (
	DefaultRPCURL           = "https://api.mainnet-beta.solana.com"
	DefaultConfirmTimeoutMS = 30000
	envPrefix               = "PUMPPORTAL"
)

// LoadConfig reads path (optional) and the environment. A .env file in the
// working directory is loaded first if present.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	defaults := map[string]interface{}{
		"api_key":            "",
		"public_key":         "",
		"private_key":        "",
		"rpc_url":            DefaultRPCURL,
		"api_base_url":       pumpportal.DefaultBaseURL,
		"websocket_url":      pumpportal.DefaultWebSocketURL,
		"debug_logging":      false,
		"skip_preflight":     false,
		"confirm_timeout_ms": DefaultConfirmTimeoutMS,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config error: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}
	cfg.ConfirmTimeout = time.Duration(cfg.ConfirmTimeoutMS) * time.Millisecond

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if err := validateURL(c.RPCURL, "http"); err != nil {
		return fmt.Errorf("rpc_url: %w", err)
	}
	if err := validateURL(c.APIBaseURL, "http"); err != nil {
		return fmt.Errorf("api_base_url: %w", err)
	}
	if err := validateURL(c.WebSocketURL, "ws"); err != nil {
		return fmt.Errorf("websocket_url: %w", err)
	}
	if c.ConfirmTimeoutMS <= 0 {
		return errors.New("invalid confirm_timeout_ms")
	}
	return nil
}

func validateURL(rawURL string, protocol string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return errors.New("invalid URL format")
	}
	if !strings.HasPrefix(parsed.Scheme, protocol) {
		return errors.New("invalid URL protocol")
	}
	return nil
}

// RequireAPIKey reports a config error when no API key is set.
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return errors.New("api_key is required")
	}
	return nil
}

// RequirePrivateKey reports a config error when no signing key is set.
func (c *Config) RequirePrivateKey() error {
	if c.PrivateKey == "" {
		return errors.New("private_key is required")
	}
	return nil
}

// MaskedAPIKey returns the API key with all but the last four characters hidden.
func (c *Config) MaskedAPIKey() string {
	if len(c.APIKey) <= 4 {
		return strings.Repeat("*", len(c.APIKey))
	}
	return strings.Repeat("*", len(c.APIKey)-4) + c.APIKey[len(c.APIKey)-4:]
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Files  FilesConfig  `mapstructure:"files"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Gmail  GmailConfig  `mapstructure:"gmail"`
	Sender SenderConfig `mapstructure:"sender"`
	Log    LogConfig    `mapstructure:"log"`
}

// FilesConfig holds the locations of the files the application reads and writes
type FilesConfig struct {
	// ClientConfig is the OAuth client JSON downloaded from the Google Cloud console
	ClientConfig string `mapstructure:"client_config"`
	// Credential is where the authorized user token is persisted
	Credential string `mapstructure:"credential"`
	// Templates is the JSON file holding the e-mail template bodies
	Templates string `mapstructure:"templates"`
}

// AuthConfig holds the interactive authorization settings
type AuthConfig struct {
	// CallbackHost is the host the local redirect listener binds to
	CallbackHost string `mapstructure:"callback_host"`
	// CallbackPort is the port of the local redirect listener (0 picks a free port)
	CallbackPort int `mapstructure:"callback_port"`
	// Timeout bounds how long we wait for the user to finish the consent screen
	Timeout time.Duration `mapstructure:"timeout"`
	// ExchangeTimeout bounds token exchange and refresh calls
	ExchangeTimeout time.Duration `mapstructure:"exchange_timeout"`
	// OpenBrowser controls whether the consent URL is opened automatically
	OpenBrowser bool `mapstructure:"open_browser"`
}

// GmailConfig holds Gmail API configuration
type GmailConfig struct {
	// Endpoint overrides the Gmail API base URL (empty uses Google's default)
	Endpoint string `mapstructure:"endpoint"`
	// UserID is the mailbox messages are sent from ("me" is the authorized user)
	UserID string `mapstructure:"user_id"`
	// Timeout bounds a single send call
	Timeout time.Duration `mapstructure:"timeout"`
}

// SenderConfig holds the optional From header
type SenderConfig struct {
	Name    string `mapstructure:"name"`
	Address string `mapstructure:"address"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
// An empty path searches the default locations; a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "hrmail"))
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("HRMAIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the values Load cannot default away
func (c *Config) Validate() error {
	switch {
	case c.Files.ClientConfig == "":
		return errors.New("config: files.client_config must not be empty")
	case c.Files.Credential == "":
		return errors.New("config: files.credential must not be empty")
	case c.Files.Templates == "":
		return errors.New("config: files.templates must not be empty")
	case c.Auth.Timeout <= 0:
		return errors.New("config: auth.timeout must be positive")
	case c.Auth.ExchangeTimeout <= 0:
		return errors.New("config: auth.exchange_timeout must be positive")
	case c.Gmail.Timeout <= 0:
		return errors.New("config: gmail.timeout must be positive")
	case c.Auth.CallbackPort < 0 || c.Auth.CallbackPort > 65535:
		return fmt.Errorf("config: auth.callback_port %d out of range", c.Auth.CallbackPort)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// File defaults
	v.SetDefault("files.client_config", "credentials.json")
	v.SetDefault("files.credential", "token.json")
	v.SetDefault("files.templates", "templates.json")

	// Auth defaults
	v.SetDefault("auth.callback_host", "localhost")
	v.SetDefault("auth.callback_port", 0)
	v.SetDefault("auth.timeout", "5m")
	v.SetDefault("auth.exchange_timeout", "30s")
	v.SetDefault("auth.open_browser", true)

	// Gmail defaults
	v.SetDefault("gmail.endpoint", "")
	v.SetDefault("gmail.user_id", "me")
	v.SetDefault("gmail.timeout", "30s")

	// Sender defaults
	v.SetDefault("sender.name", "")
	v.SetDefault("sender.address", "")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

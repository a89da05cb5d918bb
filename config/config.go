package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerHost string `mapstructure:"SERVER_HOST"`
	ServerPort int    `mapstructure:"SERVER_PORT"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`

	ContactEndpointURL string        `mapstructure:"CONTACT_ENDPOINT_URL"`
	ContactTimeout     time.Duration `mapstructure:"CONTACT_TIMEOUT"`

	TemplateImagePath string `mapstructure:"TEMPLATE_IMAGE_PATH"`
	LayoutPath        string `mapstructure:"LAYOUT_PATH"`

	FormIdleTTL       time.Duration `mapstructure:"FORM_IDLE_TTL"`
	FormSweepInterval time.Duration `mapstructure:"FORM_SWEEP_INTERVAL"`
	GuardTTL          time.Duration `mapstructure:"GUARD_TTL"`

	CacheAddress string `mapstructure:"CACHE_ADDRESS"`
	CachePort    int    `mapstructure:"CACHE_PORT"`
}

var defaults = map[string]any{
	"SERVER_HOST":          "",
	"SERVER_PORT":          8288,
	"LOG_LEVEL":            "info",
	"CONTACT_ENDPOINT_URL": "",
	"CONTACT_TIMEOUT":      "0s",
	"TEMPLATE_IMAGE_PATH":  "assets/offerletter-acme.png",
	"LAYOUT_PATH":          "",
	"FORM_IDLE_TTL":        "30m",
	"FORM_SWEEP_INTERVAL":  "1m",
	"GUARD_TTL":            "2m",
	"CACHE_ADDRESS":        "",
	"CACHE_PORT":           6379,
}

// InitConfig reads .env from the working directory (optional) and the
// process environment. Environment variables win.
func InitConfig() (Config, error) {
	return Load(".env")
}

func Load(envFile string) (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			var pathErr *fs.PathError
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("failed to read config file %s: %w", envFile, err)
			}
		}
	}
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ContactEndpointURL = strings.TrimSpace(config.ContactEndpointURL)

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Validate checks the server-level settings. The contact endpoint is checked
// by the contact client when it is built.
func (c Config) Validate() error {
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("invalid SERVER_PORT %d", c.ServerPort)
	}
	if c.ContactTimeout < 0 {
		return fmt.Errorf("CONTACT_TIMEOUT must not be negative")
	}
	if c.FormIdleTTL <= 0 {
		return fmt.Errorf("FORM_IDLE_TTL must be positive")
	}
	if c.FormSweepInterval <= 0 {
		return fmt.Errorf("FORM_SWEEP_INTERVAL must be positive")
	}
	if c.GuardTTL <= 0 {
		return fmt.Errorf("GUARD_TTL must be positive")
	}
	return nil
}

func (c Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

func (c Config) CacheEnabled() bool {
	return strings.TrimSpace(c.CacheAddress) != ""
}

func (c Config) CacheAddr() string {
	return fmt.Sprintf("%s:%d", c.CacheAddress, c.CachePort)
}

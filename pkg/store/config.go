package store

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// DefaultPath is where preferences and the TUI log live unless configured.
const DefaultPath = "~/.gigs"

// ConfigPathEnv names the directory holding .gigs.yaml, overriding the
// default search path.
const ConfigPathEnv = "GIGS_CONFIG_PATH"

// Config is the resolved client configuration.
type Config struct {
	// ScriptURL is the gateway endpoint. Network commands fail without it.
	ScriptURL string
	// Path is the expanded base directory for preferences.
	Path        string
	LogLevel    string
	LogFormat   string
	HTTPTimeout time.Duration
}

// BasePath implements PathConfig.
func (c *Config) BasePath() string {
	return c.Path
}

// PathConfig is the part of the configuration the store needs.
type PathConfig interface {
	BasePath() string
}

// LoadConfig reads .env, then .gigs.yaml from GIGS_CONFIG_PATH or the
// working directory, then GIGS_* environment variables.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("store: load .env: %w", err)
	}
	return loadConfig(viper.New())
}

func loadConfig(v *viper.Viper) (*Config, error) {
	v.SetDefault("path", DefaultPath)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("http_timeout", time.Duration(0))
	v.SetConfigName(".gigs") // .yaml is implicit
	v.SetEnvPrefix("GIGS")
	v.AutomaticEnv()

	if override := os.Getenv(ConfigPathEnv); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &Config{
		ScriptURL:   v.GetString("script_url"),
		Path:        path,
		LogLevel:    v.GetString("log_level"),
		LogFormat:   v.GetString("log_format"),
		HTTPTimeout: v.GetDuration("http_timeout"),
	}, nil
}

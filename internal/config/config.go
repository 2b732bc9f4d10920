package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the root configuration for reti, stored in reti.toml.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	// Editor is the command used by `reti edit`; the file path is appended.
	Editor  string        `mapstructure:"editor"`
	Logging LoggingConfig `mapstructure:"logging"`
	Outlook OutlookConfig `mapstructure:"outlook"`
}

// StorageConfig selects where and how the time store is persisted.
type StorageConfig struct {
	File   string `mapstructure:"file"`
	Type   string `mapstructure:"type"`
	Pretty bool   `mapstructure:"pretty"`
}

// LoggingConfig defines diagnostic logging on stderr.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutlookConfig holds Microsoft Graph / Outlook calendar import settings.
type OutlookConfig struct {
	// TenantID is the Azure AD tenant. Use "common" for personal/multi-tenant accounts.
	TenantID string `mapstructure:"tenant_id"`
	// ClientID is the Azure app (client) ID for the OAuth2 device code flow.
	ClientID string `mapstructure:"client_id"`
	// Timezone is the IANA timezone for event times (e.g. "Europe/Berlin"). Empty = UTC.
	Timezone string `mapstructure:"timezone"`
	// BreakFactor marks imported events as credited breaks when > 0.
	BreakFactor float64 `mapstructure:"break_factor"`
}

const (
	// DefaultTenantID is the Microsoft "common" tenant.
	DefaultTenantID = "common"
	// DefaultClientID is the well-known public Azure CLI app ID. It supports
	// device code flow without a client secret.
	DefaultClientID = "04b07795-8542-4c4a-95af-30b2c573d5ab"
	// EnvPrefix prefixes environment overrides, e.g. RETI_STORAGE_FILE.
	EnvPrefix = "RETI"
)

// configTemplate is the annotated config written on first run.
const configTemplate = `# reti configuration
#
# All settings are optional. Every key can also be set through the
# environment, e.g. RETI_STORAGE_FILE or RETI_LOGGING_LEVEL, or in a .env
# file in the working directory.

[storage]
# Snapshot location. Defaults to times.json next to this file.
# file = "/home/me/.config/reti/times.json"

# "json" (single JSON document) or "sqlite".
type = "json"

# Indent the JSON snapshot.
pretty = false

[logging]
# debug, info, warn or error. Diagnostics go to stderr.
level = "warn"
# "text" or "json".
format = "text"

[outlook]
# Azure AD tenant ID: "common" for personal and most organisational accounts.
tenant_id = "common"
# Azure application (client) ID used for the OAuth2 device code flow.
client_id = "04b07795-8542-4c4a-95af-30b2c573d5ab"
# IANA timezone for calendar event times. Empty means UTC.
timezone = ""
# 0 imports events as worked time; a value in (0,1] imports them as
# breaks credited at that fraction.
break_factor = 0
`

// Dir returns the reti configuration directory.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(dir, "reti"), nil
}

// DefaultPath returns the path to reti.toml in Dir.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "reti.toml"), nil
}

// Load reads the config at path (DefaultPath when empty), creating it with
// annotated defaults on first run. .env and RETI_* variables override the
// file.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
	}

	v := viper.New()
	setDefaults(v, filepath.Dir(path))

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault("storage.file", filepath.Join(dir, "times.json"))
	v.SetDefault("storage.type", "json")
	v.SetDefault("storage.pretty", false)

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim"
	}
	v.SetDefault("editor", editor)

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "text")

	v.SetDefault("outlook.tenant_id", DefaultTenantID)
	v.SetDefault("outlook.client_id", DefaultClientID)
	v.SetDefault("outlook.timezone", "")
	v.SetDefault("outlook.break_factor", 0.0)
}

// validate validates the configuration.
func validate(cfg *Config) error {
	switch cfg.Storage.Type {
	case "json", "sqlite":
	default:
		return fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
	}
	if cfg.Storage.File == "" {
		return errors.New("storage file is required")
	}
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", cfg.Logging.Level)
	}
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", cfg.Logging.Format)
	}
	if f := cfg.Outlook.BreakFactor; f < 0 || f > 1 {
		return fmt.Errorf("outlook break_factor %v outside [0,1]", f)
	}
	return nil
}

// loadDotEnv applies variables from env files that exist. Variables already
// set in the environment win.
func loadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

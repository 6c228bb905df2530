// Package config loads configuration for the navigation policy engine.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"navpolicy/pkg/filtering"
	"navpolicy/pkg/resolve"
)

const (
	defaultConfigPath = "/etc/navpolicy/navpolicy.conf"
	configEnvVar      = "NAVPOLICY_CONFIG"
)

// Config contains all runtime options.
type Config struct {
	Search   SearchConfig   `mapstructure:"search"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Tracking TrackingConfig `mapstructure:"tracking"`
}

// SearchConfig holds the search fallback settings.
type SearchConfig struct {
	Template string `mapstructure:"template"`
}

// LoggingConfig holds log settings.
type LoggingConfig struct {
	Level               string `mapstructure:"level"`
	File                string `mapstructure:"file"`
	BlocklistErrorLimit int    `mapstructure:"blocklist_error_limit"`
}

// TrackingConfig holds tracker blocking settings.
type TrackingConfig struct {
	Enabled    bool            `mapstructure:"enabled"`
	Builtin    bool            `mapstructure:"builtin"`
	BlockedLog string          `mapstructure:"blocked_log"`
	Allowlist  AllowlistConfig `mapstructure:"allowlist"`
	Custom     CustomConfig    `mapstructure:"custom"`
	Lists      map[string]filtering.ListConfig
}

// AllowlistConfig holds allowlist settings.
type AllowlistConfig struct {
	Path string `mapstructure:"path"`
}

// CustomConfig holds extra list file paths.
type CustomConfig struct {
	List []string `mapstructure:"list"`
}

// Sources returns the tracker list sources the configuration describes.
func (c TrackingConfig) Sources() []filtering.Source {
	return filtering.BuildSources(c.Lists, c.Custom.List, c.Builtin)
}

// ValidateLogLevel ensures the user-provided log level matches the supported set.
func ValidateLogLevel(level string) error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(level)] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", level)
	}
	return nil
}

// ValidateSearchTemplate requires an absolute http or https URL.
func ValidateSearchTemplate(template string) error {
	if strings.TrimSpace(template) == "" {
		return errors.New("search.template must not be empty")
	}
	u, err := url.Parse(template)
	if err != nil {
		return fmt.Errorf("invalid search.template %q: %w", template, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("search.template must be an absolute http(s) URL: %s", template)
	}
	return nil
}

// Setup loads the configuration from path. An empty path falls back to
// NAVPOLICY_CONFIG and then to the default location; a missing file at the
// default location yields the defaults.
func Setup(path string) (*Config, error) {
	explicit := true
	if path == "" {
		path = strings.TrimSpace(os.Getenv(configEnvVar))
	}
	if path == "" {
		path = defaultConfigPath
		explicit = false
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if explicit || !isNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	listConfigs, err := parseListConfigs(v)
	if err != nil {
		return nil, err
	}
	cfg.Tracking.Lists = listConfigs

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("search.template", resolve.DefaultSearchTemplate)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "stderr")
	v.SetDefault("logging.blocklist_error_limit", 20)
	v.SetDefault("tracking.enabled", true)
	v.SetDefault("tracking.builtin", true)
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.Is(err, os.ErrNotExist) || errors.As(err, &notFound)
}

func validateConfig(cfg *Config) error {
	if err := ValidateLogLevel(cfg.Logging.Level); err != nil {
		return err
	}
	if err := ValidateSearchTemplate(cfg.Search.Template); err != nil {
		return err
	}
	if cfg.Logging.BlocklistErrorLimit < 0 {
		return errors.New("logging.blocklist_error_limit must be >= 0")
	}
	for id, list := range cfg.Tracking.Lists {
		if list.Enabled && strings.TrimSpace(list.Path) == "" {
			return fmt.Errorf("tracking.%s.path is required when the list is enabled", id)
		}
	}
	return nil
}

// parseListConfigs decodes every table under [tracking] that is not a known
// option as a named tracker list.
func parseListConfigs(v *viper.Viper) (map[string]filtering.ListConfig, error) {
	raw := v.GetStringMap("tracking")
	if len(raw) == 0 {
		return map[string]filtering.ListConfig{}, nil
	}

	ignored := map[string]bool{
		"enabled":     true,
		"builtin":     true,
		"blocked_log": true,
		"allowlist":   true,
		"custom":      true,
	}

	listConfigs := make(map[string]filtering.ListConfig)
	for key, value := range raw {
		if ignored[key] {
			continue
		}
		subMap, ok := value.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("tracking.%s must be a table", key)
		}
		var cfg filtering.ListConfig
		if err := mapstructure.Decode(subMap, &cfg); err != nil {
			return nil, fmt.Errorf("parse tracking.%s: %w", key, err)
		}
		listConfigs[strings.ToLower(key)] = cfg
	}

	return listConfigs, nil
}

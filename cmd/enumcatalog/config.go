package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gburgyan/go-enumparam"
	"github.com/gburgyan/go-enumparam/catalogstore"
)

// Config is resolved in layers: defaults, then the YAML file, then
// ENUMCATALOG_* environment variables, then command-line flags.
type Config struct {
	Catalog catalogstore.Config `yaml:"catalog"`
	Log     LogConfig           `yaml:"log"`
	// InlineLimit is the number of named values below which describe shows
	// an inline menu.
	InlineLimit int `yaml:"inline_limit"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func defaultConfig() Config {
	return Config{
		Catalog: catalogstore.Config{
			Driver: "sqlite",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		InlineLimit: enumparam.InlineChoiceLimit,
	}
}

// loadYAML overlays the file at path on cfg. A missing file is not an error.
func loadYAML(path string, cfg Config) (Config, error) {
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func applyEnv(cfg Config) Config {
	cfg.Catalog.Driver = getenv("ENUMCATALOG_DRIVER", cfg.Catalog.Driver)
	cfg.Catalog.DSN = getenv("ENUMCATALOG_DSN", cfg.Catalog.DSN)
	cfg.Catalog.QueryLog = getenvBool("ENUMCATALOG_QUERY_LOG", cfg.Catalog.QueryLog)
	cfg.Log.Level = getenv("ENUMCATALOG_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getenv("ENUMCATALOG_LOG_FORMAT", cfg.Log.Format)
	if v := getenv("ENUMCATALOG_INLINE_LIMIT", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.InlineLimit = n
		}
	}
	return cfg
}

func getenv(k, fallback string) string {
	if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getenvBool(k string, fallback bool) bool {
	if v, ok := os.LookupEnv(k); ok {
		v = strings.TrimSpace(strings.ToLower(v))
		if v == "1" || v == "true" || v == "yes" {
			return true
		}
		if v == "0" || v == "false" || v == "no" {
			return false
		}
	}
	return fallback
}

func (c Config) validate() error {
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be 'text' or 'json'", c.Log.Format)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", c.Log.Level)
	}
	if c.InlineLimit < 0 {
		return fmt.Errorf("inline limit must not be negative")
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFile is read when no config file is named and it exists.
	DefaultFile = "courseplan.yaml"
	// DefaultDotEnv is the .env file consulted for missing variables.
	DefaultDotEnv = ".env"
	// DefaultListen keeps the HTTP server on the loopback interface.
	DefaultListen = "127.0.0.1:8080"
)

// Environment variables recognised by Load.
const (
	EnvCatalog   = "COURSEPLAN_CATALOG"
	EnvOutput    = "COURSEPLAN_OUTPUT"
	EnvListen    = "COURSEPLAN_LISTEN"
	EnvLogLevel  = "COURSEPLAN_LOG_LEVEL"
	EnvLogFormat = "COURSEPLAN_LOG_FORMAT"
)

var (
	LogLevels     = []string{"debug", "info", "warn", "error"}
	LogFormats    = []string{"text", "json"}
	OutputFormats = []string{"text", "json", "yaml"}
)

// Config is the merged program configuration.
type Config struct {
	// Catalog is the file or directory loaded at start-up. Empty means start
	// with no catalog.
	Catalog string `yaml:"catalog"`
	// Output is the presentation format: text, json or yaml.
	Output string `yaml:"output"`
	// Listen is the address of the HTTP server in serve mode.
	Listen string `yaml:"listen"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

// Source says where Load looks for settings.
type Source struct {
	// File is a YAML config file. If empty, DefaultFile is used when it
	// exists.
	File string
	// DotEnv is a .env file whose values are used for variables missing from
	// the process environment. If empty, DefaultDotEnv is used when it
	// exists.
	DotEnv string
	// LookupEnv reads the process environment. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Default returns the built-in settings.
func Default() *Config {
	cfg := &Config{
		Output: "text",
		Listen: DefaultListen,
	}
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "text"
	return cfg
}

// Load builds a Config from defaults, the YAML file and the environment, in
// that order. The result is not validated: callers apply their own overrides
// first and then call Validate. A file named explicitly in src must exist;
// the default file and .env are optional.
func Load(src Source) (*Config, error) {
	cfg := Default()

	if err := loadFile(cfg, src.File); err != nil {
		return nil, err
	}

	lookup, err := environment(src)
	if err != nil {
		return nil, err
	}
	loadFromEnv(cfg, lookup)
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	required := path != ""
	if !required {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// environment returns a lookup that prefers the process environment and
// falls back to the .env file.
func environment(src Source) (func(string) (string, bool), error) {
	lookup := src.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	required := src.DotEnv != ""
	path := src.DotEnv
	if !required {
		path = DefaultDotEnv
	}

	dotenv, err := godotenv.Read(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return lookup, nil
		}
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}

	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}, nil
}

func loadFromEnv(cfg *Config, lookup func(string) (string, bool)) {
	fields := []struct {
		key string
		dst *string
	}{
		{EnvCatalog, &cfg.Catalog},
		{EnvOutput, &cfg.Output},
		{EnvListen, &cfg.Listen},
		{EnvLogLevel, &cfg.Logging.Level},
		{EnvLogFormat, &cfg.Logging.Format},
	}
	for _, f := range fields {
		if v, ok := lookup(f.key); ok && strings.TrimSpace(v) != "" {
			*f.dst = strings.TrimSpace(v)
		}
	}
}

// Validate checks every enumerated setting. Values are compared in lower
// case and normalized in place.
func (c *Config) Validate() error {
	checks := []struct {
		name    string
		value   *string
		allowed []string
	}{
		{"output", &c.Output, OutputFormats},
		{"log level", &c.Logging.Level, LogLevels},
		{"log format", &c.Logging.Format, LogFormats},
	}
	for _, check := range checks {
		*check.value = strings.ToLower(*check.value)
		if !slices.Contains(check.allowed, *check.value) {
			return fmt.Errorf("invalid %s %q: must be one of %s", check.name, *check.value, strings.Join(check.allowed, ", "))
		}
	}
	return nil
}

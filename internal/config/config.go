// Package config loads and validates blogposts configuration.
//
// Configuration is resolved in layers: built-in defaults, then the YAML file
// at $BLOGPOSTS_HOME/config.yaml (default ~/.blogposts/config.yaml), then an
// optional overlay file given on the command line, then environment variables.
// Command-line flags are applied last by the cli package.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/blogposts/internal/logging"
)

// Defaults.
const (
	DefaultSourceURL    = "https://jsonplaceholder.typicode.com/posts"
	DefaultTitle        = "Blog Posts"
	DefaultErrorHeading = "An Error Occurred"
	DefaultOutputFormat = "text"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
	configFileName      = "config.yaml"
)

// Environment variables.
const (
	EnvHome      = "BLOGPOSTS_HOME"
	EnvURL       = "BLOGPOSTS_URL"
	EnvLogLevel  = "BLOGPOSTS_LOG_LEVEL"
	EnvLogFormat = "BLOGPOSTS_LOG_FORMAT"
	EnvOutput    = "BLOGPOSTS_OUTPUT"
)

// Output formats accepted by output.default_format and --output.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var validOutputFormats = []string{"text", "json", "ndjson"}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// SourceConfig describes where posts are fetched from.
type SourceConfig struct {
	URL string `yaml:"url"`
}

// ViewConfig holds user-visible view text.
type ViewConfig struct {
	Title        string `yaml:"title"`
	ErrorHeading string `yaml:"error_heading"`
}

// OutputConfig controls non-interactive output.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
}

// LoggingConfig controls diagnostic logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Config is the full blogposts configuration.
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	View    ViewConfig    `yaml:"view"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`

	configPath string
}

// Default returns a Config populated with built-in defaults only.
func Default() *Config {
	return &Config{
		Source: SourceConfig{URL: DefaultSourceURL},
		View: ViewConfig{
			Title:        DefaultTitle,
			ErrorHeading: DefaultErrorHeading,
		},
		Output:  OutputConfig{DefaultFormat: DefaultOutputFormat},
		Logging: LoggingConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// New returns the defaults overlaid with the user config file, if present,
// and environment overrides. A missing or unreadable config file is not
// fatal; the defaults are used and the problem is logged.
func New() *Config {
	cfg := Default()

	dir, err := GetConfigDir()
	if err == nil {
		cfg.configPath = filepath.Join(dir, configFileName)
		if loadErr := cfg.Load(); loadErr != nil && !errors.Is(loadErr, os.ErrNotExist) {
			logger := GetLogger()
			logger.Warn().
				Str("component", "config").
				Err(loadErr).
				Str("path", cfg.configPath).
				Msg("failed to load config file, using defaults")
		}
	}

	cfg.applyEnv()
	return cfg
}

// Path returns the file this Config is loaded from and saved to.
func (c *Config) Path() string {
	return c.configPath
}

// SetPath changes the file used by Load and Save.
func (c *Config) SetPath(path string) {
	c.configPath = path
}

// Load reads the config file at Path onto c. Keys absent in the file keep
// their current values.
func (c *Config) Load() error {
	if c.configPath == "" {
		return errors.New("config path not set")
	}
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", c.configPath, err)
	}
	return nil
}

// Save writes c to Path as YAML, creating the parent directory.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config path not set")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(c.configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// applyEnv applies environment variable overrides.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvURL); v != "" {
		c.Source.URL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output.DefaultFormat = v
	}
}

// Validate checks that c can be used to run the view.
func (c *Config) Validate() error {
	var errs []error

	if err := ValidateSourceURL(c.Source.URL); err != nil {
		errs = append(errs, err)
	}
	if !IsValidOutputFormat(c.Output.DefaultFormat) {
		errs = append(errs, fmt.Errorf("output.default_format %q must be one of %s",
			c.Output.DefaultFormat, strings.Join(validOutputFormats, ", ")))
	}
	if !logging.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging.level %q is not a valid level", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("logging.format %q must be console or json", c.Logging.Format))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// ValidateSourceURL checks that raw is an absolute http(s) URL.
func ValidateSourceURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("source.url %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("source.url %q must be an absolute http or https URL", raw)
	}
	return nil
}

// IsValidOutputFormat reports whether format is a supported output format.
func IsValidOutputFormat(format string) bool {
	return slices.Contains(validOutputFormats, format)
}

// Get returns the value for a dotted key such as "source.url".
func (c *Config) Get(key string) (string, error) {
	ptr, err := c.field(key)
	if err != nil {
		return "", err
	}
	return *ptr, nil
}

// Set assigns the value for a dotted key such as "view.error_heading".
func (c *Config) Set(key, value string) error {
	ptr, err := c.field(key)
	if err != nil {
		return err
	}
	*ptr = value
	return nil
}

// Keys returns every settable dotted key in display order.
func Keys() []string {
	return []string{
		"source.url",
		"view.title",
		"view.error_heading",
		"output.default_format",
		"logging.level",
		"logging.format",
		"logging.file",
	}
}

func (c *Config) field(key string) (*string, error) {
	switch key {
	case "source.url":
		return &c.Source.URL, nil
	case "view.title":
		return &c.View.Title, nil
	case "view.error_heading":
		return &c.View.ErrorHeading, nil
	case "output.default_format":
		return &c.Output.DefaultFormat, nil
	case "logging.level":
		return &c.Logging.Level, nil
	case "logging.format":
		return &c.Logging.Format, nil
	case "logging.file":
		return &c.Logging.File, nil
	default:
		return nil, fmt.Errorf("unknown config key: %s", key)
	}
}

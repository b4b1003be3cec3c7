// Package config loads medibook's configuration from ~/.medibook/config.yaml with
// MEDIBOOK_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/rshade/medibook/internal/format"
	"github.com/rshade/medibook/internal/logging"
)

// Defaults.
const (
	DefaultAPIBaseURL    = "http://localhost:5000"
	DefaultAPITimeout    = "10s"
	DefaultWebBaseURL    = "http://localhost:3000"
	DefaultOutputFormat  = "table"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"
	envPrefix            = "MEDIBOOK"
	envConfigPath        = "MEDIBOOK_CONFIG"
	configDirName        = ".medibook"
	configFileName       = "config.yaml"
	configFilePermission = 0o600
	configDirPermission  = 0o750
)

// Errors returned by Load, Validate and WriteFile.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrConfigExists  = errors.New("configuration file already exists")
)

// Config is the full medibook configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"     yaml:"api"`
	Web     WebConfig     `mapstructure:"web"     yaml:"web"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Output  OutputConfig  `mapstructure:"output"  yaml:"output"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// APIConfig points at the booking backend.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	Timeout string `mapstructure:"timeout"  yaml:"timeout"`
}

// TimeoutDuration parses Timeout.
func (a APIConfig) TimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(a.Timeout)
	if err != nil {
		return 0, fmt.Errorf("api.timeout %q: %w", a.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("api.timeout must be positive, got %s", d)
	}
	return d, nil
}

// WebConfig is the patient web app that navigation routes are resolved against.
type WebConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// DisplayConfig selects the locale and timezone used for dates and times.
type DisplayConfig struct {
	Locale   string `mapstructure:"locale"   yaml:"locale"`
	Timezone string `mapstructure:"timezone" yaml:"timezone"`
}

// OutputConfig holds output preferences.
type OutputConfig struct {
	DefaultFormat string `mapstructure:"default_format" yaml:"default_format"`
}

// LoggingConfig configures the zerolog logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file"   yaml:"file"`
}

// ToLoggingConfig converts the logging section for the logging package.
// A non-empty File selects file output; otherwise logs go to stderr.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}
	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API:     APIConfig{BaseURL: DefaultAPIBaseURL, Timeout: DefaultAPITimeout},
		Web:     WebConfig{BaseURL: DefaultWebBaseURL},
		Display: DisplayConfig{Locale: format.DefaultLocale, Timezone: format.DefaultTimezone},
		Output:  OutputConfig{DefaultFormat: DefaultOutputFormat},
		Logging: LoggingConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// DefaultPath returns $MEDIBOOK_CONFIG, or ~/.medibook/config.yaml.
func DefaultPath() string {
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(configDirName, configFileName)
	}
	return filepath.Join(home, configDirName, configFileName)
}

// Load reads the YAML files in paths in order, each one overriding the keys it sets (a missing
// file is not an error), applies MEDIBOOK_* environment overrides such as MEDIBOOK_API_BASE_URL,
// and validates the result. The usual call is Load(global, project).
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, Default())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, path := range paths {
		if path == "" {
			continue
		}
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("web.base_url", d.Web.BaseURL)
	v.SetDefault("display.locale", d.Display.Locale)
	v.SetDefault("display.timezone", d.Display.Timezone)
	v.SetDefault("output.default_format", d.Output.DefaultFormat)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.file", d.Logging.File)
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error

	if err := validateBaseURL("api.base_url", c.API.BaseURL); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.API.TimeoutDuration(); err != nil {
		errs = append(errs, err)
	}
	if err := validateBaseURL("web.base_url", c.Web.BaseURL); err != nil {
		errs = append(errs, err)
	}
	if _, err := format.New(c.Display.Locale, c.Display.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("display: %w", err))
	}
	switch c.Output.DefaultFormat {
	case "table", "json":
	default:
		errs = append(errs, fmt.Errorf("output.default_format must be table or json, got %q", c.Output.DefaultFormat))
	}
	switch c.Logging.Format {
	case logging.FormatJSON, logging.FormatConsole:
	default:
		errs = append(errs, fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func validateBaseURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL, got %q", key, raw)
	}
	return nil
}

// Formatter builds the display formatter for the configured locale and timezone.
func (c *Config) Formatter() (*format.Formatter, error) {
	return format.New(c.Display.Locale, c.Display.Timezone)
}

// YAML renders the configuration as YAML.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteFile writes c to path as YAML, creating the parent directory.
// An existing file is only replaced when force is set.
func (c *Config) WriteFile(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
	}

	data, err := c.YAML()
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(path), configDirPermission); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err = os.WriteFile(path, data, configFilePermission); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

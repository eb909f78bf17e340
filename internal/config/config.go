// Package config loads, validates and saves the feedline configuration file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/rshade/feedline/internal/cache"
	"github.com/rshade/feedline/internal/feed"
	"github.com/rshade/feedline/internal/timeline"
)

// Defaults written by `config init` and applied to missing fields.
const (
	CurrentVersion     = "1.0.0"
	DefaultBaseURL     = "https://api.twitter.com/1.1"
	DefaultPageSize    = 50
	MaxPageSize        = 200
	DefaultTimeout     = 15 * time.Second
	DefaultRetryMax    = 3
	DefaultRatePerSec  = 1.0
	DefaultBurst       = 15
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "console"
	configFileName     = "config.yaml"
	logFileName        = "feedline.log"
	cacheDirName       = "cache"
	supportedVersions  = "^1"
	configDirPerm      = 0o700
	configFilePerm     = 0o600
	homeDirName        = ".feedline"
	envHome            = "FEEDLINE_HOME"
	envConfig          = "FEEDLINE_CONFIG"
	envToken           = "FEEDLINE_TOKEN"
	envAPIURL          = "FEEDLINE_API_URL"
	envLogLevel        = "FEEDLINE_LOG_LEVEL"
	envWindowSize      = "FEEDLINE_WINDOW_SIZE"
	envCacheTTL        = "FEEDLINE_CACHE_TTL"
	redactedTokenValue = "********"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the whole configuration file.
type Config struct {
	Version  string         `yaml:"version"`
	API      APIConfig      `yaml:"api"`
	Timeline TimelineConfig `yaml:"timeline"`
	Columns  []ColumnConfig `yaml:"columns"`
	Cache    CacheConfig    `yaml:"cache"`
	Logging  LoggingConfig  `yaml:"logging"`

	// path is where the config was loaded from, "" for pure defaults.
	path string
}

// APIConfig configures the HTTP provider.
type APIConfig struct {
	BaseURL    string        `yaml:"base_url"`
	Token      string        `yaml:"token,omitempty"`
	PageSize   int           `yaml:"page_size"`
	Timeout    time.Duration `yaml:"timeout"`
	RetryMax   int           `yaml:"retry_max"`
	RatePerSec float64       `yaml:"rate_per_sec"`
	Burst      int           `yaml:"burst"`
}

// TimelineConfig holds presentation defaults shared by every column.
type TimelineConfig struct {
	WindowSize int `yaml:"window_size"`
}

// ColumnConfig declares one column.
type ColumnConfig struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	ListID string `yaml:"list_id,omitempty"`
	Query  string `yaml:"query,omitempty"`
}

// Kind parses the column type.
func (c ColumnConfig) Kind() (timeline.Kind, error) {
	return timeline.ParseKind(c.Type)
}

// CacheConfig configures the older-page cache.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Dir        string `yaml:"dir,omitempty"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// LoggingConfig configures zerolog output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		API: APIConfig{
			BaseURL:    DefaultBaseURL,
			PageSize:   DefaultPageSize,
			Timeout:    DefaultTimeout,
			RetryMax:   DefaultRetryMax,
			RatePerSec: DefaultRatePerSec,
			Burst:      DefaultBurst,
		},
		Timeline: TimelineConfig{WindowSize: feed.DefaultWindowSize},
		Columns:  DefaultColumns(),
		Cache:    CacheConfig{Enabled: true, TTLSeconds: cache.DefaultTTLSeconds},
		Logging:  LoggingConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// DefaultColumns returns the Home and Mentions columns.
func DefaultColumns() []ColumnConfig {
	return []ColumnConfig{
		{Name: "Home", Type: timeline.KindHome.String()},
		{Name: "Mentions", Type: timeline.KindMentions.String()},
	}
}

// ResolvePath returns the config file to use and whether it was named
// explicitly, by argument or FEEDLINE_CONFIG, rather than defaulted.
func ResolvePath(path string) (string, bool, error) {
	if path != "" {
		return path, true, nil
	}
	if env := os.Getenv(envConfig); env != "" {
		return env, true, nil
	}
	p, err := DefaultPath()
	if err != nil {
		return "", false, err
	}
	return p, false, nil
}

// Load reads path over the defaults. An empty path means FEEDLINE_CONFIG or
// the default location, where a missing file is not an error. Environment
// overrides are applied last. Load does not validate.
func Load(path string) (*Config, error) {
	path, explicit, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	cfg.path = path

	switch _, err := os.Stat(path); {
	case err == nil:
		if err := ShallowMergeYAML(cfg, path); err != nil {
			return nil, err
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string { return c.path }

// applyDefaults fills fields left zero by a section that replaced its default.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	if c.API.PageSize == 0 {
		c.API.PageSize = d.API.PageSize
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = d.API.Timeout
	}
	if c.Timeline.WindowSize == 0 {
		c.Timeline.WindowSize = d.Timeline.WindowSize
	}
	if len(c.Columns) == 0 {
		c.Columns = d.Columns
	}
	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = d.Cache.TTLSeconds
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = d.Logging.Format
	}
}

// Validate reports every problem in the configuration. Each error wraps
// ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}

	if v, err := semver.NewVersion(c.Version); err != nil {
		add("version %q is not a semantic version", c.Version)
	} else if constraint, _ := semver.NewConstraint(supportedVersions); !constraint.Check(v) {
		add("version %s is not supported (want %s)", c.Version, supportedVersions)
	}

	if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		add("api.base_url %q is not an absolute URL", c.API.BaseURL)
	}
	if c.API.PageSize < 1 || c.API.PageSize > MaxPageSize {
		add("api.page_size must be between 1 and %d, got %d", MaxPageSize, c.API.PageSize)
	}
	if c.API.Timeout < 0 {
		add("api.timeout must not be negative")
	}
	if c.API.RetryMax < 0 {
		add("api.retry_max must not be negative")
	}
	if c.API.RatePerSec < 0 || c.API.Burst < 0 {
		add("api.rate_per_sec and api.burst must not be negative")
	}

	if w := c.Timeline.WindowSize; w < feed.MinWindowSize || w > feed.MaxWindowSize {
		add("timeline.window_size must be between %d and %d, got %d", feed.MinWindowSize, feed.MaxWindowSize, w)
	}

	if len(c.Columns) == 0 {
		add("at least one column is required")
	}
	seen := make(map[string]bool, len(c.Columns))
	for i, col := range c.Columns {
		if col.Name == "" {
			add("columns[%d]: name is required", i)
		} else if seen[col.Name] {
			add("columns[%d]: duplicate name %q", i, col.Name)
		}
		seen[col.Name] = true

		kind, err := col.Kind()
		switch {
		case err != nil:
			add("columns[%d]: %v", i, err)
		case kind == timeline.KindList && col.ListID == "":
			add("columns[%d]: list column %q needs list_id", i, col.Name)
		case kind == timeline.KindSearch && col.Query == "":
			add("columns[%d]: search column %q needs query", i, col.Name)
		}
	}

	if c.Cache.Enabled {
		if err := cache.ValidateTTL(c.Cache.TTLSeconds); err != nil {
			add("cache.ttl_seconds: %v", err)
		}
	}

	if err := c.Logging.validate(); err != nil {
		add("%v", err)
	}

	return errors.Join(errs...)
}

// Save writes the config as YAML to path, creating its directory.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), configDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, configFilePerm); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	c.path = path
	return nil
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() *Config {
	out := *c
	out.Columns = append([]ColumnConfig(nil), c.Columns...)
	if out.API.Token != "" {
		out.API.Token = redactedTokenValue
	}
	return &out
}

// CacheDir returns the configured cache directory or the default one.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, cacheDirName), nil
}

// Dir returns the feedline home directory: FEEDLINE_HOME or ~/.feedline.
func Dir() (string, error) {
	if home := os.Getenv(envHome); home != "" {
		return home, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(userHome, homeDirName), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

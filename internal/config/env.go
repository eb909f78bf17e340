package config

import (
	"fmt"
	"strconv"

	"github.com/rshade/feedline/internal/cache"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overlays FEEDLINE_* environment variables onto c.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if v, ok := lookup(envToken); ok && v != "" {
		c.API.Token = v
	}
	if v, ok := lookup(envAPIURL); ok && v != "" {
		c.API.BaseURL = v
	}
	if v, ok := lookup(envLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookup(envWindowSize); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, envWindowSize, v)
		}
		c.Timeline.WindowSize = n
	}
	if v, ok := lookup(envCacheTTL); ok && v != "" {
		seconds, err := cache.ParseTTL(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, envCacheTTL, v, err)
		}
		c.Cache.TTLSeconds = seconds
	}
	return nil
}

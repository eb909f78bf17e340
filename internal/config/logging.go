package config

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/rshade/feedline/internal/logging"
)

func (lc LoggingConfig) validate() error {
	if lc.Level != "" {
		if _, err := zerolog.ParseLevel(lc.Level); err != nil {
			return fmt.Errorf("logging.level %q is not a valid level", lc.Level)
		}
	}
	switch lc.Format {
	case "", logging.FormatConsole, logging.FormatJSON:
		return nil
	default:
		return fmt.Errorf("logging.format must be %q or %q, got %q", logging.FormatConsole, logging.FormatJSON, lc.Format)
	}
}

// ToLoggingConfig converts the section for the logging package. A set File
// selects file output; otherwise logs go to stderr.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	out := logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: logging.OutputStderr,
	}
	if lc.File != "" {
		out.Output = logging.OutputFile
		out.File = lc.File
	}
	return out
}

// InteractiveLoggingConfig is ToLoggingConfig for full-screen mode, where
// stderr belongs to the terminal UI. Without a configured file it logs to
// feedline.log in the home directory.
func (c *Config) InteractiveLoggingConfig() (logging.Config, error) {
	out := c.Logging.ToLoggingConfig()
	if out.Output == logging.OutputFile {
		return out, nil
	}
	dir, err := Dir()
	if err != nil {
		return out, err
	}
	out.Output = logging.OutputFile
	out.File = filepath.Join(dir, logFileName)
	return out, nil
}

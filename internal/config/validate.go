package config

import "fmt"

var validFormats = map[string]bool{
	"json": true,
	"yaml": true,
}

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

var validLogFormats = map[string]bool{
	"text": true,
	"json": true,
}

// Validate checks the config for invalid values and returns all errors
// found. Dangerous zero-values are clamped to safe defaults instead of
// failing so a partial config file still produces a report.
func (c *Config) Validate() []error {
	var errs []error

	if !validFormats[c.Format] {
		errs = append(errs, fmt.Errorf("format must be json or yaml, got %q", c.Format))
	}

	if c.LogLevel != "" && !validLogLevels[c.LogLevel] {
		errs = append(errs, fmt.Errorf("log_level %q is not one of debug/info/warn/error", c.LogLevel))
	}

	if c.LogFormat != "" && !validLogFormats[c.LogFormat] {
		errs = append(errs, fmt.Errorf("log_format %q is not one of text/json", c.LogFormat))
	}

	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = Default().TimeoutSeconds
	}

	return errs
}

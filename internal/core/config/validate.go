package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/hay-kot/criterio"
)

// ValidateDeep performs comprehensive validation of the configuration.
// Unlike Validate(), this resolves the base URL, checks file access, and
// reports every problem at once as criterio field errors.
func (c *Config) ValidateDeep(configPath string) error {
	var errs criterio.FieldErrorsBuilder

	errs = c.validateBaseURL(errs)
	errs = c.validateFileAccess(errs, configPath)
	errs = c.validateKeybindings(errs)

	return errs.ToError()
}

func (c *Config) validateBaseURL(errs criterio.FieldErrorsBuilder) criterio.FieldErrorsBuilder {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return errs.Append("base_url", fmt.Errorf("not a valid URL: %w", err))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		errs = errs.Append("base_url", fmt.Errorf("scheme must be http or https, got %q", u.Scheme))
	}
	if u.Host == "" {
		errs = errs.Append("base_url", fmt.Errorf("missing host"))
	}
	if u.Path != "" && u.Path != "/" {
		errs = errs.Append("base_url", fmt.Errorf("must not include a path, got %q", u.Path))
	}
	return errs
}

func (c *Config) validateFileAccess(errs criterio.FieldErrorsBuilder, configPath string) criterio.FieldErrorsBuilder {
	if configPath != "" {
		if info, err := os.Stat(configPath); err == nil && info.IsDir() {
			errs = errs.Append("config", fmt.Errorf("%s is a directory, not a file", configPath))
		}
	}

	if c.DataDir == "" {
		return errs.Append("data_dir", fmt.Errorf("cannot be empty"))
	}
	if info, err := os.Stat(c.DataDir); err == nil && !info.IsDir() {
		errs = errs.Append("data_dir", fmt.Errorf("%s is a file, not a directory", c.DataDir))
	}
	return errs
}

func (c *Config) validateKeybindings(errs criterio.FieldErrorsBuilder) criterio.FieldErrorsBuilder {
	for key, kb := range c.Keybindings {
		field := fmt.Sprintf("keybindings.%s", key)
		if kb.Action == "" {
			errs = errs.Append(field, fmt.Errorf("action is required"))
			continue
		}
		if !isValidAction(kb.Action) {
			errs = errs.Append(field, fmt.Errorf("unknown action %q", kb.Action))
		}
	}
	return errs
}

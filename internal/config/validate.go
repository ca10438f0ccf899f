package config

import (
	"errors"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"unscramble/internal/features"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSort(); err != nil {
		return err
	}
	if err := c.validateEmbeddings(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSort() error {
	if c.Sort.LexicalThreshold < 0 || c.Sort.LexicalThreshold > 1 {
		return errors.New("sort.lexical_threshold must be between 0 and 1")
	}
	if c.Sort.SemanticThreshold < 0 || c.Sort.SemanticThreshold > 1 {
		return errors.New("sort.semantic_threshold must be between 0 and 1")
	}
	if c.Sort.Workers < 0 {
		return errors.New("sort.workers must be zero or positive")
	}
	if !features.SupportsLanguage(c.Sort.StopWordLanguage) {
		return fmt.Errorf("sort.stop_word_language: no stop-word list for %q", c.Sort.StopWordLanguage)
	}
	for _, pattern := range c.Sort.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("sort.exclude: invalid pattern %q", pattern)
		}
	}
	return nil
}

func (c *Config) validateEmbeddings() error {
	if c.Embeddings.MaxWords < 0 {
		return errors.New("embeddings.max_words must be zero or positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSort()
	if err := c.normalizeEmbeddings(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv(envStateDir); ok && strings.TrimSpace(value) != "" {
		c.Paths.StateDir = value
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	var err error
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSort() {
	c.Sort.StopWordLanguage = strings.ToLower(strings.TrimSpace(c.Sort.StopWordLanguage))
	if c.Sort.StopWordLanguage == "" {
		c.Sort.StopWordLanguage = defaultStopWordLanguage
	}
	patterns := make([]string, 0, len(c.Sort.Exclude))
	seen := make(map[string]struct{}, len(c.Sort.Exclude))
	for _, pattern := range c.Sort.Exclude {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if _, dup := seen[pattern]; dup {
			continue
		}
		seen[pattern] = struct{}{}
		patterns = append(patterns, pattern)
	}
	c.Sort.Exclude = patterns
}

func (c *Config) normalizeEmbeddings() error {
	if strings.TrimSpace(c.Embeddings.VectorsPath) == "" {
		if value, ok := os.LookupEnv(envVectorsPath); ok {
			c.Embeddings.VectorsPath = value
		}
	}
	var err error
	if c.Embeddings.VectorsPath, err = expandPath(strings.TrimSpace(c.Embeddings.VectorsPath)); err != nil {
		return fmt.Errorf("embeddings.vectors_path: %w", err)
	}
	if c.Embeddings.StorePath, err = expandPath(strings.TrimSpace(c.Embeddings.StorePath)); err != nil {
		return fmt.Errorf("embeddings.store_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	if value, ok := os.LookupEnv(envLogLevel); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}

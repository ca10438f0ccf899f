package testsupport

import (
	"path/filepath"
	"testing"

	"unscramble/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with a unique temp state directory per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Sort.Workers = 2

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithVectors writes vecText as a fastText file under the test base directory
// and points embeddings.vectors_path at it.
func WithVectors(vecText string) ConfigOption {
	return func(b *configBuilder) {
		path := filepath.Join(b.baseDir, "vectors.vec")
		WriteText(b.t, path, vecText)
		b.cfg.Embeddings.VectorsPath = path
	}
}

// WithExclude replaces the exclude patterns.
func WithExclude(patterns ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sort.Exclude = patterns
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}

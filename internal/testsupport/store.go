package testsupport

import (
	"context"
	"strings"
	"testing"

	"unscramble/internal/config"
	"unscramble/internal/embedding"
	"unscramble/internal/logging"
)

// MustImportVectors builds the SQLite vector store for cfg from vecText and
// returns it open. The store is closed on cleanup.
func MustImportVectors(t testing.TB, cfg *config.Config, vecText string) *embedding.Store {
	t.Helper()

	ctx := context.Background()
	store, err := embedding.Create(ctx, cfg.VectorStorePath(), logging.NewNop())
	if err != nil {
		t.Fatalf("embedding.Create: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	if _, err := store.Import(ctx, strings.NewReader(vecText), "test", 0); err != nil {
		t.Fatalf("import vectors: %v", err)
	}
	return store
}

// SampleVectors is a tiny three-dimensional vocabulary where budget and
// invoice point the same way and holiday points elsewhere.
const SampleVectors = `4 3
budget 1 0 0
invoice 0.9 0.1 0
holiday 0 0 1
beach 0 0.1 0.95
`

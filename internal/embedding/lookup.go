package embedding

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// ErrUnavailable indicates no vector source could be opened.
var ErrUnavailable = errors.New("word vectors unavailable")

// Provider resolves tokens to vectors and releases its backing resources on Close.
type Provider interface {
	Lookup(token string) ([]float32, bool)
	Dim() int
	Close() error
}

// Source names the places Open may load vectors from.
type Source struct {
	// StorePath is a SQLite store produced by Store.Import. Preferred when present.
	StorePath string
	// VectorsPath is a fastText text file read into memory when no store exists.
	VectorsPath string
	// MaxWords caps how many words are read from VectorsPath. Zero reads all.
	MaxWords int
}

// Open returns the first usable provider: the SQLite store if it exists and
// holds vectors, otherwise the text file loaded into memory.
func Open(ctx context.Context, src Source) (Provider, error) {
	storePath := strings.TrimSpace(src.StorePath)
	if storePath != "" {
		store, err := OpenExisting(ctx, storePath)
		if err == nil {
			return store, nil
		}
		if !errors.Is(err, ErrUnavailable) {
			return nil, err
		}
	}

	vectorsPath := strings.TrimSpace(src.VectorsPath)
	if vectorsPath == "" {
		return nil, fmt.Errorf("%w: no vector store at %q and no vectors file configured", ErrUnavailable, storePath)
	}
	file, err := os.Open(vectorsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: vectors file %q not found", ErrUnavailable, vectorsPath)
		}
		return nil, fmt.Errorf("%w: open vectors file: %w", ErrUnavailable, err)
	}
	defer file.Close()

	table, err := ReadText(file, src.MaxWords)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrUnavailable, vectorsPath, err)
	}
	if table.Len() == 0 {
		return nil, fmt.Errorf("%w: %s contains no vectors", ErrUnavailable, vectorsPath)
	}
	return table, nil
}

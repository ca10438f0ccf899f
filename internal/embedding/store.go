package embedding

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"unscramble/internal/logging"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped whenever schema.sql changes; older stores must be re-imported.
const schemaVersion = 1

// ErrSchemaMismatch indicates the store was written by an incompatible version.
var ErrSchemaMismatch = errors.New("vector store schema version mismatch")

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
	importBatchSize         = 10000
)

// Store is a SQLite-backed vector space. Lookups are cached in memory for the
// lifetime of the store, including misses.
type Store struct {
	db     *sql.DB
	path   string
	dim    int
	logger *slog.Logger

	lookupStmt *sql.Stmt
	cache      sync.Map // token -> []float32 (nil for a miss)
	batchSize  int
}

// ImportStats reports the outcome of Store.Import.
type ImportStats struct {
	ScanStats
	Duration time.Duration
}

// Create opens the store at path for writing, creating the file and schema
// when missing.
func Create(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create vector store directory: %w", err)
		}
	}
	return open(ctx, path, logger, true)
}

// OpenExisting opens a store that must already exist and contain vectors.
// Missing or empty stores yield ErrUnavailable.
func OpenExisting(ctx context.Context, path string) (*Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: vector store %q not found", ErrUnavailable, path)
		}
		return nil, fmt.Errorf("%w: stat vector store: %w", ErrUnavailable, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: vector store %q is a directory", ErrUnavailable, path)
	}
	store, err := open(ctx, path, nil, false)
	if err != nil {
		return nil, err
	}
	if store.dim == 0 {
		_ = store.Close()
		return nil, fmt.Errorf("%w: vector store %q is empty; run 'unscramble embeddings import'", ErrUnavailable, path)
	}
	return store, nil
}

// open connects to the database at path. With create set the schema is
// written when missing and the journal switched to WAL; otherwise a database
// without the vector schema is reported as ErrUnavailable and left untouched.
func open(ctx context.Context, path string, logger *slog.Logger, create bool) (*Store, error) {
	ctx = ensureContext(ctx)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{"PRAGMA busy_timeout = 5000"}
	if create {
		pragmas = append(pragmas, "PRAGMA journal_mode=WAL", "PRAGMA synchronous = NORMAL")
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:        db,
		path:      path,
		logger:    logging.NewComponentLogger(logger, "vector-store"),
		batchSize: importBatchSize,
	}
	if err := store.initSchema(ctx, create); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := store.loadDim(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	store.lookupStmt, err = db.PrepareContext(ctx, "SELECT vec FROM vectors WHERE token = ?")
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("prepare lookup: %w", err)
	}
	return store, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Dim returns the vector dimension recorded by the last import, or zero.
func (s *Store) Dim() int { return s.dim }

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	if s.lookupStmt != nil {
		_ = s.lookupStmt.Close()
	}
	return s.db.Close()
}

// Count returns the number of stored words.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ensureContext(ctx), "SELECT COUNT(1) FROM vectors").Scan(&n); err != nil {
		return 0, fmt.Errorf("count vectors: %w", err)
	}
	return n, nil
}

// Lookup returns the vector stored for token. Query errors are logged and
// reported as a miss.
func (s *Store) Lookup(token string) ([]float32, bool) {
	if cached, ok := s.cache.Load(token); ok {
		vec := cached.([]float32)
		return vec, vec != nil
	}
	var blob []byte
	err := s.lookupStmt.QueryRow(token).Scan(&blob)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		s.cache.Store(token, []float32(nil))
		return nil, false
	case err != nil:
		s.logger.Debug("vector lookup failed", logging.String("token", token), logging.Error(err))
		return nil, false
	}
	vec, err := decodeVector(blob, s.dim)
	if err != nil {
		s.logger.Debug("vector decode failed", logging.String("token", token), logging.Error(err))
		s.cache.Store(token, []float32(nil))
		return nil, false
	}
	s.cache.Store(token, vec)
	return vec, true
}

// Import replaces the store contents with the vectors read from r. Batches
// commit as they fill; the first batch also drops the recorded dimension, so
// an import that fails part way leaves a store that OpenExisting reports as
// empty rather than a mix of old metadata and new vectors.
func (s *Store) Import(ctx context.Context, r io.Reader, source string, maxWords int) (ImportStats, error) {
	ctx = ensureContext(ctx)
	started := time.Now()
	batchSize := s.batchSize
	if batchSize <= 0 {
		batchSize = importBatchSize
	}

	var (
		tx   *sql.Tx
		stmt *sql.Stmt
	)
	begin := func() error {
		next, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin import tx: %w", err)
		}
		prepared, err := next.PrepareContext(ctx, "INSERT OR IGNORE INTO vectors (token, vec) VALUES (?, ?)")
		if err != nil {
			_ = next.Rollback()
			return fmt.Errorf("prepare insert: %w", err)
		}
		tx, stmt = next, prepared
		return nil
	}
	commit := func() error {
		_ = stmt.Close()
		err := tx.Commit()
		tx, stmt = nil, nil
		if err != nil {
			return fmt.Errorf("commit import batch: %w", err)
		}
		return nil
	}
	abort := func(stats ScanStats, err error) (ImportStats, error) {
		if stmt != nil {
			_ = stmt.Close()
		}
		if tx != nil {
			_ = tx.Rollback()
		}
		tx, stmt = nil, nil
		if dimErr := s.loadDim(context.WithoutCancel(ctx)); dimErr != nil {
			s.dim = 0
		}
		s.cache.Clear()
		return ImportStats{ScanStats: stats}, err
	}

	if err := begin(); err != nil {
		return abort(ScanStats{}, err)
	}
	for _, query := range []string{"DELETE FROM vectors", "DELETE FROM meta WHERE key = 'dim'"} {
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return abort(ScanStats{}, fmt.Errorf("clear store: %w", err))
		}
	}

	pending := 0
	stats, err := ScanText(r, maxWords, func(word string, vec []float32) error {
		if _, err := stmt.ExecContext(ctx, word, encodeVector(vec)); err != nil {
			return fmt.Errorf("insert %q: %w", word, err)
		}
		pending++
		if pending < batchSize {
			return nil
		}
		pending = 0
		if err := commit(); err != nil {
			return err
		}
		return begin()
	})
	if err != nil {
		return abort(stats, err)
	}
	if err := commit(); err != nil {
		return abort(stats, err)
	}

	if err := s.setMeta(ctx, map[string]string{
		"dim":         strconv.Itoa(stats.Dim),
		"source":      source,
		"imported_at": time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		return abort(stats, err)
	}
	s.dim = stats.Dim
	s.cache.Clear()

	result := ImportStats{ScanStats: stats, Duration: time.Since(started)}
	s.logger.Info("vector import complete",
		logging.String("source", source),
		logging.Int("words", stats.Words),
		logging.Int("skipped", stats.Skipped),
		logging.Int("dim", stats.Dim),
		logging.Duration("duration", result.Duration),
	)
	return result, nil
}

// Meta returns a metadata value written by Import.
func (s *Store) Meta(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ensureContext(ctx), "SELECT value FROM meta WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read meta %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) setMeta(ctx context.Context, values map[string]string) error {
	for key, value := range values {
		if err := s.execWithRetry(ctx,
			"INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
			key, value,
		); err != nil {
			return fmt.Errorf("write meta %s: %w", key, err)
		}
	}
	return nil
}

func (s *Store) loadDim(ctx context.Context) error {
	raw, err := s.Meta(ctx, "dim")
	if err != nil {
		return err
	}
	if strings.TrimSpace(raw) == "" {
		s.dim = 0
		return nil
	}
	dim, err := strconv.Atoi(raw)
	if err != nil || dim < 0 {
		return fmt.Errorf("vector store %q has invalid dimension %q", s.path, raw)
	}
	s.dim = dim
	return nil
}

func (s *Store) initSchema(ctx context.Context, create bool) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if !create {
			return fmt.Errorf("%w: %q is not a vector store; run 'unscramble embeddings import'", ErrUnavailable, s.path)
		}
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: store has version %d, expected %d (delete %s and re-import)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) error {
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	})
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func decodeVector(blob []byte, dim int) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("vector blob length %d is not a multiple of 4", len(blob))
	}
	n := len(blob) / 4
	if dim > 0 && n != dim {
		return nil, fmt.Errorf("vector has %d values, store dimension is %d", n, dim)
	}
	vec := make([]float32, n)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return vec, nil
}

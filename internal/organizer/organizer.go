package organizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"unscramble/internal/cluster"
	"unscramble/internal/config"
	"unscramble/internal/dirlock"
	"unscramble/internal/embedding"
	"unscramble/internal/failure"
	"unscramble/internal/features"
	"unscramble/internal/logging"
	"unscramble/internal/similarity"
)

// Options describes one sort invocation.
type Options struct {
	Path      string
	Mode      Mode
	Recursive bool
	// DryRun plans groups without creating directories or moving files.
	DryRun bool
	// Threshold overrides the configured threshold for the mode when set.
	Threshold *float64
}

// Mover is the filesystem capability a sort run relocates files through.
// EnsureDir must succeed when the directory already exists. Move must refuse
// to overwrite an existing destination.
type Mover interface {
	EnsureDir(dir string) error
	Move(src, dstDir string) (string, error)
}

// Sorter runs sort operations against one configuration.
type Sorter struct {
	cfg     *config.Config
	base    *slog.Logger
	logger  *slog.Logger
	mover   Mover
	vectors similarity.VectorLookup
}

// Option customizes a Sorter.
type Option func(*Sorter)

// WithMover replaces the filesystem mover.
func WithMover(m Mover) Option {
	return func(s *Sorter) {
		if m != nil {
			s.mover = m
		}
	}
}

// WithVectors supplies the word vectors used in semantic mode instead of
// opening the configured store or vectors file.
func WithVectors(v similarity.VectorLookup) Option {
	return func(s *Sorter) { s.vectors = v }
}

// New constructs a Sorter.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Sorter {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	s := &Sorter{
		cfg:    cfg,
		base:   logger,
		logger: logging.NewComponentLogger(logger, "organizer"),
		mover:  fsMover{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sort groups the files under opts.Path. The returned error covers failures
// that stopped the run before or between directories; per-file move failures
// are only reported through Report.Err.
func (s *Sorter) Sort(ctx context.Context, opts Options) (*Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	root, err := validateRoot(opts.Path)
	if err != nil {
		return nil, err
	}
	mode := opts.Mode
	if mode == "" {
		mode = ModeLexical
	}

	threshold := s.cfg.Threshold(mode.String())
	if opts.Threshold != nil {
		threshold = *opts.Threshold
	}
	if mode.UsesSimilarity() && (threshold < 0 || threshold > 1) {
		return nil, failure.Wrap(failure.ErrConfiguration, "sort", "threshold", fmt.Sprintf("threshold %v outside [0,1]", threshold), nil)
	}

	runID, ok := logging.RunIDFromContext(ctx)
	if !ok {
		runID = uuid.NewString()
		ctx = logging.WithRunID(ctx, runID)
	}
	ctx = logging.WithMode(ctx, mode.String())
	logger := logging.WithContext(ctx, s.logger)

	pass := &run{
		sorter: s,
		opts:   opts,
		mode:   mode,
		root:   root,
		report: &Report{
			RunID:     runID,
			Root:      root,
			Mode:      mode,
			Threshold: threshold,
			DryRun:    opts.DryRun,
		},
	}

	if mode.UsesSimilarity() {
		extractor, err := features.NewExtractor(s.cfg.Sort.StopWordLanguage)
		if err != nil {
			return nil, failure.Wrap(failure.ErrConfiguration, "sort", "stop words", "", err)
		}
		pass.extractor = extractor

		scorer := similarity.Scorer(similarity.LexicalScorer{})
		if mode == ModeSemantic {
			vectors, release, err := s.openVectors(ctx)
			if err != nil {
				logging.ErrorWithContext(logger, "word vectors unavailable", "lookup_unavailable",
					logging.String(logging.FieldErrorHint, "run 'unscramble embeddings import' or set embeddings.vectors_path"),
					logging.Error(err),
				)
				return nil, err
			}
			defer release()
			scorer = similarity.SemanticScorer{Vectors: vectors}
		}
		pass.engine = cluster.NewEngine(scorer, threshold, logging.WithContext(ctx, s.base))
	}

	// Dry runs write nothing, not even the lock file in the state directory.
	if !opts.DryRun {
		lock, err := dirlock.Acquire(s.cfg.LockDir(), root)
		if err != nil {
			return nil, failure.Wrap(failure.ErrIO, "sort", "lock directory", root, err)
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn("lock release failed", logging.Error(err))
			}
		}()
	}

	logger.Info("sort started",
		logging.String("path", root),
		logging.Bool("recursive", opts.Recursive),
		logging.Bool("dry_run", opts.DryRun),
		logging.Float64("threshold", threshold),
	)
	started := time.Now()

	if err := pass.sortDir(ctx, root); err != nil {
		pass.report.sortResults()
		return pass.report, err
	}
	pass.report.sortResults()

	report := pass.report
	report.Empty = report.Files() == 0
	if report.Empty {
		logger.Info("no files to sort", logging.String("path", root))
	}

	logger.Info("sort complete",
		logging.Int("files", report.Files()),
		logging.Int("groups", len(report.Placements)),
		logging.Int("moved", len(report.Moves)),
		logging.Int("failed", len(report.Failures)),
		logging.Duration("extract", report.Timings.Extract),
		logging.Duration("cluster", report.Timings.Cluster),
		logging.Duration("move", report.Timings.Move),
		logging.Duration("elapsed", time.Since(started)),
	)
	return report, nil
}

func (s *Sorter) openVectors(ctx context.Context) (similarity.VectorLookup, func(), error) {
	if s.vectors != nil {
		return s.vectors, func() {}, nil
	}
	started := time.Now()
	provider, err := embedding.Open(ctx, embedding.Source{
		StorePath:   s.cfg.VectorStorePath(),
		VectorsPath: s.cfg.Embeddings.VectorsPath,
		MaxWords:    s.cfg.Embeddings.MaxWords,
	})
	if err != nil {
		return nil, nil, failure.Wrap(failure.ErrLookupUnavailable, "sort", "open word vectors", "", err)
	}
	s.logger.Info("word vectors loaded",
		logging.Int("dim", provider.Dim()),
		logging.Duration("elapsed", time.Since(started)),
	)
	release := func() {
		if err := provider.Close(); err != nil {
			s.logger.Warn("closing word vectors failed", logging.Error(err))
		}
	}
	return provider, release, nil
}

func validateRoot(path string) (string, error) {
	if path == "" {
		return "", failure.Wrap(failure.ErrInvalidPath, "sort", "validate path", "no path given", nil)
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return "", failure.Wrap(failure.ErrInvalidPath, "sort", "validate path", path, err)
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", failure.Wrap(failure.ErrInvalidPath, "sort", "validate path", expanded+" does not exist", nil)
		}
		return "", failure.Wrap(failure.ErrInvalidPath, "sort", "validate path", expanded, err)
	}
	if !info.IsDir() {
		return "", failure.Wrap(failure.ErrInvalidPath, "sort", "validate path", expanded+" is not a directory", nil)
	}
	return filepath.Clean(expanded), nil
}

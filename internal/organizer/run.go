package organizer

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"unscramble/internal/cluster"
	"unscramble/internal/extsort"
	"unscramble/internal/failure"
	"unscramble/internal/features"
	"unscramble/internal/logging"
	"unscramble/internal/textutil"
)

// run carries the state of one Sort call across directories.
type run struct {
	sorter    *Sorter
	opts      Options
	mode      Mode
	root      string
	extractor *features.Extractor
	engine    *cluster.Engine
	report    *Report
}

// listing is the snapshot of one directory taken before anything moves.
type listing struct {
	files   []string
	subdirs []string
	skipped int
}

func (r *run) sortDir(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dirCtx := logging.WithDir(ctx, dir)
	logger := logging.WithContext(dirCtx, r.sorter.logger)

	started := time.Now()
	snap, err := r.scan(dir)
	r.report.Timings.Scan += time.Since(started)
	if err != nil {
		if dir == r.root {
			return err
		}
		logging.WarnWithContext(logger, "directory skipped", "scan_failed",
			logging.String(logging.FieldImpact, "files in this directory were not sorted"),
			logging.String(logging.FieldErrorHint, "check directory permissions"),
			logging.Error(err),
		)
		r.report.addFailure(Failure{Path: dir, Err: err})
		return nil
	}

	// Subdirectories go first: files moved out of dir below may land in one
	// of them and must not be sorted a second time.
	if r.opts.Recursive {
		for _, sub := range snap.subdirs {
			if err := r.sortDir(ctx, sub); err != nil {
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	summary := DirSummary{Dir: dir, Files: len(snap.files)}
	if len(snap.files) == 0 {
		logger.Debug("no files in directory", logging.Int("skipped", snap.skipped))
	} else {
		placements := r.plan(dirCtx, dir, snap.files)
		summary.Groups = len(placements)
		grouped := 0
		for _, p := range placements {
			grouped += len(p.Files)
		}
		summary.Untouched = len(snap.files) - grouped
		r.report.Placements = append(r.report.Placements, placements...)

		if r.opts.DryRun {
			for _, p := range placements {
				logger.Info("would move group",
					logging.String("group", p.Name),
					logging.Int("files", len(p.Files)),
				)
			}
		} else {
			movesBefore, failuresBefore := len(r.report.Moves), len(r.report.Failures)
			started := time.Now()
			r.execute(dirCtx, placements)
			r.report.Timings.Move += time.Since(started)
			summary.Moved = len(r.report.Moves) - movesBefore
			summary.Failed = len(r.report.Failures) - failuresBefore
		}
	}
	r.report.Dirs = append(r.report.Dirs, summary)
	logger.Debug("directory sorted",
		logging.Int("files", summary.Files),
		logging.Int("groups", summary.Groups),
		logging.Int("moved", summary.Moved),
		logging.Int("failed", summary.Failed),
	)
	return nil
}

// scan lists the regular files and subdirectories of dir in name order,
// dropping hidden and excluded entries.
func (r *run) scan(dir string) (listing, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return listing{}, failure.Wrap(failure.ErrIO, "sort", "read directory", dir, err)
	}
	var out listing
	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)
		if r.skip(path, name) {
			out.skipped++
			continue
		}
		switch {
		case entry.IsDir():
			out.subdirs = append(out.subdirs, path)
		case entry.Type().IsRegular():
			out.files = append(out.files, path)
		default:
			out.skipped++
		}
	}
	sort.Strings(out.files)
	sort.Strings(out.subdirs)
	return out, nil
}

func (r *run) skip(path, name string) bool {
	cfg := r.sorter.cfg
	if !cfg.Sort.IncludeHidden && strings.HasPrefix(name, ".") {
		return true
	}
	rel, err := filepath.Rel(r.root, path)
	if err != nil {
		rel = name
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range cfg.Sort.Exclude {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// plan decides where each file of dir goes. Files not named by any placement
// stay in place.
func (r *run) plan(ctx context.Context, dir string, files []string) []Placement {
	if r.mode == ModeExtension {
		groups, _ := extsort.Group(files)
		placements := make([]Placement, 0, len(groups))
		for _, ext := range groups.Keys() {
			placements = append(placements, Placement{
				Dir:   dir,
				Name:  textutil.SanitizeDirName(ext, cluster.FallbackName),
				Files: groups[ext],
			})
		}
		return mergePlacements(placements)
	}

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}

	started := time.Now()
	tokens := r.extractor.ExtractAll(names, r.sorter.cfg.Sort.Workers)
	r.report.Timings.Extract += time.Since(started)

	records := make([]cluster.Record, len(files))
	for i := range files {
		records[i] = cluster.Record{Path: files[i], Name: names[i], Tokens: tokens[i]}
	}
	cluster.SortRecords(records)

	started = time.Now()
	result := r.engine.Cluster(records)
	r.report.Timings.Cluster += time.Since(started)

	logger := logging.WithContext(ctx, r.sorter.logger)
	placements := make([]Placement, 0, len(result.Groups))
	for _, g := range result.Groups {
		if !g.Materialize() {
			continue
		}
		name := textutil.SanitizeDirName(g.Name, cluster.FallbackName)
		paths := make([]string, len(g.Members))
		for i, m := range g.Members {
			paths[i] = m.Path
		}
		logger.Info("group formed",
			logging.String("group", name),
			logging.String("anchor", g.Members[0].Name),
			logging.Int("files", len(paths)),
		)
		placements = append(placements, Placement{Dir: dir, Name: name, Files: paths})
	}
	return mergePlacements(placements)
}

// mergePlacements folds placements that share a destination into the first
// one, keeping anchor order.
func mergePlacements(in []Placement) []Placement {
	index := make(map[string]int, len(in))
	out := make([]Placement, 0, len(in))
	for _, p := range in {
		if i, ok := index[p.Name]; ok {
			out[i].Files = append(out[i].Files, p.Files...)
			continue
		}
		index[p.Name] = len(out)
		out = append(out, p)
	}
	return out
}

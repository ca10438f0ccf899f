package organizer

import (
	"context"
	"path/filepath"
	"runtime"
	"sync"

	"unscramble/internal/failure"
	"unscramble/internal/fileutil"
	"unscramble/internal/logging"
)

type fsMover struct{}

func (fsMover) EnsureDir(dir string) error { return fileutil.EnsureDir(dir) }

func (fsMover) Move(src, dstDir string) (string, error) { return fileutil.MoveFile(src, dstDir) }

// execute moves every placement. Placements have distinct destinations, so
// each runs on its own worker; files within one placement move in order.
func (r *run) execute(ctx context.Context, placements []Placement) {
	if len(placements) == 0 {
		return
	}
	workers := r.sorter.cfg.Sort.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(placements) {
		workers = len(placements)
	}

	jobs := make(chan Placement)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				r.place(ctx, p)
			}
		}()
	}
	for _, p := range placements {
		jobs <- p
	}
	close(jobs)
	wg.Wait()
}

func (r *run) place(ctx context.Context, p Placement) {
	logger := logging.WithContext(ctx, r.sorter.logger).With(logging.String("group", p.Name))
	dest := p.Destination()
	mover := r.sorter.mover

	if err := mover.EnsureDir(dest); err != nil {
		wrapped := failure.Wrap(failure.ErrIO, "sort", "create directory", dest, err)
		logging.WarnWithContext(logger, "group directory could not be created", "mkdir_failed",
			logging.String(logging.FieldImpact, "files in this group were left in place"),
			logging.String(logging.FieldErrorHint, "check permissions, or whether a file already uses the group name"),
			logging.Error(err),
		)
		for _, file := range p.Files {
			r.report.addFailure(Failure{Path: file, Err: wrapped})
		}
		return
	}

	moved := 0
	for _, file := range p.Files {
		if err := ctx.Err(); err != nil {
			r.report.addFailure(Failure{Path: file, Err: failure.Wrap(failure.ErrIO, "sort", "move file", file, err)})
			continue
		}
		target, err := mover.Move(file, dest)
		if err != nil {
			logging.WarnWithContext(logger, "file move failed", "move_failed",
				logging.String("file", filepath.Base(file)),
				logging.String(logging.FieldImpact, "file left in place"),
				logging.String(logging.FieldErrorHint, "check permissions and whether the destination already has a file with this name"),
				logging.Error(err),
			)
			r.report.addFailure(Failure{Path: file, Err: failure.Wrap(failure.ErrIO, "sort", "move file", file, err)})
			continue
		}
		moved++
		r.report.addMove(Move{From: file, To: target, Group: p.Name})
	}
	logger.Info("group moved",
		logging.String("destination", dest),
		logging.Int("moved", moved),
		logging.Int("files", len(p.Files)),
	)
}

package organizer

import (
	"errors"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Move records one relocated file.
type Move struct {
	From  string
	To    string
	Group string
}

// Failure records one file that could not be moved. Err carries a
// failure.ErrIO marker.
type Failure struct {
	Path string
	Err  error
}

func (f Failure) Error() string { return f.Err.Error() }

func (f Failure) Unwrap() error { return f.Err }

// Placement is a planned destination for a set of files.
type Placement struct {
	Dir   string
	Name  string
	Files []string
}

// Destination is the directory the placement's files move into.
func (p Placement) Destination() string { return filepath.Join(p.Dir, p.Name) }

// DirSummary describes the work done in one directory.
type DirSummary struct {
	Dir       string
	Files     int
	Groups    int
	Moved     int
	Failed    int
	Untouched int
}

// Timings are phase durations summed over every directory of a run.
type Timings struct {
	Scan    time.Duration
	Extract time.Duration
	Cluster time.Duration
	Move    time.Duration
}

// Report is the outcome of one Sort call.
type Report struct {
	RunID     string
	Root      string
	Mode      Mode
	Threshold float64
	DryRun    bool

	Dirs       []DirSummary
	Placements []Placement
	Moves      []Move
	Failures   []Failure
	Timings    Timings

	// Empty is set when no candidate files were found anywhere under Root.
	Empty bool

	mu sync.Mutex
}

func (r *Report) addMove(m Move) {
	r.mu.Lock()
	r.Moves = append(r.Moves, m)
	r.mu.Unlock()
}

func (r *Report) addFailure(f Failure) {
	r.mu.Lock()
	r.Failures = append(r.Failures, f)
	r.mu.Unlock()
}

// Files is the number of candidate files seen across all directories.
func (r *Report) Files() int {
	total := 0
	for _, d := range r.Dirs {
		total += d.Files
	}
	return total
}

// Err joins every per-file failure, or returns nil when all moves succeeded.
func (r *Report) Err() error {
	if r == nil || len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}

// sortResults puts moves and failures in path order; they are appended from
// concurrent workers.
func (r *Report) sortResults() {
	sort.Slice(r.Moves, func(i, j int) bool { return r.Moves[i].From < r.Moves[j].From })
	sort.Slice(r.Failures, func(i, j int) bool { return r.Failures[i].Path < r.Failures[j].Path })
}

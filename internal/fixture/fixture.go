// Package fixture builds and tears down directories of plausibly named files
// for trying out and testing sort modes.
package fixture

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Options controls Populate.
type Options struct {
	// Count is the number of files written at the top level.
	Count int
	// Seed makes the generated names reproducible.
	Seed uint64
	// Subdirs is the number of subdirectories, each receiving Count/4 files.
	Subdirs int
}

// DefaultCount is used when Options.Count is zero.
const DefaultCount = 40

// Populate writes generated files into dir, creating it if needed, and returns
// the written paths in sorted order. Existing files are never overwritten.
func Populate(dir string, opts Options) ([]string, error) {
	if opts.Count <= 0 {
		opts.Count = DefaultCount
	}
	if opts.Subdirs < 0 {
		opts.Subdirs = 0
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	gen := newGenerator(rng)

	var written []string
	write := func(target string, n int) error {
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", target, err)
		}
		for _, name := range gen.names(n) {
			path := filepath.Join(target, name)
			f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
			if err != nil {
				if errors.Is(err, os.ErrExist) {
					continue
				}
				return fmt.Errorf("create %s: %w", path, err)
			}
			_, werr := fmt.Fprintf(f, "fixture file %s\n", name)
			cerr := f.Close()
			if err := errors.Join(werr, cerr); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			written = append(written, path)
		}
		return nil
	}

	if err := write(dir, opts.Count); err != nil {
		return written, err
	}
	perSub := max(opts.Count/4, 1)
	for i := 1; i <= opts.Subdirs; i++ {
		if err := write(filepath.Join(dir, fmt.Sprintf("subdir%d", i)), perSub); err != nil {
			return written, err
		}
	}
	sort.Strings(written)
	return written, nil
}

// Clear removes every entry inside dir but keeps dir itself. It returns the
// number of top-level entries removed; removal errors are joined.
func Clear(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", dir, err)
	}
	removed := 0
	var errs []error
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	return removed, errors.Join(errs...)
}

type generator struct {
	rng  *rand.Rand
	keys []string
	seen map[string]struct{}
}

func newGenerator(rng *rand.Rand) *generator {
	keys := make([]string, 0, len(categories))
	for k := range categories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &generator{rng: rng, keys: keys, seen: make(map[string]struct{})}
}

// names returns n distinct file names not handed out before by this generator.
func (g *generator) names(n int) []string {
	out := make([]string, 0, n)
	for attempts := 0; len(out) < n && attempts < n*50; attempts++ {
		name := g.name()
		if _, dup := g.seen[name]; dup {
			continue
		}
		g.seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func (g *generator) name() string {
	cat := categories[g.keys[g.rng.IntN(len(g.keys))]]
	stem := g.pick(cat.stems)
	ext := g.pick(cat.extensions)

	var base string
	switch g.rng.IntN(12) {
	case 0:
		base = stem + "_" + g.date()
	case 1:
		base = g.date() + "_" + stem
	case 2:
		base = stem + "_" + g.pick(versions)
	case 3:
		base = g.pick(companies) + "_" + stem
	case 4:
		base = stem + "_" + g.pick(clients)
	case 5:
		base = g.pick(projects) + "_" + stem
	case 6:
		base = fmt.Sprintf("%s_%s_%d", stem, g.pick(months), 2015+g.rng.IntN(11))
	case 7:
		base = fmt.Sprintf("%s_%s_%d", stem, g.pick(quarters), 2015+g.rng.IntN(11))
	case 8:
		base = stem + "_" + g.pick(statuses)
	case 9:
		base = fmt.Sprintf("%s_%04d", stem, 1+g.rng.IntN(9999))
	case 10:
		base = g.pick(owners) + "_" + stem
	default:
		base = stem
	}
	return strings.ToLower(base) + "." + ext
}

func (g *generator) date() string {
	year := 2020 + g.rng.IntN(5)
	month := 1 + g.rng.IntN(12)
	day := 1 + g.rng.IntN(28)
	switch g.rng.IntN(3) {
	case 0:
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	case 1:
		return fmt.Sprintf("%04d%02d%02d", year, month, day)
	default:
		return fmt.Sprintf("%04d_%02d_%02d", year, month, day)
	}
}

func (g *generator) pick(values []string) string {
	return values[g.rng.IntN(len(values))]
}

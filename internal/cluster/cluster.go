package cluster

import (
	"log/slog"
	"sort"

	"unscramble/internal/logging"
	"unscramble/internal/similarity"
)

// FallbackName names groups whose members carry no tokens.
const FallbackName = "misc"

// Record is one file and the tokens derived from its name.
type Record struct {
	Path   string
	Name   string
	Tokens []string
}

// Group is a named set of records. Anchor is always Members[0].
type Group struct {
	Name    string
	Members []Record
}

// Materialize reports whether the group would produce a directory. Singletons
// stay where they are.
func (g Group) Materialize() bool { return len(g.Members) > 1 }

// Result holds the groups of one run in anchor order.
type Result struct {
	Groups []Group
}

// Map returns group name to member paths. Groups that share a name are merged
// in anchor order.
func (r Result) Map() map[string][]string {
	out := make(map[string][]string, len(r.Groups))
	for _, g := range r.Groups {
		for _, m := range g.Members {
			out[g.Name] = append(out[g.Name], m.Path)
		}
	}
	return out
}

// Engine clusters records with one scorer and threshold.
type Engine struct {
	scorer    similarity.Scorer
	threshold float64
	logger    *slog.Logger
}

// NewEngine returns an engine that groups records scoring strictly above threshold.
func NewEngine(scorer similarity.Scorer, threshold float64, logger *slog.Logger) *Engine {
	return &Engine{
		scorer:    scorer,
		threshold: threshold,
		logger:    logging.NewComponentLogger(logger, "cluster"),
	}
}

// SortRecords orders records by name, then path, which is the canonical order
// Cluster expects. Directory listing order is platform dependent.
func SortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Name != records[j].Name {
			return records[i].Name < records[j].Name
		}
		return records[i].Path < records[j].Path
	})
}

// Cluster runs the greedy anchor pass over records, which must already be in
// canonical order. It is not safe to call concurrently on shared records.
func (e *Engine) Cluster(records []Record) Result {
	assigned := make([]bool, len(records))
	groups := make([]Group, 0, len(records))

	for i := range records {
		if assigned[i] {
			continue
		}
		assigned[i] = true
		anchor := records[i]
		members := []Record{anchor}

		for j := i + 1; j < len(records); j++ {
			if assigned[j] {
				continue
			}
			score := e.scorer.Score(anchor.Tokens, records[j].Tokens)
			if score > e.threshold {
				members = append(members, records[j])
				assigned[j] = true
				e.logger.Debug("record joined group",
					logging.String("anchor", anchor.Name),
					logging.String("file", records[j].Name),
					logging.Float64("score", score),
				)
			}
		}

		name := Name(members)
		groups = append(groups, Group{Name: name, Members: members})
		if len(members) > 1 {
			e.logger.Debug("group formed",
				logging.String("group", name),
				logging.String("anchor", anchor.Name),
				logging.Int("members", len(members)),
				logging.String("mode", e.scorer.Mode().String()),
			)
		}
	}
	return Result{Groups: groups}
}

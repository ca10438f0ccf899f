package similarity

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects the scorer used for a clustering run.
type Mode int

const (
	// Lexical compares exact token overlap.
	Lexical Mode = iota
	// Semantic compares word vectors.
	Semantic
)

func (m Mode) String() string {
	switch m {
	case Lexical:
		return "lexical"
	case Semantic:
		return "semantic"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode accepts "lexical"/"jaccard" and "semantic"/"vector".
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "lexical", "jaccard", "":
		return Lexical, nil
	case "semantic", "vector", "embedding":
		return Semantic, nil
	default:
		return Lexical, fmt.Errorf("unknown similarity mode %q", value)
	}
}

// VectorLookup resolves a token to a fixed-length vector.
type VectorLookup interface {
	Lookup(token string) ([]float32, bool)
}

// Scorer compares two token sequences.
type Scorer interface {
	Score(a, b []string) float64
	Mode() Mode
}

// LexicalScorer scores with the Jaccard index.
type LexicalScorer struct{}

// Score implements Scorer.
func (LexicalScorer) Score(a, b []string) float64 { return Jaccard(a, b) }

// Mode implements Scorer.
func (LexicalScorer) Mode() Mode { return Lexical }

// SemanticScorer scores with max-pairwise cosine over looked-up vectors.
type SemanticScorer struct {
	Vectors VectorLookup
}

// Score implements Scorer.
func (s SemanticScorer) Score(a, b []string) float64 { return MaxCosine(a, b, s.Vectors) }

// Mode implements Scorer.
func (SemanticScorer) Mode() Mode { return Semantic }

// Jaccard returns |A∩B| / |A∪B| over the distinct tokens of a and b, or 0
// when both are empty.
func Jaccard(a, b []string) float64 {
	setA := toSet(a)
	setB := toSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}
	shared := 0
	for token := range setA {
		if _, ok := setB[token]; ok {
			shared++
		}
	}
	union := len(setA) + len(setB) - shared
	return float64(shared) / float64(union)
}

// MaxCosine resolves both sides through lookup, dropping tokens without a
// vector, and returns the highest clamped cosine over all cross pairs. Zero
// when either side resolves nothing.
func MaxCosine(a, b []string, lookup VectorLookup) float64 {
	if lookup == nil || len(a) == 0 || len(b) == 0 {
		return 0
	}
	vecsA := resolve(a, lookup)
	if len(vecsA) == 0 {
		return 0
	}
	vecsB := resolve(b, lookup)
	if len(vecsB) == 0 {
		return 0
	}
	best := 0.0
	for _, va := range vecsA {
		for _, vb := range vecsB {
			if sim := Cosine(va, vb); sim > best {
				best = sim
			}
		}
	}
	return best
}

// Cosine returns the cosine similarity of a and b clamped to [0, 1]. Vectors
// of different length, empty vectors, and zero-norm vectors score 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	switch {
	case math.IsNaN(sim), sim < 0:
		return 0
	case sim > 1:
		return 1
	}
	return sim
}

func resolve(tokens []string, lookup VectorLookup) [][]float32 {
	out := make([][]float32, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		if vec, ok := lookup.Lookup(token); ok && len(vec) > 0 {
			out = append(out, vec)
		}
	}
	return out
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}

package similarity

import (
	"math"
	"testing"
)

type fakeVectors map[string][]float32

func (f fakeVectors) Lookup(token string) ([]float32, bool) {
	v, ok := f[token]
	return v, ok
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"both empty", nil, nil, 0},
		{"one empty", []string{"a"}, nil, 0},
		{"identical", []string{"meeting", "notes"}, []string{"meeting", "notes"}, 1},
		{"duplicates collapse", []string{"notes", "notes"}, []string{"notes"}, 1},
		{"half overlap", []string{"a", "b"}, []string{"b", "c"}, 1.0 / 3.0},
		{"disjoint", []string{"readme"}, []string{"config"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Jaccard(tt.a, tt.b)
			if math.IsNaN(got) {
				t.Fatal("Jaccard returned NaN")
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Jaccard(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestJaccardSymmetric(t *testing.T) {
	sets := [][]string{
		nil,
		{"a"},
		{"a", "b", "b"},
		{"b", "c", "d"},
		{"report", "final", "v"},
		{"report", "draft"},
	}
	for _, a := range sets {
		for _, b := range sets {
			if Jaccard(a, b) != Jaccard(b, a) {
				t.Fatalf("Jaccard not symmetric for %v, %v", a, b)
			}
		}
	}
}

func TestJaccardSelfIsOne(t *testing.T) {
	for _, a := range [][]string{{"x"}, {"x", "y"}, {"x", "x", "z"}} {
		if got := Jaccard(a, a); got != 1 {
			t.Fatalf("Jaccard(%v, %v) = %v, want 1", a, a, got)
		}
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite clamps to zero", []float32{1, 0}, []float32{-1, 0}, 0},
		{"zero norm", []float32{0, 0}, []float32{1, 1}, 0},
		{"length mismatch", []float32{1, 0}, []float32{1, 0, 0}, 0},
		{"empty", nil, nil, 0},
		{"45 degrees", []float32{1, 0}, []float32{1, 1}, 1 / math.Sqrt2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Fatalf("Cosine() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMaxCosineTakesBestPair(t *testing.T) {
	vectors := fakeVectors{
		"invoice": {1, 0, 0},
		"receipt": {0.95, 0.05, 0},
		"holiday": {0, 1, 0},
		"beach":   {0, 0, 1},
	}
	// One strongly related pair dominates unrelated tokens.
	got := MaxCosine([]string{"invoice", "holiday"}, []string{"beach", "receipt"}, vectors)
	want := Cosine(vectors["invoice"], vectors["receipt"])
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("MaxCosine() = %v, want %v", got, want)
	}
	if sym := MaxCosine([]string{"beach", "receipt"}, []string{"invoice", "holiday"}, vectors); sym != got {
		t.Fatalf("MaxCosine not symmetric: %v vs %v", got, sym)
	}
}

func TestMaxCosineUnresolvedTokens(t *testing.T) {
	vectors := fakeVectors{"invoice": {1, 0}}
	tests := []struct {
		name string
		a, b []string
	}{
		{"left unresolved", []string{"zzz"}, []string{"invoice"}},
		{"right unresolved", []string{"invoice"}, []string{"qqq"}},
		{"left empty", nil, []string{"invoice"}},
		{"both empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaxCosine(tt.a, tt.b, vectors); got != 0 {
				t.Fatalf("MaxCosine() = %v, want 0", got)
			}
		})
	}
	if got := MaxCosine([]string{"invoice", "zzz"}, []string{"invoice"}, vectors); got != 1 {
		t.Fatalf("expected unresolved tokens to be dropped, got %v", got)
	}
	if got := MaxCosine([]string{"invoice"}, []string{"invoice"}, nil); got != 0 {
		t.Fatalf("nil lookup must score 0, got %v", got)
	}
}

func TestScorers(t *testing.T) {
	var lexical Scorer = LexicalScorer{}
	if lexical.Mode() != Lexical || lexical.Score([]string{"a"}, []string{"a"}) != 1 {
		t.Fatal("unexpected lexical scorer behaviour")
	}
	var semantic Scorer = SemanticScorer{Vectors: fakeVectors{"a": {1, 0}, "b": {1, 0}}}
	if semantic.Mode() != Semantic || semantic.Score([]string{"a"}, []string{"b"}) != 1 {
		t.Fatal("unexpected semantic scorer behaviour")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"lexical", Lexical, false},
		{"Jaccard", Lexical, false},
		{"", Lexical, false},
		{"semantic", Semantic, false},
		{" VECTOR ", Semantic, false},
		{"fuzzy", Lexical, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Fatalf("ParseMode(%q) = (%v, %v)", tt.in, got, err)
		}
	}
	if Semantic.String() != "semantic" || Lexical.String() != "lexical" {
		t.Fatal("unexpected Mode.String output")
	}
}

package embedding

// Table is an in-memory vector space. It is read-only once built and safe for
// concurrent lookups.
type Table struct {
	dim     int
	vectors map[string][]float32
}

// NewTable builds a table from explicit vectors. All vectors must share one
// dimension; mismatched entries are skipped.
func NewTable(vectors map[string][]float32) *Table {
	t := &Table{vectors: make(map[string][]float32, len(vectors))}
	for word, vec := range vectors {
		t.add(word, vec)
	}
	return t
}

func (t *Table) add(word string, vec []float32) bool {
	if len(vec) == 0 {
		return false
	}
	if t.dim == 0 {
		t.dim = len(vec)
	}
	if len(vec) != t.dim {
		return false
	}
	t.vectors[word] = vec
	return true
}

// Lookup returns the vector for token.
func (t *Table) Lookup(token string) ([]float32, bool) {
	if t == nil {
		return nil, false
	}
	vec, ok := t.vectors[token]
	return vec, ok
}

// Dim returns the vector dimension, or zero for an empty table.
func (t *Table) Dim() int {
	if t == nil {
		return 0
	}
	return t.dim
}

// Len returns the number of words in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.vectors)
}

// Close is a no-op; tables hold no external resources.
func (t *Table) Close() error { return nil }

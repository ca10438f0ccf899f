package organizer

import (
	"fmt"
	"strings"

	"unscramble/internal/similarity"
)

// Mode selects how a directory's files are grouped.
type Mode string

const (
	ModeExtension Mode = "extension"
	ModeLexical   Mode = "lexical"
	ModeSemantic  Mode = "semantic"
)

// ParseMode accepts the mode names plus the short aliases used on the
// command line ("ext", "jaccard", "vector").
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "extension", "ext":
		return ModeExtension, nil
	}
	sim, err := similarity.ParseMode(value)
	if err != nil {
		return "", fmt.Errorf("unknown sort mode %q (want extension, lexical or semantic)", value)
	}
	return fromSimilarity(sim), nil
}

func (m Mode) String() string { return string(m) }

// UsesSimilarity reports whether the mode clusters by token similarity.
func (m Mode) UsesSimilarity() bool { return m == ModeLexical || m == ModeSemantic }

func fromSimilarity(m similarity.Mode) Mode {
	if m == similarity.Semantic {
		return ModeSemantic
	}
	return ModeLexical
}

package embedding

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const maxLineBytes = 1 << 20

// ScanStats summarizes a pass over a vectors file.
type ScanStats struct {
	Dim     int
	Words   int
	Skipped int
}

// ScanText streams a fastText text file, calling fn for each well-formed
// entry. Lines whose field count disagrees with the dimension are skipped and
// counted; unparsable numbers abort the scan. maxWords > 0 stops early.
func ScanText(r io.Reader, maxWords int, fn func(word string, vec []float32) error) (ScanStats, error) {
	var stats ScanStats
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if lineNo == 1 && len(fields) == 2 {
			if _, errCount := strconv.Atoi(fields[0]); errCount == nil {
				dim, errDim := strconv.Atoi(fields[1])
				if errDim != nil || dim <= 0 {
					return stats, fmt.Errorf("line 1: invalid dimension %q", fields[1])
				}
				stats.Dim = dim
				continue
			}
		}
		if stats.Dim == 0 {
			stats.Dim = len(fields) - 1
			if stats.Dim <= 0 {
				return stats, fmt.Errorf("line %d: missing vector values", lineNo)
			}
		}
		if len(fields)-1 != stats.Dim {
			stats.Skipped++
			continue
		}

		vec := make([]float32, stats.Dim)
		for i, raw := range fields[1:] {
			value, err := strconv.ParseFloat(raw, 32)
			if err != nil {
				return stats, fmt.Errorf("line %d: parse value %d: %w", lineNo, i+1, err)
			}
			vec[i] = float32(value)
		}
		if err := fn(fields[0], vec); err != nil {
			return stats, err
		}
		stats.Words++
		if maxWords > 0 && stats.Words >= maxWords {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("scan vectors: %w", err)
	}
	return stats, nil
}

// ReadText loads a fastText text file into memory. When a word repeats, the
// first occurrence wins, matching the frequency ordering of fastText files.
func ReadText(r io.Reader, maxWords int) (*Table, error) {
	table := &Table{vectors: make(map[string][]float32, 1024)}
	_, err := ScanText(r, maxWords, func(word string, vec []float32) error {
		if _, seen := table.vectors[word]; !seen {
			table.add(word, vec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

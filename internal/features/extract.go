package features

import (
	"runtime"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Extractor converts filenames into normalized content tokens. It holds no
// mutable state after construction and is safe for concurrent use.
type Extractor struct {
	stopWords map[string]struct{}
}

// NewExtractor builds an extractor that drops the stop words of lang.
func NewExtractor(lang string) (*Extractor, error) {
	words, err := StopWords(lang)
	if err != nil {
		return nil, err
	}
	return &Extractor{stopWords: words}, nil
}

// NewExtractorWithStopWords builds an extractor over an explicit stop-word set.
// A nil set disables stop-word removal.
func NewExtractorWithStopWords(words []string) *Extractor {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[normalize(w)] = struct{}{}
	}
	return &Extractor{stopWords: set}
}

// Extract returns the tokens of filename in order of appearance. The result
// is empty, never nil, when nothing survives normalization.
func (e *Extractor) Extract(filename string) []string {
	stem := Stem(filename)
	tokens := make([]string, 0, 4)
	for _, segment := range strings.FieldsFunc(stem, isSeparator) {
		token := normalize(segment)
		if token == "" {
			continue
		}
		if _, stop := e.stopWords[token]; stop {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// ExtractAll tokenizes names across a bounded worker pool. The result slice is
// index-aligned with names regardless of completion order. workers <= 0 uses
// one worker per CPU.
func (e *Extractor) ExtractAll(names []string, workers int) [][]string {
	out := make([][]string, len(names))
	if len(names) == 0 {
		return out
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(names) {
		workers = len(names)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				out[idx] = e.Extract(names[idx])
			}
		}()
	}
	for i := range names {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return out
}

// Stem strips the text after the last dot. A name without a dot is its own stem.
func Stem(filename string) string {
	if idx := strings.LastIndexByte(filename, '.'); idx >= 0 {
		return filename[:idx]
	}
	return filename
}

func isSeparator(r rune) bool {
	switch r {
	case '_', '-', ' ':
		return true
	}
	return unicode.IsDigit(r)
}

// normalize composes the segment (filenames written on macOS arrive
// decomposed) and lowercases it. A Caser carries state, so one is built per call.
func normalize(segment string) string {
	composed := norm.NFC.String(segment)
	return cases.Lower(xlanguage.Und).String(composed)
}

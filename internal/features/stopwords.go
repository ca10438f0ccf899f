package features

import (
	"bufio"
	"embed"
	"fmt"
	"strings"

	"unscramble/internal/language"
)

//go:embed stopwords/*.txt
var stopWordFiles embed.FS

// StopWords returns the stop-word set for a language name, code, or tag.
func StopWords(lang string) (map[string]struct{}, error) {
	code, ok := language.Resolve(lang)
	if !ok {
		return nil, fmt.Errorf("unknown stop-word language %q", lang)
	}
	data, err := stopWordFiles.ReadFile("stopwords/" + code + ".txt")
	if err != nil {
		return nil, fmt.Errorf("no stop-word list for %s", language.DisplayName(code))
	}
	words := make(map[string]struct{}, 256)
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, word := range strings.Fields(line) {
			words[normalize(word)] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stop words for %s: %w", code, err)
	}
	return words, nil
}

// SupportsLanguage reports whether a stop-word list exists for lang.
func SupportsLanguage(lang string) bool {
	code, ok := language.Resolve(lang)
	if !ok {
		return false
	}
	_, err := stopWordFiles.ReadFile("stopwords/" + code + ".txt")
	return err == nil
}

package textutil

import (
	"strings"
	"unicode"
)

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters and control runes are removed. The result is trimmed of
// leading/trailing whitespace.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}

// SanitizeDirName is SanitizeFileName for a single directory segment. Names
// that would resolve to the current or parent directory, or that sanitize to
// nothing, are replaced by fallback.
func SanitizeDirName(name, fallback string) string {
	clean := strings.Trim(SanitizeFileName(name), ". ")
	if clean == "" {
		return fallback
	}
	return clean
}

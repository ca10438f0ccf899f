package textutil

import "testing"

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"meeting":    "meeting",
		"  spaced  ": "spaced",
		"a/b\\c:d*e": "a-b-c-d-e",
		"why?<>|\"":  "why",
		"tab\there":  "tabhere",
		"":           "",
		"résumé":     "résumé",
	}
	for in, want := range tests {
		if got := SanitizeFileName(in); got != want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeDirNameFallback(t *testing.T) {
	tests := map[string]string{
		"meeting": "meeting",
		".":       "misc",
		"..":      "misc",
		"???":     "misc",
		"":        "misc",
		".hidden": "hidden",
		"../etc":  "-etc",
	}
	for in, want := range tests {
		if got := SanitizeDirName(in, "misc"); got != want {
			t.Errorf("SanitizeDirName(%q) = %q, want %q", in, got, want)
		}
	}
}

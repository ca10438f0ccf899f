package language

import (
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		// 2-letter codes
		{"en", "en", true},
		{"EN", "en", true},
		{"es", "es", true},
		// 3-letter codes convert
		{"eng", "en", true},
		{"spa", "es", true},
		{"fra", "fr", true},
		{"fre", "fr", true},
		{"deu", "de", true},
		{"ger", "de", true},
		// Word forms
		{"english", "en", true},
		{"French", "fr", true},
		{"GERMAN", "de", true},
		{"deutsch", "de", true},
		// Region qualified tags
		{"en-US", "en", true},
		{"pt_BR", "pt", true},
		{"de-AT", "de", true},
		// Unknown
		{"xyz", "", false},
		{"klingon", "", false},
		{"", "", false},
		{" ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Resolve(tt.input)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "English"},
		{"eng", "English"},
		{"spanish", "Spanish"},
		{"fr-CA", "French"},
		{"xx", "XX"},
		{"", "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := DisplayName(tt.input); got != tt.expected {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

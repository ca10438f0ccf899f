package extsort

import (
	"reflect"
	"testing"
)

func TestExtension(t *testing.T) {
	tests := map[string]string{
		"a.txt":            "txt",
		"Photo.JPG":        "jpg",
		"archive.tar.gz":   "gz",
		"noext":            "",
		".bashrc":          "",
		"notes.":           "",
		"/tmp/dir.d/file":  "",
		"/tmp/dir/file.MD": "md",
		"":                 "",
	}
	for in, want := range tests {
		if got := Extension(in); got != want {
			t.Errorf("Extension(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGroup(t *testing.T) {
	groups, ungrouped := Group([]string{"a.txt", "b.txt", "c.md", "noext"})
	want := Groups{
		"txt": {"a.txt", "b.txt"},
		"md":  {"c.md"},
	}
	if !reflect.DeepEqual(groups, want) {
		t.Fatalf("Group() = %v, want %v", groups, want)
	}
	if !reflect.DeepEqual(ungrouped, []string{"noext"}) {
		t.Fatalf("ungrouped = %v, want [noext]", ungrouped)
	}
	if keys := groups.Keys(); !reflect.DeepEqual(keys, []string{"md", "txt"}) {
		t.Fatalf("Keys() = %v", keys)
	}
}

func TestGroupMixedCase(t *testing.T) {
	groups, _ := Group([]string{"A.PDF", "b.pdf", "c.Pdf"})
	if len(groups) != 1 || len(groups["pdf"]) != 3 {
		t.Fatalf("expected one pdf group of 3, got %v", groups)
	}
}

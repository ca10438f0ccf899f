package fixture

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestPopulateIsReproducible(t *testing.T) {
	a, err := Populate(t.TempDir(), Options{Count: 25, Seed: 7})
	if err != nil {
		t.Fatalf("Populate: %v", err)
	}
	b, err := Populate(t.TempDir(), Options{Count: 25, Seed: 7})
	if err != nil {
		t.Fatalf("Populate: %v", err)
	}
	if len(a) != 25 {
		t.Fatalf("expected 25 files, got %d", len(a))
	}
	if !reflect.DeepEqual(baseNames(a), baseNames(b)) {
		t.Fatal("same seed produced different names")
	}
	for _, p := range a {
		if !strings.Contains(filepath.Base(p), ".") {
			t.Fatalf("generated name without extension: %s", p)
		}
	}
}

func TestPopulateSubdirs(t *testing.T) {
	dir := t.TempDir()
	files, err := Populate(dir, Options{Count: 8, Seed: 1, Subdirs: 2})
	if err != nil {
		t.Fatalf("Populate: %v", err)
	}
	if len(files) != 12 {
		t.Fatalf("expected 8 + 2*2 files, got %d", len(files))
	}
	for _, sub := range []string{"subdir1", "subdir2"} {
		entries, err := os.ReadDir(filepath.Join(dir, sub))
		if err != nil || len(entries) != 2 {
			t.Fatalf("%s: %d entries, err %v", sub, len(entries), err)
		}
	}
}

func TestClearKeepsDirectory(t *testing.T) {
	dir := t.TempDir()
	if _, err := Populate(dir, Options{Count: 5, Seed: 3, Subdirs: 1}); err != nil {
		t.Fatalf("Populate: %v", err)
	}
	removed, err := Clear(dir)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if removed != 6 {
		t.Fatalf("expected 5 files and 1 subdir removed, got %d", removed)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("directory should remain: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("directory not empty: %v", entries)
	}
}

func TestClearMissingDirectory(t *testing.T) {
	if _, err := Clear(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func baseNames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

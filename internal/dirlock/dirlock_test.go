package dirlock

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestAcquireIsExclusive(t *testing.T) {
	lockDir := filepath.Join(t.TempDir(), "locks")
	target := t.TempDir()

	first, err := Acquire(lockDir, target)
	if err != nil {
		t.Fatalf("first Acquire: %v", err)
	}

	if _, err := Acquire(lockDir, target); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}

	again, err := Acquire(lockDir, target)
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	_ = again.Release()
}

func TestPathForDistinguishesTargets(t *testing.T) {
	lockDir := t.TempDir()
	a, err := PathFor(lockDir, "/data/a")
	if err != nil {
		t.Fatal(err)
	}
	b, err := PathFor(lockDir, "/data/a/b")
	if err != nil {
		t.Fatal(err)
	}
	same, err := PathFor(lockDir, "/data/a/")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("nested directories should not share a lock")
	}
	if a != same {
		t.Fatalf("trailing slash changed lock path: %s vs %s", a, same)
	}
}

func TestReleaseNil(t *testing.T) {
	var l *Lock
	if err := l.Release(); err != nil {
		t.Fatalf("nil release: %v", err)
	}
}

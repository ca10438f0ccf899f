// Package failure defines the error markers shared by the sorting pipeline.
//
// Callers wrap low-level errors with Wrap so messages carry scope and
// operation context while errors.Is still classifies them by marker.
package failure

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIO marks directory read, directory creation, and file move failures.
	ErrIO = errors.New("io error")
	// ErrLookupUnavailable marks a semantic run that has no usable word vectors.
	ErrLookupUnavailable = errors.New("embedding lookup unavailable")
	// ErrInvalidPath marks a target that does not exist or is not a directory.
	ErrInvalidPath = errors.New("invalid path")
	// ErrConfiguration marks unusable configuration values.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes scope context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, scope, operation, message string, err error) error {
	detail := buildDetail(scope, operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitCode maps an error to the process exit status used by the CLI.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrInvalidPath), errors.Is(err, ErrConfiguration):
		return 2
	case errors.Is(err, ErrLookupUnavailable):
		return 3
	default:
		return 1
	}
}

func buildDetail(scope, operation, message string) string {
	parts := make([]string, 0, 3)
	if scope = strings.TrimSpace(scope); scope != "" {
		parts = append(parts, scope)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "sort failure"
	}
	return strings.Join(parts, ": ")
}

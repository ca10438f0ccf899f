package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"unscramble/internal/config"
	"unscramble/internal/logging"
)

func TestNewFromConfigConsole(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "debug"

	var buf bytes.Buffer
	logger, err := logging.NewFromConfig(&cfg, &buf)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Debug("debug message", logging.String("file", "a.txt"))
	out := buf.String()
	if !strings.Contains(out, "DEBUG") || !strings.Contains(out, "debug message") {
		t.Fatalf("unexpected console output %q", out)
	}
	if !strings.Contains(out, "file=a.txt") {
		t.Fatalf("expected key=value attr, got %q", out)
	}
}

func TestNewFromConfigWritesFileCopy(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "unscramble.log")

	var buf bytes.Buffer
	logger, err := logging.NewFromConfig(&cfg, &buf)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("sorted", logging.Int("groups", 2))

	content, err := os.ReadFile(cfg.Logging.File)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "groups=2") {
		t.Fatalf("expected attrs in file, got %q", content)
	}
	if buf.Len() == 0 {
		t.Fatal("expected console copy as well")
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message without caller")
	if strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", buf.String())
	}

	buf.Reset()
	logger.Debug("message with caller")
	if !strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", buf.String())
	}
}

func TestConsoleComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	base, err := logging.New(logging.Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger := logging.NewComponentLogger(base, "organizer")
	logger.Info("moved group", logging.String("group", "meeting notes"))

	out := buf.String()
	if !strings.Contains(out, "organizer: moved group") {
		t.Fatalf("expected component prefix, got %q", out)
	}
	if !strings.Contains(out, `group="meeting notes"`) {
		t.Fatalf("expected quoted value, got %q", out)
	}
	if strings.Contains(out, "component=") {
		t.Fatalf("component should not repeat as attr: %q", out)
	}
}

func TestJSONLoggerIncludesContextFields(t *testing.T) {
	var buf bytes.Buffer
	base, err := logging.New(logging.Options{Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithRunID(context.Background(), "run-1")
	ctx = logging.WithDir(ctx, "/data/downloads")
	ctx = logging.WithMode(ctx, "lexical")
	logging.WithContext(ctx, base).Info("sort complete")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode json line %q: %v", buf.String(), err)
	}
	if entry["run_id"] != "run-1" || entry["dir"] != "/data/downloads" || entry["mode"] != "lexical" {
		t.Fatalf("missing context fields: %#v", entry)
	}
	if entry["level"] != "info" {
		t.Fatalf("expected lowercase level, got %v", entry["level"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key: %#v", entry)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml", Writer: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if logging.ValidFormat("xml") {
		t.Fatal("xml should not be a valid format")
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.WarnWithContext(logger, "move failed", "move_failed",
		logging.String(logging.FieldImpact, "file left in place"),
		logging.Error(errors.New("permission denied")),
	)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if entry[logging.FieldEventType] != "move_failed" {
		t.Fatalf("event_type = %v", entry[logging.FieldEventType])
	}
	if entry[logging.FieldImpact] != "file left in place" {
		t.Fatalf("impact overridden: %v", entry[logging.FieldImpact])
	}
	if entry[logging.FieldErrorHint] == nil {
		t.Fatal("expected default error_hint")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 12) {
		t.Fatal("nop logger should never be enabled")
	}
	logging.NewComponentLogger(nil, "x").Error("ignored")
}

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"unscramble/internal/failure"
	"unscramble/internal/testsupport"
)

type cliTestEnv struct {
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", base)
	t.Setenv("UNSCRAMBLE_VECTORS_PATH", "")
	t.Setenv("UNSCRAMBLE_STATE_DIR", "")
	t.Setenv("UNSCRAMBLE_LOG_LEVEL", "")

	configPath := filepath.Join(base, "unscramble.toml")
	body := "[paths]\nstate_dir = \"" + filepath.ToSlash(filepath.Join(base, "state")) + "\"\n\n[logging]\nlevel = \"warn\"\n"
	testsupport.WriteText(t, configPath, body)
	return &cliTestEnv{configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestSortCommandLexical(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := filepath.Join(env.baseDir, "downloads")
	testsupport.Touch(t, dir, "meeting_notes_1.txt", "meeting_notes_2.txt", "meeting_notes_3.txt", "readme.txt")

	out, _, err := runCLI(t, []string{"sort", "--path", dir}, env.configPath)
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	requireContains(t, out, "meeting")
	requireContains(t, out, "3 files moved into 1 group")

	want := []string{"meeting/meeting_notes_1.txt", "meeting/meeting_notes_2.txt", "meeting/meeting_notes_3.txt", "readme.txt"}
	if got := testsupport.Tree(t, dir); !reflect.DeepEqual(got, want) {
		t.Fatalf("tree mismatch: %v", got)
	}
}

func TestSortCommandExtensionRecursive(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := filepath.Join(env.baseDir, "work")
	testsupport.Touch(t, dir, "a.txt", "b.md", "nested/c.txt")

	if _, _, err := runCLI(t, []string{"sort", "-p", dir, "-e", "-r"}, env.configPath); err != nil {
		t.Fatalf("sort: %v", err)
	}
	want := []string{"md/b.md", "nested/txt/c.txt", "txt/a.txt"}
	if got := testsupport.Tree(t, dir); !reflect.DeepEqual(got, want) {
		t.Fatalf("tree mismatch: %v", got)
	}
}

func TestSortCommandDryRun(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := filepath.Join(env.baseDir, "work")
	testsupport.Touch(t, dir, "a.txt", "b.txt")

	out, _, err := runCLI(t, []string{"sort", "-p", dir, "--ext", "--dry-run"}, env.configPath)
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	requireContains(t, out, "nothing moved")
	if got := testsupport.Tree(t, dir); len(got) != 2 || got[0] != "a.txt" {
		t.Fatalf("dry run changed tree: %v", got)
	}
}

func TestSortCommandRejectsMissingDirectory(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"sort", "-p", filepath.Join(env.baseDir, "nope")}, env.configPath)
	if !errors.Is(err, failure.ErrInvalidPath) {
		t.Fatalf("expected invalid path error, got %v", err)
	}
	if failure.ExitCode(err) != 2 {
		t.Fatalf("exit code = %d", failure.ExitCode(err))
	}
}

func TestSortCommandSemanticWithoutVectors(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := filepath.Join(env.baseDir, "work")
	testsupport.Touch(t, dir, "budget.xlsx")

	_, _, err := runCLI(t, []string{"sort", "-p", dir, "--semantic"}, env.configPath)
	if !errors.Is(err, failure.ErrLookupUnavailable) {
		t.Fatalf("expected lookup unavailable, got %v", err)
	}
}

func TestSortCommandModesAreExclusive(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"sort", "-p", env.baseDir, "-e", "-s"}, env.configPath); err == nil {
		t.Fatal("expected --ext and --semantic to conflict")
	}
}

func TestEmbeddingsImportThenSemanticSort(t *testing.T) {
	env := setupCLITestEnv(t)
	vecPath := filepath.Join(env.baseDir, "tiny.vec")
	testsupport.WriteText(t, vecPath, testsupport.SampleVectors)

	out, _, err := runCLI(t, []string{"embeddings", "import", vecPath}, env.configPath)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	requireContains(t, out, "Words:")

	out, _, err = runCLI(t, []string{"embeddings", "lookup", "budget", "zebra"}, env.configPath)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	requireContains(t, out, "budget")
	requireContains(t, out, "zebra")

	out, _, err = runCLI(t, []string{"embeddings", "compare", "budget_2024.xlsx", "invoice.pdf"}, env.configPath)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	requireContains(t, out, "semantic")

	dir := filepath.Join(env.baseDir, "work")
	testsupport.Touch(t, dir, "budget.xlsx", "invoice.pdf", "beach.jpg")
	if _, _, err := runCLI(t, []string{"sort", "-p", dir, "-s"}, env.configPath); err != nil {
		t.Fatalf("semantic sort: %v", err)
	}
	want := []string{"beach.jpg", "budget/budget.xlsx", "budget/invoice.pdf"}
	if got := testsupport.Tree(t, dir); !reflect.DeepEqual(got, want) {
		t.Fatalf("tree mismatch: %v", got)
	}
}

func TestPopulateAndClear(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := filepath.Join(env.baseDir, "fixture")

	out, _, err := runCLI(t, []string{"populate", "-p", dir, "-n", "10", "--subdirs", "1"}, "")
	if err != nil {
		t.Fatalf("populate: %v", err)
	}
	requireContains(t, out, "Wrote 12 files")

	if _, _, err := runCLI(t, []string{"clear", "-p", dir}, ""); err == nil {
		t.Fatal("clear without --yes should refuse")
	}
	out, _, err = runCLI(t, []string{"clear", "-p", dir, "--yes"}, "")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	requireContains(t, out, "Removed 11 entries")

	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected empty dir, got %d entries (%v)", len(entries), err)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "sort.lexical_threshold")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected refusal to overwrite")
	}
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"unscramble/internal/config"
	"unscramble/internal/failure"
	"unscramble/internal/fixture"
)

func newPopulateCommand() *cobra.Command {
	var path string
	var opts fixture.Options

	cmd := &cobra.Command{
		Use:         "populate",
		Short:       "Fill a directory with generated test files",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := config.ExpandPath(path)
			if err != nil {
				return failure.Wrap(failure.ErrInvalidPath, "populate", "resolve path", path, err)
			}
			files, err := fixture.Populate(target, opts)
			if err != nil {
				return failure.Wrap(failure.ErrIO, "populate", "write files", target, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s to %s\n", plural(len(files), "file"), target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "./test", "Directory to populate")
	cmd.Flags().IntVarP(&opts.Count, "count", "n", fixture.DefaultCount, "Number of top-level files")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 1, "Seed for reproducible names")
	cmd.Flags().IntVar(&opts.Subdirs, "subdirs", 2, "Number of subdirectories to create")
	return cmd
}

func newClearCommand() *cobra.Command {
	var path string
	var yes bool

	cmd := &cobra.Command{
		Use:         "clear",
		Short:       "Remove everything inside a directory",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := config.ExpandPath(path)
			if err != nil {
				return failure.Wrap(failure.ErrInvalidPath, "clear", "resolve path", path, err)
			}
			info, err := os.Stat(target)
			if err != nil || !info.IsDir() {
				return failure.Wrap(failure.ErrInvalidPath, "clear", "validate path", target+" is not a directory", nil)
			}
			if isProtectedPath(target) {
				return failure.Wrap(failure.ErrInvalidPath, "clear", "validate path", "refusing to clear "+target, nil)
			}
			if !yes {
				return fmt.Errorf("clear removes every file under %s; pass --yes to confirm", target)
			}
			removed, err := fixture.Clear(target)
			if err != nil {
				return failure.Wrap(failure.ErrIO, "clear", "remove entries", target, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d entries from %s\n", removed, target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "./test", "Directory to clear")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm removal")
	return cmd
}

func isProtectedPath(path string) bool {
	clean := filepath.Clean(path)
	if clean == string(filepath.Separator) {
		return true
	}
	if home, err := os.UserHomeDir(); err == nil && clean == filepath.Clean(home) {
		return true
	}
	return false
}

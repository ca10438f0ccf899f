package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"unscramble/internal/organizer"
)

type sortFlags struct {
	path      string
	ext       bool
	semantic  bool
	recursive bool
	dryRun    bool
	threshold float64
}

func newSortCommand(ctx *commandContext) *cobra.Command {
	var flags sortFlags

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Move related files into subdirectories",
		Long: `Sort groups the files of a directory and moves each group into a
subdirectory named after it.

By default files are grouped by the words in their names (lexical mode).
--semantic compares words through pretrained word vectors instead, and
--ext groups purely by file extension. Files that match nothing stay put.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			opts := organizer.Options{
				Path:      flags.path,
				Mode:      selectMode(flags),
				Recursive: flags.recursive,
				DryRun:    flags.dryRun,
			}
			if cmd.Flags().Changed("threshold") {
				threshold := flags.threshold
				opts.Threshold = &threshold
			}

			runCtx, stop, _ := runContext(cmd.Context())
			defer stop()

			sorter := organizer.New(cfg, logger)
			report, err := sorter.Sort(runCtx, opts)
			if report != nil {
				printSortReport(cmd.OutOrStdout(), report)
			}
			if err != nil {
				return err
			}
			return report.Err()
		},
	}

	cmd.Flags().StringVarP(&flags.path, "path", "p", ".", "Directory to sort")
	cmd.Flags().BoolVarP(&flags.ext, "ext", "e", false, "Group by file extension")
	cmd.Flags().BoolVarP(&flags.semantic, "semantic", "s", false, "Group by word-vector similarity")
	cmd.Flags().BoolVarP(&flags.recursive, "recursive", "r", false, "Also sort each existing subdirectory")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Show the groups without moving anything")
	cmd.Flags().Float64Var(&flags.threshold, "threshold", 0, "Similarity threshold in [0,1] (default from config)")
	cmd.MarkFlagsMutuallyExclusive("ext", "semantic")
	return cmd
}

func selectMode(flags sortFlags) organizer.Mode {
	switch {
	case flags.ext:
		return organizer.ModeExtension
	case flags.semantic:
		return organizer.ModeSemantic
	default:
		return organizer.ModeLexical
	}
}

func printSortReport(out io.Writer, report *organizer.Report) {
	colorize := shouldColorize(out)
	title := "Sort"
	if report.DryRun {
		title = "Sort (dry run)"
	}
	for _, line := range renderSectionHeader(title, colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderStatusLine("Directory", statusInfo, report.Root, colorize))
	fmt.Fprintln(out, renderStatusLine("Mode", statusInfo, modeSummary(report), colorize))

	if report.Empty {
		fmt.Fprintln(out, renderStatusLine("Result", statusInfo, "no files to sort", colorize))
		return
	}

	if len(report.Placements) > 0 {
		rows := make([][]string, 0, len(report.Placements))
		total := 0
		for _, p := range report.Placements {
			rel, err := filepath.Rel(report.Root, p.Destination())
			if err != nil {
				rel = p.Destination()
			}
			rows = append(rows, []string{rel + string(filepath.Separator), strconv.Itoa(len(p.Files))})
			total += len(p.Files)
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Group", "Files"},
			rows,
			[]columnAlignment{alignLeft, alignRight},
			[]string{"Total", strconv.Itoa(total)},
		))
	}

	switch {
	case report.DryRun:
		fmt.Fprintln(out, renderStatusLine("Result", statusInfo,
			fmt.Sprintf("%s planned, nothing moved", plural(len(report.Placements), "group")), colorize))
	case len(report.Failures) > 0:
		fmt.Fprintln(out, renderStatusLine("Result", statusWarn,
			fmt.Sprintf("%s moved, %s failed", plural(len(report.Moves), "file"), plural(len(report.Failures), "file")), colorize))
		for _, f := range report.Failures {
			fmt.Fprintln(out, renderStatusLine("Failed", statusError, f.Err.Error(), colorize))
		}
	default:
		fmt.Fprintln(out, renderStatusLine("Result", statusOK,
			fmt.Sprintf("%s moved into %s", plural(len(report.Moves), "file"), plural(len(report.Placements), "group")), colorize))
	}
}

func modeSummary(report *organizer.Report) string {
	if report.Mode == organizer.ModeExtension {
		return report.Mode.String()
	}
	return fmt.Sprintf("%s (threshold %s)", report.Mode, strconv.FormatFloat(report.Threshold, 'f', -1, 64))
}

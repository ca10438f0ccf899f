package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"unscramble/internal/embedding"
	"unscramble/internal/failure"
	"unscramble/internal/features"
	"unscramble/internal/similarity"
)

func newEmbeddingsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "embeddings",
		Aliases: []string{"vectors"},
		Short:   "Manage the word vectors used by semantic sorting",
	}
	cmd.AddCommand(newEmbeddingsImportCommand(ctx))
	cmd.AddCommand(newEmbeddingsStatusCommand(ctx))
	cmd.AddCommand(newEmbeddingsLookupCommand(ctx))
	cmd.AddCommand(newEmbeddingsCompareCommand(ctx))
	return cmd
}

func newEmbeddingsImportCommand(ctx *commandContext) *cobra.Command {
	var maxWords int

	cmd := &cobra.Command{
		Use:   "import [vectors.vec]",
		Short: "Convert a fastText .vec file into the local vector store",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			source := cfg.Embeddings.VectorsPath
			if len(args) == 1 {
				source = args[0]
			}
			if strings.TrimSpace(source) == "" {
				return failure.Wrap(failure.ErrConfiguration, "embeddings", "import", "no vectors file given; pass a path or set embeddings.vectors_path", nil)
			}
			if !cmd.Flags().Changed("max-words") {
				maxWords = cfg.Embeddings.MaxWords
			}

			file, err := os.Open(source)
			if err != nil {
				return failure.Wrap(failure.ErrInvalidPath, "embeddings", "open vectors file", source, err)
			}
			defer file.Close()

			var reader io.Reader = file
			if isatty.IsTerminal(os.Stderr.Fd()) {
				if info, err := file.Stat(); err == nil {
					bar := progressbar.NewOptions64(info.Size(),
						progressbar.OptionSetDescription("Importing vectors"),
						progressbar.OptionSetWriter(os.Stderr),
						progressbar.OptionShowBytes(true),
						progressbar.OptionSetWidth(40),
						progressbar.OptionClearOnFinish(),
					)
					defer bar.Finish()
					reader = io.TeeReader(file, bar)
				}
			}

			runCtx, stop, _ := runContext(cmd.Context())
			defer stop()

			store, err := embedding.Create(runCtx, cfg.VectorStorePath(), logger)
			if err != nil {
				return failure.Wrap(failure.ErrIO, "embeddings", "open store", cfg.VectorStorePath(), err)
			}
			defer store.Close()

			stats, err := store.Import(runCtx, reader, source, maxWords)
			if err != nil {
				return failure.Wrap(failure.ErrIO, "embeddings", "import", source, err)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintln(out, renderStatusLine("Store", statusInfo, store.Path(), colorize))
			fmt.Fprintln(out, renderStatusLine("Words", statusOK, strconv.Itoa(stats.Words), colorize))
			fmt.Fprintln(out, renderStatusLine("Dimension", statusInfo, strconv.Itoa(stats.Dim), colorize))
			if stats.Skipped > 0 {
				fmt.Fprintln(out, renderStatusLine("Skipped", statusWarn, plural(stats.Skipped, "malformed line"), colorize))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&maxWords, "max-words", 0, "Only import the first N words (default from config, 0 = all)")
	return cmd
}

func newEmbeddingsStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the vector store in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintln(out, renderStatusLine("Store", statusInfo, cfg.VectorStorePath(), colorize))

			store, err := embedding.OpenExisting(cmd.Context(), cfg.VectorStorePath())
			if err != nil {
				fmt.Fprintln(out, renderStatusLine("State", statusWarn, err.Error(), colorize))
				if cfg.Embeddings.VectorsPath != "" {
					fmt.Fprintln(out, renderStatusLine("Fallback", statusInfo, cfg.Embeddings.VectorsPath, colorize))
				}
				return nil
			}
			defer store.Close()

			count, err := store.Count(cmd.Context())
			if err != nil {
				return failure.Wrap(failure.ErrIO, "embeddings", "count", "", err)
			}
			source, _ := store.Meta(cmd.Context(), "source")
			imported, _ := store.Meta(cmd.Context(), "imported_at")
			fmt.Fprintln(out, renderStatusLine("Words", statusOK, strconv.Itoa(count), colorize))
			fmt.Fprintln(out, renderStatusLine("Dimension", statusInfo, strconv.Itoa(store.Dim()), colorize))
			fmt.Fprintln(out, renderStatusLine("Source", statusInfo, source, colorize))
			fmt.Fprintln(out, renderStatusLine("Imported", statusInfo, imported, colorize))
			return nil
		},
	}
}

func newEmbeddingsLookupCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup WORD...",
		Short: "Show whether words have vectors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := openProvider(cmd.Context(), ctx)
			if err != nil {
				return err
			}
			defer provider.Close()

			rows := make([][]string, 0, len(args))
			for _, word := range args {
				token := strings.ToLower(strings.TrimSpace(word))
				vec, ok := provider.Lookup(token)
				rows = append(rows, []string{token, yesNo(ok), previewVector(vec, 4)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Word", "Found", "Vector"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
				nil,
			))
			return nil
		},
	}
}

func newEmbeddingsCompareCommand(ctx *commandContext) *cobra.Command {
	var noVectors bool

	cmd := &cobra.Command{
		Use:   "compare NAME NAME",
		Short: "Score two file names the way sort would",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			extractor, err := features.NewExtractor(cfg.Sort.StopWordLanguage)
			if err != nil {
				return failure.Wrap(failure.ErrConfiguration, "embeddings", "stop words", "", err)
			}
			a, b := extractor.Extract(args[0]), extractor.Extract(args[1])

			lexical := similarity.Jaccard(a, b)
			rows := [][]string{
				{"tokens", strings.Join(a, " "), strings.Join(b, " ")},
			}
			scores := [][]string{
				{"lexical", formatScore(lexical), formatScore(cfg.Sort.LexicalThreshold), yesNo(lexical > cfg.Sort.LexicalThreshold)},
			}
			if !noVectors {
				provider, err := openProvider(cmd.Context(), ctx)
				if err != nil {
					return err
				}
				defer provider.Close()
				semantic := similarity.MaxCosine(a, b, provider)
				scores = append(scores, []string{"semantic", formatScore(semantic), formatScore(cfg.Sort.SemanticThreshold), yesNo(semantic > cfg.Sort.SemanticThreshold)})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"", args[0], args[1]}, rows, nil, nil))
			fmt.Fprintln(out, renderTable(
				[]string{"Mode", "Score", "Threshold", "Grouped"},
				scores,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft},
				nil,
			))
			return nil
		},
	}
	cmd.Flags().BoolVar(&noVectors, "lexical-only", false, "Skip the semantic score")
	return cmd
}

func openProvider(ctx context.Context, cc *commandContext) (embedding.Provider, error) {
	cfg, err := cc.ensureConfig()
	if err != nil {
		return nil, err
	}
	provider, err := embedding.Open(ctx, embedding.Source{
		StorePath:   cfg.VectorStorePath(),
		VectorsPath: cfg.Embeddings.VectorsPath,
		MaxWords:    cfg.Embeddings.MaxWords,
	})
	if err != nil {
		return nil, failure.Wrap(failure.ErrLookupUnavailable, "embeddings", "open", "", err)
	}
	return provider, nil
}

func previewVector(vec []float32, n int) string {
	if len(vec) == 0 {
		return "-"
	}
	parts := make([]string, 0, n+1)
	for i := 0; i < len(vec) && i < n; i++ {
		parts = append(parts, strconv.FormatFloat(float64(vec[i]), 'f', 3, 32))
	}
	if len(vec) > n {
		parts = append(parts, fmt.Sprintf("... (%d dims)", len(vec)))
	}
	return strings.Join(parts, " ")
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

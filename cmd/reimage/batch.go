package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/reimage/internal/config"
	"github.com/nao1215/reimage/internal/database"
	"github.com/nao1215/reimage/internal/imaging"
	"github.com/nao1215/reimage/internal/model"
	"github.com/nao1215/reimage/internal/pipeline"
	"github.com/nao1215/reimage/internal/prompt"
	"github.com/nao1215/reimage/internal/report"
)

// NewBatchCmd creates the batch command.
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run the full describe-and-reconstruct pipeline over a directory",
		Long: `Batch runs the complete pipeline over every image in a directory:
analysis with both methods, reconstruction, and a per-image comparison
report in its own subdirectory of the output directory.

One image's failure never aborts the batch; the failed image is logged,
excluded from the index, and listed in the Markdown summary. The batch
finishes with an index.html linking every successful report.

Examples:
  # Process every image in ./photos into ./out
  reimage batch --input-dir photos --output-dir out

  # Process three images at a time
  reimage batch -i photos -o out --concurrency 3`,
		Args: cobra.NoArgs,
		RunE: runBatchCmd,
	}

	cmd.Flags().StringP("input-dir", "i", "", "Directory containing input images (required)")
	cmd.Flags().StringP("output-dir", "o", "", "Directory for reports and artifacts (required)")
	cmd.Flags().Int("concurrency", config.DefaultConcurrency,
		"Number of images processed in parallel")
	cmd.Flags().String("model", "", "Model name for analysis and synthesis calls")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each model API call")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .reimage.yml in current or home directory)")
	_ = cmd.MarkFlagRequired("input-dir")  //nolint:errcheck // Flag is registered above
	_ = cmd.MarkFlagRequired("output-dir") //nolint:errcheck // Flag is registered above

	return cmd
}

// runBatchCmd executes the batch command.
func runBatchCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	inputDir, err := cmd.Flags().GetString("input-dir")
	if err != nil {
		return err
	}
	outputDir, err := cmd.Flags().GetString("output-dir")
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)

	// Graceful shutdown: an interrupt cancels in-flight API calls and
	// the remaining images are reported as failed.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runBatch(ctx, cmd, cfg, logger, inputDir, outputDir)
}

// runBatch enumerates the input directory and processes every image.
func runBatch(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, inputDir, outputDir string) error {
	items, err := enumerateImages(inputDir, outputDir)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("no images found in %s", inputDir)
	}

	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	client, err := newModelClient(cfg, logger)
	if err != nil {
		return err
	}

	builder := prompt.Builder{
		JSONPrompt:    cfg.JSONPrompt,
		JSONSVGPrompt: cfg.JSONSVGPrompt,
	}
	assembler := report.NewAssembler(report.WithLogger(logger))

	// Each image gets a fresh pipeline running both methods end to end.
	factory := func() *pipeline.Pipeline {
		p := pipeline.New(pipeline.WithLogger(logger))
		p.AddSteps(
			pipeline.NewAnalyzeStep(client, builder, model.MethodJSON),
			pipeline.NewAnalyzeStep(client, builder, model.MethodJSONSVG),
			pipeline.NewSynthesizeStep(client, builder, model.MethodJSON, logger),
			pipeline.NewSynthesizeStep(client, builder, model.MethodJSONSVG, logger),
			pipeline.NewReportStep(assembler),
		)
		return p
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Processing %d image(s) from %s (concurrency: %d)...\n",
		len(items), inputDir, cfg.Concurrency)

	startTime := time.Now()
	bp := pipeline.NewBatchProcessor(factory, outputDir,
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithBatchLogger(logger),
	)
	results := bp.Process(ctx, items)
	elapsed := time.Since(startTime)

	saveBatchHistory(context.WithoutCancel(ctx), cfg, results, elapsed, logger)

	indexPath := filepath.Join(outputDir, config.DefaultIndexFile)
	if err := report.WriteIndex(model.Manifest(results), indexPath); err != nil {
		return err
	}
	summaryPath := filepath.Join(outputDir, config.DefaultSummaryFile)
	if err := report.WriteSummary(results, summaryPath); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
			fmt.Fprintf(os.Stderr, "Failed: %s: %v\n", r.Image, r.Err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Batch complete in %s: %d succeeded, %d failed\n",
		elapsed.Round(time.Millisecond), len(results)-failed, failed)
	fmt.Fprintf(cmd.OutOrStdout(), "Index: %s\n", indexPath)

	return nil
}

// enumerateImages lists the image files of inputDir in name order and
// builds one pipeline item per image, each with its own subdirectory of
// outputDir named after the image stem.
func enumerateImages(inputDir, outputDir string) ([]*pipeline.Item, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	items := make([]*pipeline.Item, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !imaging.IsImageFile(entry.Name()) {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		items = append(items, pipeline.NewItem(
			filepath.Join(inputDir, entry.Name()),
			filepath.Join(outputDir, stem),
		))
	}
	return items, nil
}

// saveBatchHistory records one run row per image. History is best
// effort: a storage failure is logged, never fatal.
func saveBatchHistory(ctx context.Context, cfg *config.Config, results []model.ItemResult, elapsed time.Duration, logger *slog.Logger) {
	if !cfg.SaveToDB {
		return
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		logger.Warn("failed to open history database", "dir", cfg.DBDir, "error", err)
		return
	}
	defer db.Close()

	for _, r := range results {
		record := newRunRecord(r.Image, "batch", r.Err, elapsed)
		if err := db.SaveRun(ctx, record); err != nil {
			logger.Warn("failed to save run record", "image", r.Image, "error", err)
		}
	}
}

package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/reimage/internal/model"
)

// BatchProcessor runs a fresh pipeline over each image of a batch and
// collects per-item results.
//
// Design decision: We use a separate BatchProcessor rather than adding
// batch behavior to Pipeline because it keeps the Pipeline focused on
// single-image execution and makes the failure-isolation policy live in
// exactly one place. Results are collected as explicit model.ItemResult
// values instead of propagating errors across the loop, so the
// "one failure never aborts the batch" contract is visible and testable.
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each image. A factory
	// ensures no pipeline state leaks between images.
	pipelineFactory func() *Pipeline

	// baseDir is the batch output directory; report links in manifest
	// entries are made relative to it.
	baseDir string

	// concurrency is the maximum number of images processed at once.
	// Defaults to 1: images are independent, so this can be raised, but
	// sequential processing keeps API usage predictable.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores per-item outcomes in enumeration order.
	// Access is synchronized via mutex.
	results []model.ItemResult
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of images processed at once.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor. The factory is called per
// image to create a fresh pipeline; baseDir is the directory the index
// document will live in.
func NewBatchProcessor(pipelineFactory func() *Pipeline, baseDir string, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		baseDir:         baseDir,
		concurrency:     1,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// Process runs the pipeline over every item and returns one result per
// item, in the same order as the input regardless of concurrency.
//
// A failed item is logged with its cause and yields a failure result;
// processing of the remaining items continues. The context cancels the
// whole batch.
func (bp *BatchProcessor) Process(ctx context.Context, items []*Item) []model.ItemResult {
	bp.logger.Info("starting batch processing",
		"totalImages", len(items),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	// Pre-allocate results to keep enumeration order.
	bp.results = make([]model.ItemResult, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			select {
			case <-ctx.Done():
				bp.store(i, model.ItemResult{Image: item.Name, Err: ctx.Err()})
				return nil
			default:
			}

			bp.logger.Info("processing image",
				"image", item.Name,
				"index", i+1,
				"total", len(items),
			)

			p := bp.pipelineFactory()
			err := p.Execute(ctx, item)

			result := model.ItemResult{Image: item.Name}
			if err != nil {
				// The failure is recorded, the batch continues.
				bp.logger.Warn("image failed, excluded from manifest",
					"image", item.Name,
					"error", err,
				)
				result.Err = err
			} else {
				result.Entry = bp.manifestEntry(item)
			}
			bp.store(i, result)

			return nil
		})
	}

	_ = g.Wait() //nolint:errcheck // Per-item errors live in results

	bp.logger.Info("batch processing complete",
		"totalImages", len(items),
		"elapsed", time.Since(startTime),
	)

	return bp.results
}

// store records one item's result under the mutex.
func (bp *BatchProcessor) store(i int, r model.ItemResult) {
	bp.mu.Lock()
	bp.results[i] = r
	bp.mu.Unlock()
}

// manifestEntry builds the manifest entry for a successful item, with
// the report link relative to the batch output directory.
func (bp *BatchProcessor) manifestEntry(item *Item) *model.ManifestEntry {
	link := item.ReportPath
	if rel, err := filepath.Rel(bp.baseDir, item.ReportPath); err == nil {
		link = filepath.ToSlash(rel)
	}
	return &model.ManifestEntry{
		Image:  item.Name,
		Report: link,
	}
}

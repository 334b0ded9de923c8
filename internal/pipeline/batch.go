package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/codegenius/codegenius/internal/model"
	"golang.org/x/sync/errgroup"
)

// defaultBatchConcurrency bounds simultaneous scans when the caller does
// not choose a limit. Scans are I/O heavy, so a small number is plenty.
const defaultBatchConcurrency = 4

// BatchProcessor scans several roots concurrently, each through its own
// pipeline.
//
// Design decision: Batch execution lives outside Pipeline so the pipeline
// stays a single-root sequence and the fan-out policy (limit, ordering,
// streaming callbacks) can change without touching it.
type BatchProcessor struct {
	// pipelineFactory builds a fresh pipeline per root, so pipeline state
	// cannot leak between scans and per-root configuration (output path,
	// ignore dirs) can differ.
	pipelineFactory func(root string) *Pipeline

	concurrency int
	logger      *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent scans.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor around pipelineFactory.
func NewBatchProcessor(pipelineFactory func(root string) *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     defaultBatchConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// scanRoot runs one root through a fresh pipeline. The returned result is
// never nil; a failed scan carries its failure in result.ErrorMessage.
func (bp *BatchProcessor) scanRoot(ctx context.Context, root string) *model.ScanResult {
	result := model.NewScanResult(root)
	if err := bp.pipelineFactory(root).Execute(ctx, result); err != nil {
		bp.logger.Warn("scan failed",
			"root", root,
			"error", err,
		)
		return result
	}

	bp.logger.Info("scan completed", "root", root)
	return result
}

// ProcessBatch scans the given roots concurrently and returns one result
// per root, in input order. Failed roots still yield a result; the error
// return only reports batch-level cancellation.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, roots []string) ([]*model.ScanResult, error) {
	bp.logger.Info("starting batch processing",
		"total_roots", len(roots),
		"concurrency", bp.concurrency,
	)
	startTime := time.Now()

	// One slot per root; every goroutine writes only its own index, so no
	// further synchronization is needed.
	results := make([]*model.ScanResult, len(roots))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, root := range roots {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = bp.scanRoot(ctx, root)
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch processing complete",
		"total_roots", len(roots),
		"elapsed", time.Since(startTime),
	)

	return results, err
}

// ProcessBatchWithCallback scans the given roots concurrently and hands
// each finished result to callback together with the root's index in the
// input slice. The callback runs on the scanning goroutine and must be
// safe for concurrent use when it touches shared state.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	roots []string,
	callback func(result *model.ScanResult, index int),
) error {
	bp.logger.Info("starting batch processing with callback",
		"total_roots", len(roots),
		"concurrency", bp.concurrency,
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, root := range roots {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			callback(bp.scanRoot(ctx, root), i)
			return nil
		})
	}

	return g.Wait()
}

// Package batch solves several lot files concurrently.
package batch

import (
	"context"
	"runtime"

	"github.com/iwvelando/bond-trader/internal/trader"
	"github.com/iwvelando/bond-trader/pkg/lotfile"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Item is the outcome for one lot file. Err is set when the file could not be
// read or the instance was rejected; the other files are unaffected.
type Item struct {
	Path     string
	Instance trader.Instance
	Result   trader.Result
	Err      error
}

// Options tunes a batch run.
type Options struct {
	Algorithm trader.Algorithm
	// Limit bounds the number of concurrent solves; 0 uses GOMAXPROCS.
	Limit int
}

// Run reads and solves every path. Items are returned in the order of paths.
// Each solve runs single-threaded; parallelism is across files only. Run
// returns an error only when ctx is cancelled; files not started by then carry
// the context error.
func Run(ctx context.Context, logger *zap.Logger, paths []string, params trader.BondParams, opts Options) ([]Item, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	items := make([]Item, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range paths {
		i, path := i, path
		items[i].Path = path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				items[i].Err = err
				return err
			}
			items[i] = solveFile(ctx, logger, path, params, opts.Algorithm)
			return nil
		})
	}

	err := g.Wait()
	logger.Info("batch finished",
		zap.String("op", "batch.Run"),
		zap.Int("files", len(paths)),
		zap.Int("failed", countFailed(items)),
	)
	return items, err
}

func solveFile(ctx context.Context, logger *zap.Logger, path string, params trader.BondParams, alg trader.Algorithm) Item {
	item := Item{Path: path}

	inst, err := lotfile.ReadFile(path)
	if err != nil {
		logger.Error("failed to read lot file",
			zap.String("op", "batch.Run"),
			zap.String("path", path),
			zap.Error(err),
		)
		item.Err = err
		return item
	}
	item.Instance = inst

	runner := trader.NewRunner(logger.With(zap.String("path", path)), trader.WithAlgorithm(alg))
	item.Result, item.Err = runner.Run(ctx, inst, params)
	return item
}

func countFailed(items []Item) int {
	failed := 0
	for _, item := range items {
		if item.Err != nil {
			failed++
		}
	}
	return failed
}

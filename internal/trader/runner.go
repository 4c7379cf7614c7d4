package trader

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Runner solves instances and logs what it did.
type Runner struct {
	logger     *zap.Logger
	algorithm  Algorithm
	crossCheck bool
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithAlgorithm forces an algorithm instead of Auto.
func WithAlgorithm(alg Algorithm) RunnerOption {
	return func(r *Runner) { r.algorithm = alg }
}

// WithCrossCheck makes the runner solve with both algorithms and fail if
// their profits disagree.
func WithCrossCheck(enabled bool) RunnerOption {
	return func(r *Runner) { r.crossCheck = enabled }
}

// NewRunner constructs a Runner. A nil logger discards output.
func NewRunner(logger *zap.Logger, opts ...RunnerOption) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runner{logger: logger, algorithm: Auto}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run solves inst with the configured algorithm.
func (r *Runner) Run(ctx context.Context, inst Instance, params BondParams) (Result, error) {
	start := time.Now()

	alg := r.algorithm
	if alg == Auto {
		alg = Select(inst)
	}
	r.logger.Debug("estimated solver cost",
		zap.String("op", "trader.Run"),
		zap.Int("lots", len(inst.Lots)),
		zap.Int64("totalFunds", inst.TotalFunds),
		zap.Int64("subsetEstimate", EstimateCost(SubsetEnumeration, inst)),
		zap.Int64("knapsackEstimate", EstimateCost(KnapsackDP, inst)),
	)
	r.logger.Info("selected algorithm",
		zap.String("op", "trader.Run"),
		zap.Stringer("algorithm", alg),
		zap.Bool("forced", r.algorithm != Auto),
	)

	result, err := Solve(inst, params, alg)
	if err != nil {
		r.logger.Error("solve failed",
			zap.String("op", "trader.Run"),
			zap.Error(err),
		)
		return Result{}, err
	}

	if r.crossCheck {
		report, err := CrossCheck(ctx, inst, params)
		if err != nil {
			r.logger.Error("cross-check failed",
				zap.String("op", "trader.Run"),
				zap.Int64("subsetProfit", report.Subset.Profit),
				zap.Int64("knapsackProfit", report.Knapsack.Profit),
				zap.Error(err),
			)
			return Result{}, err
		}
		r.logger.Info("cross-check passed",
			zap.String("op", "trader.Run"),
			zap.Int64("profit", report.Knapsack.Profit),
		)
	}

	r.logger.Info("result",
		zap.String("op", "trader.Run"),
		zap.Ints("lots", result.Lots),
		zap.Int64("profit", result.Profit),
		zap.Int64("cost", result.Cost),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}

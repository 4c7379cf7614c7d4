package trader

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Solver is an exact algorithm for the lot selection problem.
type Solver interface {
	// Algorithm identifies the solver.
	Algorithm() Algorithm
	// EstimateCost returns the expected number of steps on inst.
	EstimateCost(inst Instance) int64
	// Solve returns an optimal selection. inst must already be valid.
	Solve(inst Instance, params BondParams) Result
}

// NewSolver returns the solver for alg. Auto is not a solver; resolve it with
// Select first.
func NewSolver(alg Algorithm) (Solver, error) {
	switch alg {
	case SubsetEnumeration:
		return subsetSolver{}, nil
	case KnapsackDP:
		return knapsackSolver{}, nil
	}
	return nil, fmt.Errorf("%w: no solver for %s", ErrUnknownAlgorithm, alg)
}

// Solve validates inst and params, checks that the derived amounts fit in
// int64, and solves with alg, resolving Auto through Select. No solving work
// happens when validation fails.
func Solve(inst Instance, params BondParams, alg Algorithm) (Result, error) {
	if err := params.Validate(); err != nil {
		return Result{}, err
	}
	if err := Validate(inst); err != nil {
		return Result{}, err
	}
	if err := ValidateAmounts(inst, params); err != nil {
		return Result{}, err
	}
	if alg == Auto {
		alg = Select(inst)
	}
	solver, err := NewSolver(alg)
	if err != nil {
		return Result{}, err
	}
	return solver.Solve(inst, params), nil
}

// CrossCheckReport holds the results of both algorithms on one instance.
type CrossCheckReport struct {
	Subset   Result `json:"subset" yaml:"subset"`
	Knapsack Result `json:"knapsack" yaml:"knapsack"`
}

// CrossCheck validates inst and runs both algorithms concurrently. It fails
// with ErrSolverMismatch when their profits differ. The subset enumerator is
// exponential in the number of lots, so this is only practical on small
// instances. ctx is checked before the solvers start; a running solve is not
// interrupted.
func CrossCheck(ctx context.Context, inst Instance, params BondParams) (CrossCheckReport, error) {
	if err := params.Validate(); err != nil {
		return CrossCheckReport{}, err
	}
	if err := Validate(inst); err != nil {
		return CrossCheckReport{}, err
	}
	if err := ValidateAmounts(inst, params); err != nil {
		return CrossCheckReport{}, err
	}

	var report CrossCheckReport
	g, ctx := errgroup.WithContext(ctx)
	run := func(s Solver, out *Result) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			*out = s.Solve(inst, params)
			return nil
		})
	}
	run(subsetSolver{}, &report.Subset)
	run(knapsackSolver{}, &report.Knapsack)
	if err := g.Wait(); err != nil {
		return CrossCheckReport{}, err
	}

	if report.Subset.Profit != report.Knapsack.Profit {
		return report, fmt.Errorf("%w: subset=%d knapsack=%d",
			ErrSolverMismatch, report.Subset.Profit, report.Knapsack.Profit)
	}
	return report, nil
}

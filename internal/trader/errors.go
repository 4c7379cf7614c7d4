package trader

import "errors"

var (
	// ErrInvalidInstance is returned when the declared instance header does not
	// agree with its lots, or when a lot carries malformed numbers.
	ErrInvalidInstance = errors.New("trader: invalid instance")

	// ErrInvalidBondParams is returned for non-positive par values or negative
	// redemption days and coupons.
	ErrInvalidBondParams = errors.New("trader: invalid bond parameters")

	// ErrUnknownAlgorithm is returned when an algorithm name or value is not
	// recognised.
	ErrUnknownAlgorithm = errors.New("trader: unknown algorithm")

	// ErrSolverMismatch is returned by CrossCheck when the two algorithms
	// disagree on the optimal profit.
	ErrSolverMismatch = errors.New("trader: solvers disagree on optimal profit")
)

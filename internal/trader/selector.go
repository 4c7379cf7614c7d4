package trader

import (
	"fmt"
	"strings"

	"github.com/iwvelando/bond-trader/pkg/mathutil"
)

// Algorithm names an exact solving strategy.
type Algorithm int

const (
	// Auto lets Select choose by estimated cost.
	Auto Algorithm = iota
	// SubsetEnumeration searches every subset of lots that fits the budget.
	SubsetEnumeration
	// KnapsackDP runs a dynamic program over funds levels.
	KnapsackDP
)

var algorithmNames = map[Algorithm]string{
	Auto:              "auto",
	SubsetEnumeration: "subset",
	KnapsackDP:        "knapsack",
}

// String returns the configuration name of the algorithm.
func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) {
	if _, ok := algorithmNames[a]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAlgorithm maps a configuration name to an Algorithm. The empty string
// means Auto.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return Auto, nil
	case "subset", "subset-enumeration":
		return SubsetEnumeration, nil
	case "knapsack", "dp", "knapsack-dp":
		return KnapsackDP, nil
	}
	return Auto, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// EstimateCost returns the number of elementary steps the algorithm is
// expected to take on inst. Estimates saturate at math.MaxInt64. Auto is
// estimated as whichever algorithm Select would run.
func EstimateCost(alg Algorithm, inst Instance) int64 {
	n := int64(len(inst.Lots))
	switch alg {
	case SubsetEnumeration:
		return mathutil.SaturatingMul(n, mathutil.SaturatingPow2(len(inst.Lots)))
	case KnapsackDP:
		return mathutil.SaturatingMul(n, inst.TotalFunds)
	case Auto:
		return EstimateCost(Select(inst), inst)
	}
	return 0
}

// Select returns the algorithm with the lower cost estimate. Ties go to
// KnapsackDP. The choice affects running time only; both are exact.
func Select(inst Instance) Algorithm {
	if EstimateCost(KnapsackDP, inst) <= EstimateCost(SubsetEnumeration, inst) {
		return KnapsackDP
	}
	return SubsetEnumeration
}

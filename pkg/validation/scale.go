package validation

import (
	"fmt"

	"github.com/iwvelando/bond-trader/pkg/constants"
)

// ScaleWarnings returns warnings about memory use for the requested
// algorithm on an instance of the given size. They are advisory only.
func ScaleWarnings(algorithm string, lots int, funds int64, crossCheck bool) []string {
	var warnings []string

	subset := algorithm == constants.AlgorithmSubset || crossCheck
	if subset && lots > constants.SubsetWarnLots {
		warnings = append(warnings, fmt.Sprintf(
			"subset enumeration over %d lots may keep up to 2^%d subsets in memory", lots, lots))
	}

	knapsack := algorithm == constants.AlgorithmKnapsack || crossCheck
	if knapsack && funds > constants.KnapsackWarnFunds {
		warnings = append(warnings, fmt.Sprintf(
			"knapsack over total funds %d allocates %d table entries", funds, funds+1))
	}

	return warnings
}

package trader

// choiceNode links a chosen lot to the choice it extends; -1 ends the chain.
type choiceNode struct {
	parent int
	lot    int
}

type knapsackSolver struct{}

func (knapsackSolver) Algorithm() Algorithm { return KnapsackDP }

func (knapsackSolver) EstimateCost(inst Instance) int64 {
	return EstimateCost(KnapsackDP, inst)
}

// Solve runs the 0/1 knapsack recurrence over funds levels 0..capacity, where
// capacity is TotalFunds or the summed cost of the lots that fit, whichever is
// smaller. maxProfit[f] is the best profit with cost at most f and choice[f]
// points at the chain of lots reaching it. Levels are scanned downward so that
// a lot is used at most once per pass. The answer is the smallest level
// holding the overall best profit, which is also the exact cost of its
// selection.
func (knapsackSolver) Solve(inst Instance, params BondParams) Result {
	if len(inst.Lots) == 0 {
		return Result{Algorithm: KnapsackDP}
	}

	profits := make([]int64, len(inst.Lots))
	costs := make([]int64, len(inst.Lots))
	var capacity int64
	for idx, lot := range inst.Lots {
		profits[idx], costs[idx] = ProfitAndCost(lot, params, inst.TotalDays)
		if costs[idx] > inst.TotalFunds {
			continue
		}
		if costs[idx] > inst.TotalFunds-capacity {
			capacity = inst.TotalFunds
		} else {
			capacity += costs[idx]
		}
	}

	maxProfit := make([]int64, capacity+1)
	choice := make([]int, capacity+1)
	for f := range choice {
		choice[f] = -1
	}
	var chains []choiceNode

	for idx := range inst.Lots {
		lotProfit, lotCost := profits[idx], costs[idx]
		if lotCost > capacity {
			continue
		}
		for f := capacity; f >= lotCost; f-- {
			candidate := maxProfit[f-lotCost] + lotProfit
			if candidate <= maxProfit[f] {
				continue
			}
			maxProfit[f] = candidate
			chains = append(chains, choiceNode{parent: choice[f-lotCost], lot: idx})
			choice[f] = len(chains) - 1
		}
	}

	var best int64
	for f := int64(1); f <= capacity; f++ {
		if maxProfit[f] > maxProfit[best] {
			best = f
		}
	}

	return Result{
		Lots:      collectChoice(chains, choice[best]),
		Profit:    maxProfit[best],
		Cost:      best,
		Algorithm: KnapsackDP,
	}
}

func collectChoice(chains []choiceNode, handle int) []int {
	var lots []int
	for h := handle; h >= 0; h = chains[h].parent {
		lots = append(lots, chains[h].lot)
	}
	return reversed(lots)
}

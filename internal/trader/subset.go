package trader

// subsetNode is one admitted subset. The subset is the lot of the node plus
// every lot on the chain of parents up to the root, which is the empty subset.
type subsetNode struct {
	parent int
	lot    int
	cost   int64
	profit int64
}

type subsetSolver struct{}

func (subsetSolver) Algorithm() Algorithm { return SubsetEnumeration }

func (subsetSolver) EstimateCost(inst Instance) int64 {
	return EstimateCost(SubsetEnumeration, inst)
}

// Solve enumerates every subset of lots that fits the budget. Subsets are
// stored in an arena in discovery order; for each lot, every subset admitted
// so far is extended by that lot. The first subset reaching the best profit
// wins. The arena holds up to 2^n nodes.
func (subsetSolver) Solve(inst Instance, params BondParams) Result {
	arena := []subsetNode{{parent: -1, lot: -1}}
	best := 0

	for idx, lot := range inst.Lots {
		lotProfit, lotCost := ProfitAndCost(lot, params, inst.TotalDays)
		for handle, size := 0, len(arena); handle < size; handle++ {
			node := arena[handle]
			if lotCost > inst.TotalFunds-node.cost {
				continue
			}
			cost := node.cost + lotCost
			arena = append(arena, subsetNode{
				parent: handle,
				lot:    idx,
				cost:   cost,
				profit: node.profit + lotProfit,
			})
			if arena[len(arena)-1].profit > arena[best].profit {
				best = len(arena) - 1
			}
		}
	}

	return Result{
		Lots:      collectSubset(arena, best),
		Profit:    arena[best].profit,
		Cost:      arena[best].cost,
		Algorithm: SubsetEnumeration,
	}
}

// collectSubset walks from handle to the root. Lots are appended to the arena
// in input order, so the walk yields descending indices.
func collectSubset(arena []subsetNode, handle int) []int {
	var lots []int
	for h := handle; arena[h].parent >= 0; h = arena[h].parent {
		lots = append(lots, arena[h].lot)
	}
	return reversed(lots)
}

func reversed(lots []int) []int {
	out := make([]int, len(lots))
	for i, lot := range lots {
		out[len(lots)-1-i] = lot
	}
	return out
}

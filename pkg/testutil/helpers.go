// Package testutil provides common utility functions for testing.
package testutil

import (
	"fmt"
	"math/rand"

	"github.com/iwvelando/bond-trader/internal/trader"
	"github.com/shopspring/decimal"
)

// RandomInstance builds a valid instance with n lots spread over up to maxDay
// days. Prices fall between 90.0 and 105.0 percent of par, sizes between 1
// and 5. The header fields are derived from the lots so the result passes
// trader.Validate.
func RandomInstance(rng *rand.Rand, n, maxDay int, funds int64) trader.Instance {
	inst := trader.Instance{TotalFunds: funds}
	perDay := make(map[int]int)
	for i := 0; i < n; i++ {
		day := 1 + rng.Intn(maxDay)
		tenths := 900 + rng.Int63n(151)
		inst.Lots = append(inst.Lots, trader.Lot{
			Day:          day,
			Name:         fmt.Sprintf("bond-%02d", i),
			PricePercent: decimal.New(tenths, -1),
			Size:         1 + rng.Int63n(5),
		})
		perDay[day]++
		if day > inst.TotalDays {
			inst.TotalDays = day
		}
		if perDay[day] > inst.LotCountPerDay {
			inst.LotCountPerDay = perDay[day]
		}
	}
	return inst
}

// SumSelection recomputes profit and cost of res from the profit model.
func SumSelection(inst trader.Instance, params trader.BondParams, res trader.Result) (profit, cost int64) {
	for _, idx := range res.Lots {
		p, c := trader.ProfitAndCost(inst.Lots[idx], params, inst.TotalDays)
		profit += p
		cost += c
	}
	return profit, cost
}

package trader

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Lot is one purchase offer.
type Lot struct {
	Day          int             `json:"day" yaml:"day"`
	Name         string          `json:"name" yaml:"name"`
	PricePercent decimal.Decimal `json:"pricePercent" yaml:"pricePercent"`
	Size         int64           `json:"size" yaml:"size"`
}

// Instance is a complete problem: a budget and the lots on offer. Lot indices
// in Lots identify a selection in Result.
type Instance struct {
	TotalDays      int   `json:"totalDays" yaml:"totalDays"`
	LotCountPerDay int   `json:"lotCountPerDay" yaml:"lotCountPerDay"`
	TotalFunds     int64 `json:"totalFunds" yaml:"totalFunds"`
	Lots           []Lot `json:"lots" yaml:"lots"`
}

// Result is the outcome of one solve.
type Result struct {
	// Lots holds indices into Instance.Lots in ascending order.
	Lots      []int     `json:"lots" yaml:"lots"`
	Profit    int64     `json:"profit" yaml:"profit"`
	Cost      int64     `json:"cost" yaml:"cost"`
	Algorithm Algorithm `json:"algorithm" yaml:"algorithm"`
}

// Selected returns the lots referenced by the result in ascending index order.
func (r Result) Selected(inst Instance) []Lot {
	indices := append([]int(nil), r.Lots...)
	sort.Ints(indices)
	lots := make([]Lot, 0, len(indices))
	for _, idx := range indices {
		lots = append(lots, inst.Lots[idx])
	}
	return lots
}

// Empty reports whether no lot was selected.
func (r Result) Empty() bool {
	return len(r.Lots) == 0
}

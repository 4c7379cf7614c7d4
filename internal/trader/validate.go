package trader

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var (
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

// Validate checks the instance before it is solved. The declared TotalDays
// must equal the latest lot day and LotCountPerDay must equal the largest
// number of lots offered on a single day; an instance without lots must
// declare zero for both. Mismatches are rejected, never corrected.
//
// Neither solver re-validates, so Validate must run first. Solve does this.
func Validate(inst Instance) error {
	if inst.TotalFunds < 0 {
		return fmt.Errorf("%w: total funds must not be negative, got %d", ErrInvalidInstance, inst.TotalFunds)
	}

	maxDay := 0
	maxPerDay := 0
	perDay := make(map[int]int)
	for i, lot := range inst.Lots {
		if err := validateLot(i, lot); err != nil {
			return err
		}
		if lot.Day > maxDay {
			maxDay = lot.Day
		}
		perDay[lot.Day]++
		if perDay[lot.Day] > maxPerDay {
			maxPerDay = perDay[lot.Day]
		}
	}

	if inst.TotalDays != maxDay {
		return fmt.Errorf("%w: invalid total_days value %d, lots span %d days", ErrInvalidInstance, inst.TotalDays, maxDay)
	}
	if inst.LotCountPerDay != maxPerDay {
		return fmt.Errorf("%w: invalid lot_count_per_day value %d, busiest day has %d lots", ErrInvalidInstance, inst.LotCountPerDay, maxPerDay)
	}
	return nil
}

func validateLot(idx int, lot Lot) error {
	switch {
	case lot.Day <= 0:
		return fmt.Errorf("%w: lot %d (%s): day must be positive, got %d", ErrInvalidInstance, idx, lot.Name, lot.Day)
	case lot.Size <= 0:
		return fmt.Errorf("%w: lot %d (%s): size must be positive, got %d", ErrInvalidInstance, idx, lot.Name, lot.Size)
	case lot.PricePercent.IsNegative():
		return fmt.Errorf("%w: lot %d (%s): price must not be negative, got %s", ErrInvalidInstance, idx, lot.Name, lot.PricePercent)
	}
	return nil
}

// ValidateAmounts checks that every amount the solvers derive from inst under
// params fits in int64: the cost and profit of each lot, and the sums of all
// gains and of all losses, which bound the profit of any selection. The
// amounts are computed exactly on decimals. Solve runs it after Validate.
func ValidateAmounts(inst Instance, params BondParams) error {
	par := decimal.NewFromInt(params.ParValue)
	daysFactor := decimal.NewFromInt(int64(inst.TotalDays)).Add(decimal.NewFromInt(params.RedemptionDays))
	payment := decimal.NewFromInt(params.PaymentPerDay)

	gains, losses := decimal.Zero, decimal.Zero
	for i, lot := range inst.Lots {
		price := lot.PricePercent.Mul(par).Shift(-2).Floor()
		size := decimal.NewFromInt(lot.Size)
		cost := size.Mul(price)
		if !fitsInt64(cost) {
			return fmt.Errorf("%w: lot %d (%s): cost %s overflows int64", ErrInvalidInstance, i, lot.Name, cost)
		}
		coupon := daysFactor.Sub(decimal.NewFromInt(int64(lot.Day))).Mul(payment)
		profit := size.Mul(coupon.Add(par.Sub(price)))
		if !fitsInt64(profit) {
			return fmt.Errorf("%w: lot %d (%s): profit %s overflows int64", ErrInvalidInstance, i, lot.Name, profit)
		}
		if profit.IsPositive() {
			gains = gains.Add(profit)
		} else {
			losses = losses.Add(profit)
		}
	}
	if !fitsInt64(gains) || !fitsInt64(losses) {
		return fmt.Errorf("%w: combined lot profits overflow int64", ErrInvalidInstance)
	}
	return nil
}

func fitsInt64(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(minInt64) && d.LessThanOrEqual(maxInt64)
}

package trader

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BondParams describes the bond behind every lot. They are not part of an
// Instance and are supplied by the caller.
type BondParams struct {
	RedemptionDays int64 `json:"redemptionDays" yaml:"redemptionDays"`
	ParValue       int64 `json:"parValue" yaml:"parValue"`
	PaymentPerDay  int64 `json:"paymentPerDay" yaml:"paymentPerDay"`
}

// DefaultBondParams returns a bond redeemed 30 days after the last lot day at
// a par value of 1000 paying 1 per day.
func DefaultBondParams() BondParams {
	return BondParams{
		RedemptionDays: 30,
		ParValue:       1000,
		PaymentPerDay:  1,
	}
}

// Validate checks that the parameters describe a usable bond.
func (p BondParams) Validate() error {
	if p.ParValue <= 0 {
		return fmt.Errorf("%w: par value must be positive, got %d", ErrInvalidBondParams, p.ParValue)
	}
	if p.RedemptionDays < 0 {
		return fmt.Errorf("%w: redemption days must not be negative, got %d", ErrInvalidBondParams, p.RedemptionDays)
	}
	if p.PaymentPerDay < 0 {
		return fmt.Errorf("%w: payment per day must not be negative, got %d", ErrInvalidBondParams, p.PaymentPerDay)
	}
	return nil
}

// LotPrice returns the price of one bond of the lot, floored to a whole unit.
// The product is computed on the decimal price so 97.3% of 1000 is 973.
func LotPrice(lot Lot, parValue int64) int64 {
	return lot.PricePercent.
		Mul(decimal.NewFromInt(parValue)).
		Shift(-2).
		Floor().
		IntPart()
}

// ProfitAndCost returns what buying the whole lot earns by redemption and what
// it costs up front. totalDays is the last day on which lots are offered.
//
// A bond bought on day d pays the coupon for every day until redemption at
// totalDays+RedemptionDays and is then redeemed at par.
//
// The int64 arithmetic wraps, so the result is exact only when the final
// amounts fit; ValidateAmounts checks that.
func ProfitAndCost(lot Lot, params BondParams, totalDays int) (profit, cost int64) {
	price := LotPrice(lot, params.ParValue)
	daysFactor := int64(totalDays) + params.RedemptionDays
	couponPerBond := (daysFactor - int64(lot.Day)) * params.PaymentPerDay
	discountPerBond := params.ParValue - price
	profit = lot.Size * (couponPerBond + discountPerBond)
	cost = lot.Size * price
	return profit, cost
}

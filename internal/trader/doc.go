// Package trader picks the most profitable set of bond lots that fits into a
// funds budget.
//
// A lot is an offer to buy Size bonds on a given day at PricePercent of par.
// Every bond pays a fixed coupon per day until redemption, where the par value
// is returned. Choosing lots under a budget is a 0/1 knapsack problem and is
// solved exactly by one of two algorithms:
//
//   - SubsetEnumeration walks the power set of lots, discarding subsets that
//     exceed the budget. Cost estimate: n·2^n.
//   - KnapsackDP runs a dynamic program over every funds level from 0 to the
//     budget. Cost estimate: n·funds.
//
// Select compares the two estimates and picks the cheaper one. Both algorithms
// return the same optimal profit; when several selections share that profit,
// the selected lots and their cost may differ between them.
//
// Memory: SubsetEnumeration keeps one record per admitted subset, which is
// O(2^n) in the worst case. Nothing bounds it apart from Select steering away
// from it on large instances, so forcing SubsetEnumeration on a few dozen
// cheap lots can exhaust memory. KnapsackDP keeps O(funds) state.
package trader

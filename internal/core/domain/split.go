package domain

import "github.com/shopspring/decimal"

// FundSplit is the distribution of a sale amount across the three earmarked
// funds: 60% withdrawable profit, 30% business growth, 10% expense coverage.
type FundSplit struct {
	Profit     decimal.Decimal
	GrowthFund decimal.Decimal
	Expense    decimal.Decimal
}

var (
	profitShare = decimal.NewFromFloat(0.6)
	growthShare = decimal.NewFromFloat(0.3)
)

// SplitSale distributes a base-currency amount 60/30/10. The profit and
// growth portions are rounded to 2 decimal places and the expense portion
// absorbs the residual, so the three always sum exactly to amount.
func SplitSale(amount decimal.Decimal) FundSplit {
	profit := amount.Mul(profitShare).Round(2)
	growth := amount.Mul(growthShare).Round(2)
	return FundSplit{
		Profit:     profit,
		GrowthFund: growth,
		Expense:    amount.Sub(profit).Sub(growth),
	}
}

// Total returns the sum of the three portions.
func (s FundSplit) Total() decimal.Decimal {
	return s.Profit.Add(s.GrowthFund).Add(s.Expense)
}

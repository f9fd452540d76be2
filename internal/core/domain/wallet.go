package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet is the singleton aggregate holding the business funds. Exactly one
// row exists for the lifetime of the system; every mutation goes through the
// ledger service under a row lock.
type Wallet struct {
	Balance            decimal.Decimal `json:"balance"`
	WithdrawableProfit decimal.Decimal `json:"withdrawable_profit"`
	BusinessGrowthFund decimal.Decimal `json:"business_growth_fund"`
	ExpenseCoverage    decimal.Decimal `json:"expense_coverage"`
	LastUpdated        time.Time       `json:"last_updated"`
}

// Credit applies a sale to the wallet: the full base-currency amount goes to
// the balance and the split portions go to their earmarked funds.
func (w *Wallet) Credit(amount decimal.Decimal, split FundSplit, now time.Time) {
	w.Balance = w.Balance.Add(amount)
	w.WithdrawableProfit = w.WithdrawableProfit.Add(split.Profit)
	w.BusinessGrowthFund = w.BusinessGrowthFund.Add(split.GrowthFund)
	w.ExpenseCoverage = w.ExpenseCoverage.Add(split.Expense)
	w.LastUpdated = now
}

// CanWithdraw reports whether the withdrawable profit covers the amount.
func (w *Wallet) CanWithdraw(amount decimal.Decimal) bool {
	return amount.LessThanOrEqual(w.WithdrawableProfit)
}

// Debit applies a withdrawal. Both the withdrawable profit and the total
// balance are reduced by the full amount; the growth fund and expense
// coverage are left untouched. The caller must have checked CanWithdraw.
func (w *Wallet) Debit(amount decimal.Decimal, now time.Time) {
	w.WithdrawableProfit = w.WithdrawableProfit.Sub(amount)
	w.Balance = w.Balance.Sub(amount)
	w.LastUpdated = now
}

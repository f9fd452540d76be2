package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Withdrawal is an immutable record of a profit payout to the owner's UPI
// account. It is never created when the requested amount exceeds the
// withdrawable profit.
type Withdrawal struct {
	ID              uuid.UUID       `json:"id"`
	Amount          decimal.Decimal `json:"amount"`
	UPIMethod       string          `json:"upi_method"` // e.g. googlepay, phonepay
	UPIID           string          `json:"upi_id"`
	RemainingProfit decimal.Decimal `json:"remaining_profit"` // Withdrawable profit after this payout
	CreatedAt       time.Time       `json:"created_at"`
}

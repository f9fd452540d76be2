package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
	PaymentStatusPending   PaymentStatus = "pending"
)

// Payment is an immutable ledger entry created once per successful sale.
// The profit, growth fund and expense portions sum exactly to AmountINR.
type Payment struct {
	ID               uuid.UUID       `json:"id"`
	PurchaseID       uuid.UUID       `json:"purchase_id"`
	Amount           decimal.Decimal `json:"amount"` // In the original currency
	Currency         string          `json:"currency"`
	AmountINR        decimal.Decimal `json:"amount_inr"` // Normalized to the base currency
	PaymentMethod    string          `json:"payment_method"`
	TransactionID    *string         `json:"transaction_id,omitempty"`
	Status           PaymentStatus   `json:"status"`
	ProfitAmount     decimal.Decimal `json:"profit_amount"`
	GrowthFundAmount decimal.Decimal `json:"growth_fund_amount"`
	ExpenseAmount    decimal.Decimal `json:"expense_amount"`
	CreatedAt        time.Time       `json:"created_at"`
}

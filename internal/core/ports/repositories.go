package ports

import (
	"context"
	"time"

	"ameen-storefront/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletRepository defines persistence operations for the singleton wallet.
// Methods accepting pgx.Tx are used inside transaction blocks for pessimistic
// locking: the sale and withdrawal flows must read, check and update the
// wallet row as one atomic unit.
type WalletRepository interface {
	Get(ctx context.Context) (*domain.Wallet, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx) (*domain.Wallet, error)
	Update(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error
}

// PaymentRepository defines persistence for the append-only payment ledger.
// There are no update or delete operations: payments are immutable.
type PaymentRepository interface {
	Create(ctx context.Context, tx pgx.Tx, p *domain.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	// Aggregate sums payments with created_at in [from, to] inclusive.
	Aggregate(ctx context.Context, from, to time.Time) (*PaymentAggregate, error)
	// SalesByProduct groups the same period's payments by the purchased product.
	SalesByProduct(ctx context.Context, from, to time.Time) ([]ProductSales, error)
}

// PaymentAggregate holds period totals for the sales report.
type PaymentAggregate struct {
	TotalSales   int64
	TotalRevenue decimal.Decimal // Sum of amount_inr
	TotalProfit  decimal.Decimal // Sum of profit_amount
}

// ProductSales is one row of the per-product report grouping.
type ProductSales struct {
	ProductName string          `json:"product_name"`
	Count       int64           `json:"count"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// WithdrawalRepository defines persistence for the append-only withdrawal log.
type WithdrawalRepository interface {
	Create(ctx context.Context, tx pgx.Tx, w *domain.Withdrawal) error
	List(ctx context.Context, limit int) ([]domain.Withdrawal, error)
}

// ProductRepository defines persistence operations for digital products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListActive(ctx context.Context) ([]domain.Product, error)
}

// PurchaseRepository defines persistence operations for purchases.
type PurchaseRepository interface {
	Create(ctx context.Context, p *domain.Purchase) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Purchase, error)
	GetByDownloadLink(ctx context.Context, link string) (*domain.Purchase, error)
	SetPaymentID(ctx context.Context, id uuid.UUID, paymentID uuid.UUID) error
	IncrementDownloadCount(ctx context.Context, id uuid.UUID) (int, error)
}

// NotificationRepository defines persistence for admin notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	List(ctx context.Context, limit int) ([]domain.Notification, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

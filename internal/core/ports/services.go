package ports

import (
	"context"
	"time"

	"ameen-storefront/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CurrencyRates resolves a currency code to its conversion rate into the
// base currency. Unrecognized codes resolve to 1.0 with found=false.
type CurrencyRates interface {
	RateFor(code string) (rate decimal.Decimal, found bool)
}

// LedgerEvent describes a fund movement for the notification feed.
type LedgerEvent struct {
	Title   string
	Message string
	Type    domain.NotificationType
	Amount  decimal.Decimal
	Method  string
}

// NotificationSink receives ledger events for the admin notification feed.
// Delivery is best effort: a failed notification never fails the operation
// that produced it.
type NotificationSink interface {
	Notify(ctx context.Context, event LedgerEvent) error
}

// WalletSummaryCache caches the serialized wallet summary between mutations.
type WalletSummaryCache interface {
	Get(ctx context.Context) ([]byte, error) // Returns cached summary JSON or nil
	Set(ctx context.Context, value []byte, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// --- Service Ports (Business Logic) ---

// LedgerService maintains the wallet invariant and the append-only trail of
// fund movements.
type LedgerService interface {
	RecordSale(ctx context.Context, req SaleRequest) (*domain.Payment, error)
	Withdraw(ctx context.Context, req WithdrawalRequest) (*domain.Withdrawal, error)
	ListWithdrawals(ctx context.Context, limit int) ([]domain.Withdrawal, error)
	GetWalletSummary(ctx context.Context) (*domain.Wallet, error)
	GetSalesReport(ctx context.Context, from, to *time.Time) (*SalesReport, error)
}

// SaleRequest holds validated input for recording a sale.
type SaleRequest struct {
	PurchaseID    uuid.UUID
	Amount        decimal.Decimal // In Currency units
	Currency      string
	PaymentMethod string
	TransactionID *string
}

// WithdrawalRequest holds validated input for a profit withdrawal.
type WithdrawalRequest struct {
	Amount    decimal.Decimal
	UPIMethod string
	UPIID     string
}

// SalesReport aggregates the payment ledger over a period.
type SalesReport struct {
	PeriodStart  time.Time       `json:"period_start"`
	PeriodEnd    time.Time       `json:"period_end"`
	TotalSales   int64           `json:"total_sales"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
	ByProduct    []ProductSales  `json:"sales_by_product"`
}

// CatalogService manages digital products, purchases and downloads.
type CatalogService interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Purchase(ctx context.Context, req PurchaseRequest) (*PurchaseResult, error)
	TrackDownload(ctx context.Context, link string) (*DownloadResult, error)
}

// CreateProductRequest holds validated input for product creation.
type CreateProductRequest struct {
	Title         string
	Description   string
	Price         decimal.Decimal
	Category      string
	PreviewImages []string
	DownloadFile  string
	Tags          []string
}

// PurchaseRequest holds validated input for purchasing a product.
type PurchaseRequest struct {
	ProductID     uuid.UUID
	CustomerID    string
	Amount        decimal.Decimal
	Currency      string
	PaymentMethod string
	TransactionID *string
}

// PurchaseResult pairs the purchase with the ledger payment it produced.
type PurchaseResult struct {
	Purchase *domain.Purchase `json:"purchase"`
	Payment  *domain.Payment  `json:"payment"`
}

// DownloadResult is the outcome of resolving a download link.
type DownloadResult struct {
	File          string `json:"file"`
	DownloadCount int    `json:"download_count"`
}

// NotificationService lists persisted notifications and acts as the sink.
type NotificationService interface {
	NotificationSink
	List(ctx context.Context, limit int) ([]domain.Notification, error)
}

// AssistantService is the rule-based owner-command responder. It only
// formats ledger read results into reply strings.
type AssistantService interface {
	Reply(ctx context.Context, message string) (string, error)
}

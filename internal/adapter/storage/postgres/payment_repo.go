package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ameen-storefront/internal/core/domain"
	"ameen-storefront/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PaymentRepo implements ports.PaymentRepository. Payments are an append-only
// ledger, so there are no update or delete statements here.
type PaymentRepo struct {
	pool Pool
}

// NewPaymentRepo creates a new PaymentRepo.
func NewPaymentRepo(pool Pool) *PaymentRepo {
	return &PaymentRepo{pool: pool}
}

// Create inserts a payment within the sale transaction.
func (r *PaymentRepo) Create(ctx context.Context, tx pgx.Tx, p *domain.Payment) error {
	query := `INSERT INTO payments (id, purchase_id, amount, currency, amount_inr,
		payment_method, transaction_id, status, profit_amount, growth_fund_amount,
		expense_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := tx.Exec(ctx, query,
		p.ID, p.PurchaseID, p.Amount, p.Currency, p.AmountINR,
		p.PaymentMethod, p.TransactionID, p.Status, p.ProfitAmount,
		p.GrowthFundAmount, p.ExpenseAmount, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID fetches a payment by its UUID.
func (r *PaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	query := `SELECT id, purchase_id, amount, currency, amount_inr, payment_method,
		transaction_id, status, profit_amount, growth_fund_amount, expense_amount, created_at
		FROM payments WHERE id = $1`

	p := &domain.Payment{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.PurchaseID, &p.Amount, &p.Currency, &p.AmountINR,
		&p.PaymentMethod, &p.TransactionID, &p.Status, &p.ProfitAmount,
		&p.GrowthFundAmount, &p.ExpenseAmount, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment by id: %w", err)
	}
	return p, nil
}

// Aggregate sums completed payments created within [from, to].
func (r *PaymentRepo) Aggregate(ctx context.Context, from, to time.Time) (*ports.PaymentAggregate, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(amount_inr), 0), COALESCE(SUM(profit_amount), 0)
		FROM payments
		WHERE status = 'completed' AND created_at >= $1 AND created_at <= $2`

	agg := &ports.PaymentAggregate{}
	err := r.pool.QueryRow(ctx, query, from, to).Scan(
		&agg.TotalSales, &agg.TotalRevenue, &agg.TotalProfit,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate payments: %w", err)
	}
	return agg, nil
}

// SalesByProduct groups the period's completed payments by product.
func (r *PaymentRepo) SalesByProduct(ctx context.Context, from, to time.Time) ([]ports.ProductSales, error) {
	query := `SELECT pr.title, COUNT(*), COALESCE(SUM(p.amount_inr), 0)
		FROM payments p
		JOIN purchases pu ON pu.id = p.purchase_id
		JOIN products pr ON pr.id = pu.product_id
		WHERE p.status = 'completed' AND p.created_at >= $1 AND p.created_at <= $2
		GROUP BY pr.title
		ORDER BY SUM(p.amount_inr) DESC`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("sales by product: %w", err)
	}
	defer rows.Close()

	var out []ports.ProductSales
	for rows.Next() {
		var s ports.ProductSales
		if err := rows.Scan(&s.ProductName, &s.Count, &s.Revenue); err != nil {
			return nil, fmt.Errorf("scan product sales row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product sales rows: %w", err)
	}
	return out, nil
}

package postgres

import (
	"context"
	"fmt"

	"ameen-storefront/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// WalletRepo implements ports.WalletRepository. The wallet table holds a
// single row (id = 1), seeded by the migrations; there is no Create.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Get fetches the wallet without locking.
func (r *WalletRepo) Get(ctx context.Context) (*domain.Wallet, error) {
	query := `SELECT balance, withdrawable_profit, business_growth_fund, expense_coverage, last_updated
		FROM wallet WHERE id = 1`

	w := &domain.Wallet{}
	err := r.pool.QueryRow(ctx, query).Scan(
		&w.Balance, &w.WithdrawableProfit, &w.BusinessGrowthFund,
		&w.ExpenseCoverage, &w.LastUpdated,
	)
	if err != nil {
		return nil, fmt.Errorf("get wallet: %w", err)
	}
	return w, nil
}

// GetForUpdate fetches the wallet row with pessimistic locking.
// This MUST be called within a transaction.
func (r *WalletRepo) GetForUpdate(ctx context.Context, tx pgx.Tx) (*domain.Wallet, error) {
	query := `SELECT balance, withdrawable_profit, business_growth_fund, expense_coverage, last_updated
		FROM wallet WHERE id = 1 FOR UPDATE`

	w := &domain.Wallet{}
	err := tx.QueryRow(ctx, query).Scan(
		&w.Balance, &w.WithdrawableProfit, &w.BusinessGrowthFund,
		&w.ExpenseCoverage, &w.LastUpdated,
	)
	if err != nil {
		return nil, fmt.Errorf("get wallet for update: %w", err)
	}
	return w, nil
}

// Update writes all wallet figures within a transaction.
func (r *WalletRepo) Update(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	query := `UPDATE wallet SET balance = $1, withdrawable_profit = $2,
		business_growth_fund = $3, expense_coverage = $4, last_updated = $5
		WHERE id = 1`

	tag, err := tx.Exec(ctx, query,
		w.Balance, w.WithdrawableProfit, w.BusinessGrowthFund,
		w.ExpenseCoverage, w.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("update wallet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet row missing, run migrations")
	}
	return nil
}

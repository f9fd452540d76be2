package postgres

import (
	"context"
	"fmt"

	"ameen-storefront/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// WithdrawalRepo implements ports.WithdrawalRepository.
type WithdrawalRepo struct {
	pool Pool
}

// NewWithdrawalRepo creates a new WithdrawalRepo.
func NewWithdrawalRepo(pool Pool) *WithdrawalRepo {
	return &WithdrawalRepo{pool: pool}
}

// Create inserts a withdrawal within the payout transaction.
func (r *WithdrawalRepo) Create(ctx context.Context, tx pgx.Tx, w *domain.Withdrawal) error {
	query := `INSERT INTO withdrawals (id, amount, upi_method, upi_id, remaining_profit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := tx.Exec(ctx, query,
		w.ID, w.Amount, w.UPIMethod, w.UPIID, w.RemainingProfit, w.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert withdrawal: %w", err)
	}
	return nil
}

// List returns the most recent withdrawals, newest first.
func (r *WithdrawalRepo) List(ctx context.Context, limit int) ([]domain.Withdrawal, error) {
	query := `SELECT id, amount, upi_method, upi_id, remaining_profit, created_at
		FROM withdrawals ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}
	defer rows.Close()

	var out []domain.Withdrawal
	for rows.Next() {
		var w domain.Withdrawal
		if err := rows.Scan(&w.ID, &w.Amount, &w.UPIMethod, &w.UPIID, &w.RemainingProfit, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan withdrawal row: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate withdrawal rows: %w", err)
	}
	return out, nil
}

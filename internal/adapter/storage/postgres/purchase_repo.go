package postgres

import (
	"context"
	"errors"
	"fmt"

	"ameen-storefront/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PurchaseRepo implements ports.PurchaseRepository.
type PurchaseRepo struct {
	pool Pool
}

// NewPurchaseRepo creates a new PurchaseRepo.
func NewPurchaseRepo(pool Pool) *PurchaseRepo {
	return &PurchaseRepo{pool: pool}
}

// Create inserts a new purchase.
func (r *PurchaseRepo) Create(ctx context.Context, p *domain.Purchase) error {
	query := `INSERT INTO purchases (id, product_id, customer_id, payment_id,
		download_link, download_count, download_expiry, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.ProductID, p.CustomerID, p.PaymentID,
		p.DownloadLink, p.DownloadCount, p.DownloadExpiry, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// GetByID fetches a purchase by its UUID.
func (r *PurchaseRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Purchase, error) {
	query := `SELECT id, product_id, customer_id, payment_id, download_link,
		download_count, download_expiry, created_at
		FROM purchases WHERE id = $1`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// GetByDownloadLink fetches a purchase by its download link.
func (r *PurchaseRepo) GetByDownloadLink(ctx context.Context, link string) (*domain.Purchase, error) {
	query := `SELECT id, product_id, customer_id, payment_id, download_link,
		download_count, download_expiry, created_at
		FROM purchases WHERE download_link = $1`

	return r.scanOne(r.pool.QueryRow(ctx, query, link))
}

// SetPaymentID links the ledger payment back to the purchase.
func (r *PurchaseRepo) SetPaymentID(ctx context.Context, id uuid.UUID, paymentID uuid.UUID) error {
	query := `UPDATE purchases SET payment_id = $1 WHERE id = $2`

	tag, err := r.pool.Exec(ctx, query, paymentID, id)
	if err != nil {
		return fmt.Errorf("set purchase payment id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("purchase not found: %s", id)
	}
	return nil
}

// IncrementDownloadCount bumps the download counter and returns the new value.
func (r *PurchaseRepo) IncrementDownloadCount(ctx context.Context, id uuid.UUID) (int, error) {
	query := `UPDATE purchases SET download_count = download_count + 1
		WHERE id = $1 RETURNING download_count`

	var count int
	if err := r.pool.QueryRow(ctx, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("increment download count: %w", err)
	}
	return count, nil
}

func (r *PurchaseRepo) scanOne(row pgx.Row) (*domain.Purchase, error) {
	p := &domain.Purchase{}
	err := row.Scan(
		&p.ID, &p.ProductID, &p.CustomerID, &p.PaymentID,
		&p.DownloadLink, &p.DownloadCount, &p.DownloadExpiry, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return p, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"ameen-storefront/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepo implements ports.ProductRepository. Preview images and tags are
// stored as text arrays.
type ProductRepo struct {
	pool Pool
}

// NewProductRepo creates a new ProductRepo.
func NewProductRepo(pool Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

// Create inserts a new product.
func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (id, title, description, price, category,
		preview_images, download_file, is_active, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Title, p.Description, p.Price, p.Category,
		p.PreviewImages, p.DownloadFile, p.IsActive, p.Tags,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID fetches a product by its UUID.
func (r *ProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT id, title, description, price, category, preview_images,
		download_file, is_active, tags, created_at, updated_at
		FROM products WHERE id = $1`

	p := &domain.Product{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.Category,
		&p.PreviewImages, &p.DownloadFile, &p.IsActive, &p.Tags,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return p, nil
}

// ListActive returns all active products, newest first.
func (r *ProductRepo) ListActive(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT id, title, description, price, category, preview_images,
		download_file, is_active, tags, created_at, updated_at
		FROM products WHERE is_active ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active products: %w", err)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.Price, &p.Category,
			&p.PreviewImages, &p.DownloadFile, &p.IsActive, &p.Tags,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}
	return out, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"ameen-storefront/internal/core/domain"
	"ameen-storefront/internal/core/ports"
	"ameen-storefront/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CatalogServiceImpl implements ports.CatalogService.
type CatalogServiceImpl struct {
	productRepo  ports.ProductRepository
	purchaseRepo ports.PurchaseRepository
	ledger       ports.LedgerService
	log          zerolog.Logger
}

// NewCatalogService creates a new CatalogServiceImpl.
func NewCatalogService(
	productRepo ports.ProductRepository,
	purchaseRepo ports.PurchaseRepository,
	ledger ports.LedgerService,
	log zerolog.Logger,
) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
		ledger:       ledger,
		log:          log,
	}
}

// CreateProduct validates and stores a new digital product.
func (s *CatalogServiceImpl) CreateProduct(ctx context.Context, req ports.CreateProductRequest) (*domain.Product, error) {
	if !req.Price.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}
	if !domain.IsValidCategory(req.Category) {
		return nil, apperror.ErrInvalidCategory(req.Category)
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:            uuid.New(),
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		Category:      req.Category,
		PreviewImages: req.PreviewImages,
		DownloadFile:  req.DownloadFile,
		IsActive:      true,
		Tags:          req.Tags,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create product: %w", err))
	}

	s.log.Info().
		Str("product_id", product.ID.String()).
		Str("title", product.Title).
		Str("category", product.Category).
		Msg("digital product created")

	return product, nil
}

// ListProducts returns all active products.
func (s *CatalogServiceImpl) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.productRepo.ListActive(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list products: %w", err))
	}
	return products, nil
}

// GetProduct fetches a single product by id.
func (s *CatalogServiceImpl) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get product: %w", err))
	}
	if product == nil {
		return nil, apperror.ErrNotFound("Product")
	}
	return product, nil
}

// Purchase creates the purchase record with its download entitlement, then
// records the sale in the ledger and links the resulting payment back to the
// purchase.
func (s *CatalogServiceImpl) Purchase(ctx context.Context, req ports.PurchaseRequest) (*ports.PurchaseResult, error) {
	if !req.Amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get product: %w", err))
	}
	if product == nil {
		return nil, apperror.ErrNotFound("Product")
	}
	if !product.IsActive {
		return nil, apperror.ErrProductInactive()
	}

	now := time.Now().UTC()
	purchase := &domain.Purchase{
		ID:             uuid.New(),
		ProductID:      product.ID,
		CustomerID:     req.CustomerID,
		DownloadLink:   "download/" + uuid.NewString(),
		DownloadCount:  0,
		DownloadExpiry: now.Add(domain.DownloadValidity),
		CreatedAt:      now,
	}

	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create purchase: %w", err))
	}

	payment, err := s.ledger.RecordSale(ctx, ports.SaleRequest{
		PurchaseID:    purchase.ID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		return nil, fmt.Errorf("record sale: %w", err)
	}

	if err := s.purchaseRepo.SetPaymentID(ctx, purchase.ID, payment.ID); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("link payment to purchase: %w", err))
	}
	purchase.PaymentID = &payment.ID

	s.log.Info().
		Str("purchase_id", purchase.ID.String()).
		Str("product_id", product.ID.String()).
		Str("payment_id", payment.ID.String()).
		Str("currency", req.Currency).
		Msg("purchase processed")

	return &ports.PurchaseResult{Purchase: purchase, Payment: payment}, nil
}

// TrackDownload resolves a download link, enforces expiry and bumps the
// download counter.
func (s *CatalogServiceImpl) TrackDownload(ctx context.Context, link string) (*ports.DownloadResult, error) {
	purchase, err := s.purchaseRepo.GetByDownloadLink(ctx, link)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get purchase by link: %w", err))
	}
	if purchase == nil {
		return nil, apperror.ErrNotFound("Download")
	}
	if purchase.DownloadExpired(time.Now().UTC()) {
		return nil, apperror.ErrDownloadExpired()
	}

	product, err := s.productRepo.GetByID(ctx, purchase.ProductID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get product: %w", err))
	}
	if product == nil {
		return nil, apperror.ErrNotFound("Product")
	}

	count, err := s.purchaseRepo.IncrementDownloadCount(ctx, purchase.ID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("increment download count: %w", err))
	}

	s.log.Info().
		Str("purchase_id", purchase.ID.String()).
		Str("product_id", product.ID.String()).
		Int("download_count", count).
		Msg("download tracked")

	return &ports.DownloadResult{File: product.DownloadFile, DownloadCount: count}, nil
}

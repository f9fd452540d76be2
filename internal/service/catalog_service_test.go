package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ameen-storefront/internal/core/domain"
	"ameen-storefront/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogTestDeps struct {
	svc          *CatalogServiceImpl
	productRepo  *fakeProductRepo
	purchaseRepo *fakePurchaseRepo
	ledger       *ledgerTestDeps
}

func setupCatalogService(t *testing.T) *catalogTestDeps {
	t.Helper()
	ledger := setupLedgerService(t)
	d := &catalogTestDeps{
		productRepo:  newFakeProductRepo(),
		purchaseRepo: newFakePurchaseRepo(),
		ledger:       ledger,
	}
	d.svc = NewCatalogService(d.productRepo, d.purchaseRepo, ledger.svc, zerolog.Nop())
	return d
}

func (d *catalogTestDeps) seedProduct(t *testing.T, price string) *domain.Product {
	t.Helper()
	product, err := d.svc.CreateProduct(context.Background(), ports.CreateProductRequest{
		Title:        "Ramadan Planner",
		Description:  "30-day printable planner",
		Price:        dec(price),
		Category:     "planner",
		DownloadFile: "files/ramadan-planner.pdf",
		Tags:         []string{"ramadan", "printable"},
	})
	require.NoError(t, err)
	return product
}

func TestCatalogService_CreateProduct(t *testing.T) {
	d := setupCatalogService(t)

	product := d.seedProduct(t, "499")

	assert.NotEqual(t, uuid.Nil, product.ID)
	assert.True(t, product.IsActive, "new products are active by default")
	assert.Equal(t, "planner", product.Category)
	assert.False(t, product.CreatedAt.IsZero())

	stored, err := d.productRepo.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, product.Title, stored.Title)
}

func TestCatalogService_CreateProduct_Invalid(t *testing.T) {
	d := setupCatalogService(t)
	ctx := context.Background()

	_, err := d.svc.CreateProduct(ctx, ports.CreateProductRequest{
		Title: "Free Thing", Price: dec("0"), Category: "ebook",
	})
	assertAppError(t, err, "LED_002")

	_, err = d.svc.CreateProduct(ctx, ports.CreateProductRequest{
		Title: "Mystery Box", Price: dec("100"), Category: "gadgets",
	})
	assertAppError(t, err, "CAT_002")
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	d := setupCatalogService(t)

	_, err := d.svc.GetProduct(context.Background(), uuid.New())
	assertAppError(t, err, "CAT_001")
}

func TestCatalogService_ListProducts_OnlyActive(t *testing.T) {
	d := setupCatalogService(t)
	ctx := context.Background()

	active := d.seedProduct(t, "499")
	inactive := d.seedProduct(t, "299")
	d.productRepo.products[inactive.ID].IsActive = false

	products, err := d.svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, active.ID, products[0].ID)
}

func TestCatalogService_Purchase(t *testing.T) {
	d := setupCatalogService(t)
	ctx := context.Background()
	product := d.seedProduct(t, "1500")

	result, err := d.svc.Purchase(ctx, ports.PurchaseRequest{
		ProductID:     product.ID,
		CustomerID:    "customer@example.com",
		Amount:        dec("1500"),
		Currency:      "INR",
		PaymentMethod: "phonepay",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Purchase)
	require.NotNil(t, result.Payment)

	assert.Equal(t, product.ID, result.Purchase.ProductID)
	assert.Contains(t, result.Purchase.DownloadLink, "download/")
	assert.Zero(t, result.Purchase.DownloadCount)

	// Entitlement lasts one year from purchase.
	wantExpiry := result.Purchase.CreatedAt.Add(domain.DownloadValidity)
	assert.Equal(t, wantExpiry, result.Purchase.DownloadExpiry)

	// The sale landed in the ledger.
	assert.Equal(t, result.Purchase.ID, result.Payment.PurchaseID)
	assert.True(t, d.ledger.walletRepo.wallet.Balance.Equal(dec("1500")))

	// The payment is linked back to the stored purchase.
	stored, err := d.purchaseRepo.GetByID(ctx, result.Purchase.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PaymentID)
	assert.Equal(t, result.Payment.ID, *stored.PaymentID)
}

func TestCatalogService_Purchase_UnknownProduct(t *testing.T) {
	d := setupCatalogService(t)

	_, err := d.svc.Purchase(context.Background(), ports.PurchaseRequest{
		ProductID: uuid.New(), Amount: dec("100"), Currency: "INR", PaymentMethod: "upi",
	})
	assertAppError(t, err, "CAT_001")
	assert.Empty(t, d.purchaseRepo.purchases)
}

func TestCatalogService_Purchase_InactiveProduct(t *testing.T) {
	d := setupCatalogService(t)
	product := d.seedProduct(t, "499")
	d.productRepo.products[product.ID].IsActive = false

	_, err := d.svc.Purchase(context.Background(), ports.PurchaseRequest{
		ProductID: product.ID, Amount: dec("499"), Currency: "INR", PaymentMethod: "upi",
	})
	assertAppError(t, err, "CAT_004")
}

func TestCatalogService_Purchase_LedgerFailure(t *testing.T) {
	d := setupCatalogService(t)
	product := d.seedProduct(t, "499")
	d.ledger.walletRepo.updateErr = errors.New("connection reset")

	_, err := d.svc.Purchase(context.Background(), ports.PurchaseRequest{
		ProductID: product.ID, Amount: dec("499"), Currency: "INR", PaymentMethod: "upi",
	})
	assertAppError(t, err, "SYS_001")
	assert.True(t, d.ledger.walletRepo.wallet.Balance.IsZero())
}

func TestCatalogService_TrackDownload(t *testing.T) {
	d := setupCatalogService(t)
	ctx := context.Background()
	product := d.seedProduct(t, "499")

	result, err := d.svc.Purchase(ctx, ports.PurchaseRequest{
		ProductID: product.ID, Amount: dec("499"), Currency: "INR", PaymentMethod: "upi",
	})
	require.NoError(t, err)

	first, err := d.svc.TrackDownload(ctx, result.Purchase.DownloadLink)
	require.NoError(t, err)
	assert.Equal(t, product.DownloadFile, first.File)
	assert.Equal(t, 1, first.DownloadCount)

	second, err := d.svc.TrackDownload(ctx, result.Purchase.DownloadLink)
	require.NoError(t, err)
	assert.Equal(t, 2, second.DownloadCount)
}

func TestCatalogService_TrackDownload_UnknownLink(t *testing.T) {
	d := setupCatalogService(t)

	_, err := d.svc.TrackDownload(context.Background(), "download/nope")
	assertAppError(t, err, "CAT_001")
}

func TestCatalogService_TrackDownload_Expired(t *testing.T) {
	d := setupCatalogService(t)
	ctx := context.Background()
	product := d.seedProduct(t, "499")

	result, err := d.svc.Purchase(ctx, ports.PurchaseRequest{
		ProductID: product.ID, Amount: dec("499"), Currency: "INR", PaymentMethod: "upi",
	})
	require.NoError(t, err)

	// Age the entitlement past its expiry.
	d.purchaseRepo.purchases[result.Purchase.ID].DownloadExpiry = time.Now().UTC().Add(-time.Hour)

	_, err = d.svc.TrackDownload(ctx, result.Purchase.DownloadLink)
	assertAppError(t, err, "CAT_003")

	// Expired downloads are not counted.
	assert.Zero(t, d.purchaseRepo.purchases[result.Purchase.ID].DownloadCount)
}

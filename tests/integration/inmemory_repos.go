package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"ameen-storefront/internal/core/domain"
	"ameen-storefront/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// --- In-Memory Wallet Repo ---

type inMemoryWalletRepo struct {
	mu     sync.RWMutex
	wallet domain.Wallet
}

func newInMemoryWalletRepo() *inMemoryWalletRepo {
	return &inMemoryWalletRepo{
		wallet: domain.Wallet{
			Balance:            decimal.Zero,
			WithdrawableProfit: decimal.Zero,
			BusinessGrowthFund: decimal.Zero,
			ExpenseCoverage:    decimal.Zero,
			LastUpdated:        time.Now().UTC(),
		},
	}
}

func (r *inMemoryWalletRepo) Get(ctx context.Context) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w := r.wallet
	return &w, nil
}

func (r *inMemoryWalletRepo) GetForUpdate(ctx context.Context, tx pgx.Tx) (*domain.Wallet, error) {
	return r.Get(ctx)
}

func (r *inMemoryWalletRepo) Update(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wallet = *w
	return nil
}

// --- In-Memory Product Repo ---

type inMemoryProductRepo struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*domain.Product
}

func newInMemoryProductRepo() *inMemoryProductRepo {
	return &inMemoryProductRepo{products: make(map[uuid.UUID]*domain.Product)}
}

func (r *inMemoryProductRepo) Create(ctx context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *inMemoryProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *inMemoryProductRepo) ListActive(ctx context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Product
	for _, p := range r.products {
		if p.IsActive {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// --- In-Memory Purchase Repo ---

type inMemoryPurchaseRepo struct {
	mu        sync.RWMutex
	purchases map[uuid.UUID]*domain.Purchase
}

func newInMemoryPurchaseRepo() *inMemoryPurchaseRepo {
	return &inMemoryPurchaseRepo{purchases: make(map[uuid.UUID]*domain.Purchase)}
}

func (r *inMemoryPurchaseRepo) Create(ctx context.Context, p *domain.Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.purchases[p.ID] = &cp
	return nil
}

func (r *inMemoryPurchaseRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Purchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.purchases[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *inMemoryPurchaseRepo) GetByDownloadLink(ctx context.Context, link string) (*domain.Purchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.purchases {
		if p.DownloadLink == link {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryPurchaseRepo) SetPaymentID(ctx context.Context, id uuid.UUID, paymentID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.purchases[id]
	if !ok {
		return fmt.Errorf("purchase not found")
	}
	p.PaymentID = &paymentID
	return nil
}

func (r *inMemoryPurchaseRepo) IncrementDownloadCount(ctx context.Context, id uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.purchases[id]
	if !ok {
		return 0, fmt.Errorf("purchase not found")
	}
	p.DownloadCount++
	return p.DownloadCount, nil
}

// --- In-Memory Payment Repo ---

// inMemoryPaymentRepo resolves product titles through the purchase and
// product repos the same way the SQL implementation joins the three tables.
type inMemoryPaymentRepo struct {
	mu        sync.RWMutex
	payments  map[uuid.UUID]*domain.Payment
	purchases *inMemoryPurchaseRepo
	products  *inMemoryProductRepo
}

func newInMemoryPaymentRepo(purchases *inMemoryPurchaseRepo, products *inMemoryProductRepo) *inMemoryPaymentRepo {
	return &inMemoryPaymentRepo{
		payments:  make(map[uuid.UUID]*domain.Payment),
		purchases: purchases,
		products:  products,
	}
}

func (r *inMemoryPaymentRepo) Create(ctx context.Context, tx pgx.Tx, p *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

func (r *inMemoryPaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *inMemoryPaymentRepo) Aggregate(ctx context.Context, from, to time.Time) (*ports.PaymentAggregate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	agg := &ports.PaymentAggregate{
		TotalRevenue: decimal.Zero,
		TotalProfit:  decimal.Zero,
	}
	for _, p := range r.payments {
		if !r.inPeriod(p, from, to) {
			continue
		}
		agg.TotalSales++
		agg.TotalRevenue = agg.TotalRevenue.Add(p.AmountINR)
		agg.TotalProfit = agg.TotalProfit.Add(p.ProfitAmount)
	}
	return agg, nil
}

func (r *inMemoryPaymentRepo) SalesByProduct(ctx context.Context, from, to time.Time) ([]ports.ProductSales, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	byTitle := make(map[string]*ports.ProductSales)
	for _, p := range r.payments {
		if !r.inPeriod(p, from, to) {
			continue
		}
		title := r.productTitle(ctx, p.PurchaseID)
		s, ok := byTitle[title]
		if !ok {
			s = &ports.ProductSales{ProductName: title, Revenue: decimal.Zero}
			byTitle[title] = s
		}
		s.Count++
		s.Revenue = s.Revenue.Add(p.AmountINR)
	}
	result := make([]ports.ProductSales, 0, len(byTitle))
	for _, s := range byTitle {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Revenue.GreaterThan(result[j].Revenue)
	})
	return result, nil
}

func (r *inMemoryPaymentRepo) inPeriod(p *domain.Payment, from, to time.Time) bool {
	if p.Status != domain.PaymentStatusCompleted {
		return false
	}
	return !p.CreatedAt.Before(from) && !p.CreatedAt.After(to)
}

func (r *inMemoryPaymentRepo) productTitle(ctx context.Context, purchaseID uuid.UUID) string {
	purchase, _ := r.purchases.GetByID(ctx, purchaseID)
	if purchase == nil {
		return "unknown"
	}
	product, _ := r.products.GetByID(ctx, purchase.ProductID)
	if product == nil {
		return "unknown"
	}
	return product.Title
}

// --- In-Memory Withdrawal Repo ---

type inMemoryWithdrawalRepo struct {
	mu          sync.RWMutex
	withdrawals []domain.Withdrawal
}

func newInMemoryWithdrawalRepo() *inMemoryWithdrawalRepo {
	return &inMemoryWithdrawalRepo{}
}

func (r *inMemoryWithdrawalRepo) Create(ctx context.Context, tx pgx.Tx, w *domain.Withdrawal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.withdrawals = append(r.withdrawals, *w)
	return nil
}

func (r *inMemoryWithdrawalRepo) List(ctx context.Context, limit int) ([]domain.Withdrawal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.Withdrawal, len(r.withdrawals))
	copy(result, r.withdrawals)
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// --- In-Memory Notification Repo ---

type inMemoryNotificationRepo struct {
	mu            sync.RWMutex
	notifications []domain.Notification
}

func newInMemoryNotificationRepo() *inMemoryNotificationRepo {
	return &inMemoryNotificationRepo{}
}

func (r *inMemoryNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *inMemoryNotificationRepo) List(ctx context.Context, limit int) ([]domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.Notification, len(r.notifications))
	copy(result, r.notifications)
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// --- In-Memory Transactor ---

// inMemoryTransactor serializes transactions with a mutex, standing in for
// the row lock that SELECT FOR UPDATE takes on the wallet in production.
// Begin blocks until the previous transaction commits or rolls back, so the
// read-check-update flow in the ledger service stays atomic under
// concurrent requests.
type inMemoryTransactor struct {
	mu sync.Mutex
}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	t.mu.Lock()
	return &memTx{release: &t.mu}, nil
}

// memTx is a pgx.Tx whose only real behavior is releasing the transactor
// lock. Commit and the deferred Rollback both run in the service, so the
// unlock must happen exactly once.
type memTx struct {
	release *sync.Mutex
	once    sync.Once
}

func (t *memTx) done() {
	t.once.Do(t.release.Unlock)
}

func (t *memTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *memTx) Commit(ctx context.Context) error          { t.done(); return nil }
func (t *memTx) Rollback(ctx context.Context) error        { t.done(); return nil }
func (t *memTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *memTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *memTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *memTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *memTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *memTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *memTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *memTx) Conn() *pgx.Conn { return nil }

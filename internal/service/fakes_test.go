package service

import (
	"context"
	"sync"
	"time"

	"ameen-storefront/internal/core/domain"
	"ameen-storefront/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// fakeTx implements pgx.Tx for testing.
type fakeTx struct {
	pgx.Tx
	commitErr error
}

func (t *fakeTx) Commit(_ context.Context) error   { return t.commitErr }
func (t *fakeTx) Rollback(_ context.Context) error { return nil }

type fakeTransactor struct {
	tx       *fakeTx
	beginErr error
	begun    int
}

func (f *fakeTransactor) Begin(_ context.Context) (pgx.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	f.begun++
	if f.tx == nil {
		f.tx = &fakeTx{}
	}
	return f.tx, nil
}

// fakeWalletRepo keeps the wallet in memory. GetForUpdate hands out a copy,
// so a failed flow that never calls Update leaves the stored state intact.
type fakeWalletRepo struct {
	mu        sync.Mutex
	wallet    domain.Wallet
	getErr    error
	updateErr error
}

func (r *fakeWalletRepo) Get(_ context.Context) (*domain.Wallet, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	w := r.wallet
	return &w, nil
}

func (r *fakeWalletRepo) GetForUpdate(_ context.Context, _ pgx.Tx) (*domain.Wallet, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	w := r.wallet
	return &w, nil
}

func (r *fakeWalletRepo) Update(_ context.Context, _ pgx.Tx, w *domain.Wallet) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wallet = *w
	return nil
}

type fakePaymentRepo struct {
	payments  []domain.Payment
	createErr error
	byProduct []ports.ProductSales
}

func (r *fakePaymentRepo) Create(_ context.Context, _ pgx.Tx, p *domain.Payment) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.payments = append(r.payments, *p)
	return nil
}

func (r *fakePaymentRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Payment, error) {
	for i := range r.payments {
		if r.payments[i].ID == id {
			p := r.payments[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) Aggregate(_ context.Context, from, to time.Time) (*ports.PaymentAggregate, error) {
	agg := &ports.PaymentAggregate{}
	for _, p := range r.payments {
		if p.CreatedAt.Before(from) || p.CreatedAt.After(to) {
			continue
		}
		agg.TotalSales++
		agg.TotalRevenue = agg.TotalRevenue.Add(p.AmountINR)
		agg.TotalProfit = agg.TotalProfit.Add(p.ProfitAmount)
	}
	return agg, nil
}

func (r *fakePaymentRepo) SalesByProduct(_ context.Context, _, _ time.Time) ([]ports.ProductSales, error) {
	return r.byProduct, nil
}

type fakeWithdrawalRepo struct {
	withdrawals []domain.Withdrawal
	createErr   error
}

func (r *fakeWithdrawalRepo) Create(_ context.Context, _ pgx.Tx, w *domain.Withdrawal) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.withdrawals = append(r.withdrawals, *w)
	return nil
}

func (r *fakeWithdrawalRepo) List(_ context.Context, _ int) ([]domain.Withdrawal, error) {
	return r.withdrawals, nil
}

type fakeSummaryCache struct {
	value       []byte
	getErr      error
	setErr      error
	invalidated int
}

func (c *fakeSummaryCache) Get(_ context.Context) ([]byte, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.value, nil
}

func (c *fakeSummaryCache) Set(_ context.Context, value []byte, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.value = value
	return nil
}

func (c *fakeSummaryCache) Invalidate(_ context.Context) error {
	c.invalidated++
	c.value = nil
	return nil
}

type fakeSink struct {
	events    []ports.LedgerEvent
	notifyErr error
}

func (s *fakeSink) Notify(_ context.Context, event ports.LedgerEvent) error {
	if s.notifyErr != nil {
		return s.notifyErr
	}
	s.events = append(s.events, event)
	return nil
}

type fakeProductRepo struct {
	products  map[uuid.UUID]*domain.Product
	createErr error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*domain.Product)}
}

func (r *fakeProductRepo) Create(_ context.Context, p *domain.Product) error {
	if r.createErr != nil {
		return r.createErr
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) ListActive(_ context.Context) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range r.products {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakePurchaseRepo struct {
	purchases map[uuid.UUID]*domain.Purchase
	createErr error
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{purchases: make(map[uuid.UUID]*domain.Purchase)}
}

func (r *fakePurchaseRepo) Create(_ context.Context, p *domain.Purchase) error {
	if r.createErr != nil {
		return r.createErr
	}
	cp := *p
	r.purchases[p.ID] = &cp
	return nil
}

func (r *fakePurchaseRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Purchase, error) {
	p, ok := r.purchases[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePurchaseRepo) GetByDownloadLink(_ context.Context, link string) (*domain.Purchase, error) {
	for _, p := range r.purchases {
		if p.DownloadLink == link {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePurchaseRepo) SetPaymentID(_ context.Context, id uuid.UUID, paymentID uuid.UUID) error {
	p, ok := r.purchases[id]
	if !ok {
		return pgx.ErrNoRows
	}
	p.PaymentID = &paymentID
	return nil
}

func (r *fakePurchaseRepo) IncrementDownloadCount(_ context.Context, id uuid.UUID) (int, error) {
	p, ok := r.purchases[id]
	if !ok {
		return 0, pgx.ErrNoRows
	}
	p.DownloadCount++
	return p.DownloadCount, nil
}

type fakeNotificationRepo struct {
	notifications []domain.Notification
	createErr     error
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *fakeNotificationRepo) List(_ context.Context, limit int) ([]domain.Notification, error) {
	if limit > len(r.notifications) {
		limit = len(r.notifications)
	}
	out := make([]domain.Notification, limit)
	copy(out, r.notifications[len(r.notifications)-limit:])
	return out, nil
}

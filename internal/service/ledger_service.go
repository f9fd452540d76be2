package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ameen-storefront/internal/core/domain"
	"ameen-storefront/internal/core/ports"
	"ameen-storefront/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// LedgerServiceImpl implements ports.LedgerService.
//
// Sale and withdrawal are read-modify-write cycles over the single wallet
// row; both run inside one database transaction with the row locked FOR
// UPDATE, so concurrent mutations serialize and a withdrawal can never
// overdraw on a stale read.
type LedgerServiceImpl struct {
	walletRepo     ports.WalletRepository
	paymentRepo    ports.PaymentRepository
	withdrawalRepo ports.WithdrawalRepository
	rates          ports.CurrencyRates
	notifier       ports.NotificationSink
	summaryCache   ports.WalletSummaryCache
	transactor     ports.DBTransactor
	summaryTTL     time.Duration
	log            zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl. notifier and
// summaryCache may be nil, disabling notifications and summary caching.
func NewLedgerService(
	walletRepo ports.WalletRepository,
	paymentRepo ports.PaymentRepository,
	withdrawalRepo ports.WithdrawalRepository,
	rates ports.CurrencyRates,
	notifier ports.NotificationSink,
	summaryCache ports.WalletSummaryCache,
	transactor ports.DBTransactor,
	summaryTTL time.Duration,
	log zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		walletRepo:     walletRepo,
		paymentRepo:    paymentRepo,
		withdrawalRepo: withdrawalRepo,
		rates:          rates,
		notifier:       notifier,
		summaryCache:   summaryCache,
		transactor:     transactor,
		summaryTTL:     summaryTTL,
		log:            log,
	}
}

// RecordSale normalizes the sale amount to the base currency, splits it
// 60/30/10, credits the wallet and appends the payment record, all in one
// database transaction.
func (s *LedgerServiceImpl) RecordSale(ctx context.Context, req ports.SaleRequest) (*domain.Payment, error) {
	if !req.Amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	rate, found := s.rates.RateFor(req.Currency)
	if !found {
		s.log.Warn().
			Str("currency", req.Currency).
			Msg("unknown currency code, assuming base currency rate")
	}
	amountINR := req.Amount.Mul(rate)
	split := domain.SplitSale(amountINR)

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetForUpdate(ctx, dbTx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}

	now := time.Now().UTC()
	wallet.Credit(amountINR, split, now)

	if err := s.walletRepo.Update(ctx, dbTx, wallet); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update wallet: %w", err))
	}

	payment := &domain.Payment{
		ID:               uuid.New(),
		PurchaseID:       req.PurchaseID,
		Amount:           req.Amount,
		Currency:         req.Currency,
		AmountINR:        amountINR,
		PaymentMethod:    req.PaymentMethod,
		TransactionID:    req.TransactionID,
		Status:           domain.PaymentStatusCompleted,
		ProfitAmount:     split.Profit,
		GrowthFundAmount: split.GrowthFund,
		ExpenseAmount:    split.Expense,
		CreatedAt:        now,
	}

	if err := s.paymentRepo.Create(ctx, dbTx, payment); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create payment: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.invalidateSummary(ctx)
	s.notify(ctx, ports.LedgerEvent{
		Title:   "New Sale",
		Message: fmt.Sprintf("₹%s received via %s", amountINR.StringFixed(2), req.PaymentMethod),
		Type:    domain.NotificationTypeBalance,
		Amount:  amountINR,
		Method:  req.PaymentMethod,
	})

	s.log.Info().
		Str("payment_id", payment.ID.String()).
		Str("currency", req.Currency).
		Str("amount", req.Amount.String()).
		Str("amount_inr", amountINR.String()).
		Msg("sale recorded")

	return payment, nil
}

// Withdraw pays out withdrawable profit to the owner's UPI account. The
// insufficient-funds check and the debit happen under the same wallet row
// lock, so two concurrent withdrawals cannot both pass the check.
func (s *LedgerServiceImpl) Withdraw(ctx context.Context, req ports.WithdrawalRequest) (*domain.Withdrawal, error) {
	if !req.Amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetForUpdate(ctx, dbTx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}

	if !wallet.CanWithdraw(req.Amount) {
		return nil, apperror.ErrInsufficientFunds("₹" + wallet.WithdrawableProfit.StringFixed(2))
	}

	now := time.Now().UTC()
	wallet.Debit(req.Amount, now)

	if err := s.walletRepo.Update(ctx, dbTx, wallet); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update wallet: %w", err))
	}

	withdrawal := &domain.Withdrawal{
		ID:              uuid.New(),
		Amount:          req.Amount,
		UPIMethod:       req.UPIMethod,
		UPIID:           req.UPIID,
		RemainingProfit: wallet.WithdrawableProfit,
		CreatedAt:       now,
	}

	if err := s.withdrawalRepo.Create(ctx, dbTx, withdrawal); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create withdrawal: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.invalidateSummary(ctx)
	s.notify(ctx, ports.LedgerEvent{
		Title: "Profit Withdrawal",
		Message: fmt.Sprintf("₹%s has been transferred to your %s (%s)",
			req.Amount.StringFixed(2), req.UPIMethod, req.UPIID),
		Type:   domain.NotificationTypeBalance,
		Amount: req.Amount,
		Method: req.UPIMethod,
	})

	s.log.Info().
		Str("withdrawal_id", withdrawal.ID.String()).
		Str("amount", req.Amount.String()).
		Str("upi_method", req.UPIMethod).
		Str("remaining_profit", withdrawal.RemainingProfit.String()).
		Msg("profit withdrawn")

	return withdrawal, nil
}

// ListWithdrawals returns the most recent payouts, newest first.
func (s *LedgerServiceImpl) ListWithdrawals(ctx context.Context, limit int) ([]domain.Withdrawal, error) {
	if limit <= 0 {
		limit = 20
	}
	withdrawals, err := s.withdrawalRepo.List(ctx, limit)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list withdrawals: %w", err))
	}
	return withdrawals, nil
}

// GetWalletSummary returns the current wallet state, served from the
// best-effort cache when a snapshot is fresh.
func (s *LedgerServiceImpl) GetWalletSummary(ctx context.Context) (*domain.Wallet, error) {
	if s.summaryCache != nil {
		cached, err := s.summaryCache.Get(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("wallet summary cache read failed, falling through to DB")
		}
		if cached != nil {
			wallet := &domain.Wallet{}
			if err := json.Unmarshal(cached, wallet); err == nil {
				return wallet, nil
			}
			s.log.Warn().Msg("discarding unreadable wallet summary cache entry")
		}
	}

	wallet, err := s.walletRepo.Get(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}

	if s.summaryCache != nil {
		if data, err := json.Marshal(wallet); err == nil {
			if err := s.summaryCache.Set(ctx, data, s.summaryTTL); err != nil {
				s.log.Warn().Err(err).Msg("failed to cache wallet summary")
			}
		}
	}

	return wallet, nil
}

// GetSalesReport aggregates the payment ledger over [from, to]. A nil from
// means the beginning of time, a nil to means now.
func (s *LedgerServiceImpl) GetSalesReport(ctx context.Context, from, to *time.Time) (*ports.SalesReport, error) {
	start := time.Unix(0, 0).UTC()
	if from != nil {
		start = from.UTC()
	}
	end := time.Now().UTC()
	if to != nil {
		end = to.UTC()
	}

	agg, err := s.paymentRepo.Aggregate(ctx, start, end)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("aggregate payments: %w", err))
	}

	byProduct, err := s.paymentRepo.SalesByProduct(ctx, start, end)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("group sales by product: %w", err))
	}

	return &ports.SalesReport{
		PeriodStart:  start,
		PeriodEnd:    end,
		TotalSales:   agg.TotalSales,
		TotalRevenue: agg.TotalRevenue,
		TotalProfit:  agg.TotalProfit,
		ByProduct:    byProduct,
	}, nil
}

func (s *LedgerServiceImpl) invalidateSummary(ctx context.Context) {
	if s.summaryCache == nil {
		return
	}
	if err := s.summaryCache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to invalidate wallet summary cache")
	}
}

func (s *LedgerServiceImpl) notify(ctx context.Context, event ports.LedgerEvent) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("title", event.Title).Msg("failed to emit ledger notification")
	}
}

// StaticRates implements ports.CurrencyRates over the flat conversion table.
type StaticRates struct{}

// NewStaticRates creates the static currency rate lookup.
func NewStaticRates() *StaticRates {
	return &StaticRates{}
}

// RateFor resolves a currency code to its INR conversion rate.
func (StaticRates) RateFor(code string) (decimal.Decimal, bool) {
	return domain.RateFor(code)
}

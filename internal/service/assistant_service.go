package service

import (
	"context"
	"fmt"
	"strings"

	"ameen-storefront/internal/core/ports"

	"github.com/rs/zerolog"
)

// AssistantServiceImpl implements ports.AssistantService: a keyword-matched
// owner-command responder. It formats ledger read results into reply
// strings; no ledger logic lives here.
type AssistantServiceImpl struct {
	ledger ports.LedgerService
	log    zerolog.Logger
}

// NewAssistantService creates a new AssistantServiceImpl.
func NewAssistantService(ledger ports.LedgerService, log zerolog.Logger) *AssistantServiceImpl {
	return &AssistantServiceImpl{ledger: ledger, log: log}
}

// Reply answers an owner command with a canned or ledger-backed response.
func (s *AssistantServiceImpl) Reply(ctx context.Context, message string) (string, error) {
	m := strings.ToLower(message)

	switch {
	case strings.Contains(m, "create") && strings.Contains(m, "product"):
		return "To create a product, please provide: title, description, price, category, and file details.", nil

	case strings.Contains(m, "sales") && strings.Contains(m, "report"):
		report, err := s.ledger.GetSalesReport(ctx, nil, nil)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(
			"Sales Report Summary:\n- Total Sales: %d\n- Total Revenue: ₹%s\n- Total Profit: ₹%s",
			report.TotalSales,
			report.TotalRevenue.StringFixed(2),
			report.TotalProfit.StringFixed(2),
		), nil

	case strings.Contains(m, "withdraw") && strings.Contains(m, "profit"):
		return "To withdraw profit, please specify the amount and UPI details.", nil

	case strings.Contains(m, "wallet") || strings.Contains(m, "balance"):
		wallet, err := s.ledger.GetWalletSummary(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(
			"Wallet Summary:\n- Balance: ₹%s\n- Withdrawable Profit: ₹%s\n- Business Growth Fund: ₹%s\n- Expense Coverage: ₹%s",
			wallet.Balance.StringFixed(2),
			wallet.WithdrawableProfit.StringFixed(2),
			wallet.BusinessGrowthFund.StringFixed(2),
			wallet.ExpenseCoverage.StringFixed(2),
		), nil

	default:
		return "I'm listening. You can ask me about products, sales, wallet balance, or give me commands to create products or withdraw profit.", nil
	}
}

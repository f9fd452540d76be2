package handler

import (
	"strconv"
	"time"

	"ameen-storefront/internal/adapter/http/dto"
	"ameen-storefront/internal/core/ports"
	"ameen-storefront/pkg/apperror"
	"ameen-storefront/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles wallet, withdrawal and report endpoints.
type WalletHandler struct {
	ledgerSvc ports.LedgerService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(ledgerSvc ports.LedgerService) *WalletHandler {
	return &WalletHandler{ledgerSvc: ledgerSvc}
}

// GetSummary handles GET /api/v1/wallet.
func (h *WalletHandler) GetSummary(c *gin.Context) {
	wallet, err := h.ledgerSvc.GetWalletSummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, wallet)
}

// Withdraw handles POST /api/v1/wallet/withdrawals.
func (h *WalletHandler) Withdraw(c *gin.Context) {
	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	amount, ok := dto.ParseAmount(req.Amount)
	if !ok {
		response.Error(c, apperror.Validation("amount must be a decimal number"))
		return
	}

	withdrawal, err := h.ledgerSvc.Withdraw(c.Request.Context(), ports.WithdrawalRequest{
		Amount:    amount,
		UPIMethod: req.UPIMethod,
		UPIID:     req.UPIID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, withdrawal)
}

// ListWithdrawals handles GET /api/v1/wallet/withdrawals.
func (h *WalletHandler) ListWithdrawals(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	withdrawals, err := h.ledgerSvc.ListWithdrawals(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, withdrawals)
}

// GetSalesReport handles GET /api/v1/reports/sales.
func (h *WalletHandler) GetSalesReport(c *gin.Context) {
	from, ok := dto.ParseDate(c.Query("from"))
	if !ok {
		response.Error(c, apperror.Validation("from must be YYYY-MM-DD"))
		return
	}
	to, ok := dto.ParseDate(c.Query("to"))
	if !ok {
		response.Error(c, apperror.Validation("to must be YYYY-MM-DD"))
		return
	}
	if to != nil {
		// Include the whole end day.
		end := to.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}

	report, err := h.ledgerSvc.GetSalesReport(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}

package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Ledger Business Logic (LED) ----

// ErrInsufficientFunds is returned when a withdrawal exceeds the withdrawable
// profit. The available balance is surfaced so the owner can correct the request.
func ErrInsufficientFunds(available string) *AppError {
	return New("LED_001", fmt.Sprintf("Insufficient withdrawable profit. Available: %s", available), http.StatusPaymentRequired)
}

func ErrInvalidAmount() *AppError {
	return New("LED_002", "Amount must be greater than zero", http.StatusBadRequest)
}

// ---- Catalog (CAT) ----

func ErrNotFound(entity string) *AppError {
	return New("CAT_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrInvalidCategory(category string) *AppError {
	return New("CAT_002", fmt.Sprintf("Invalid product category: %s", category), http.StatusBadRequest)
}

func ErrDownloadExpired() *AppError {
	return New("CAT_003", "Download link has expired", http.StatusGone)
}

func ErrProductInactive() *AppError {
	return New("CAT_004", "Product is no longer available", http.StatusConflict)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("LED_002", message, http.StatusBadRequest)
}

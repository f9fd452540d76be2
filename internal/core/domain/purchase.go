package domain

import (
	"time"

	"github.com/google/uuid"
)

// DownloadValidity is how long a purchase's download link stays usable.
const DownloadValidity = 365 * 24 * time.Hour

// Purchase links a customer to a bought product and carries the download
// entitlement. PaymentID is filled once the sale is recorded in the ledger.
type Purchase struct {
	ID             uuid.UUID  `json:"id"`
	ProductID      uuid.UUID  `json:"product_id"`
	CustomerID     string     `json:"customer_id"`
	PaymentID      *uuid.UUID `json:"payment_id,omitempty"`
	DownloadLink   string     `json:"download_link"`
	DownloadCount  int        `json:"download_count"`
	DownloadExpiry time.Time  `json:"download_expiry"`
	CreatedAt      time.Time  `json:"created_at"`
}

// DownloadExpired reports whether the download link is past its expiry.
func (p *Purchase) DownloadExpired(now time.Time) bool {
	return now.After(p.DownloadExpiry)
}

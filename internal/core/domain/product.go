package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductCategories is the fixed set of digital product categories.
var ProductCategories = []string{
	"logo",
	"poster",
	"ebook",
	"planner",
	"notes",
	"ui_ux",
	"quranic_journal",
	"other",
}

// IsValidCategory reports whether category is one of ProductCategories.
func IsValidCategory(category string) bool {
	for _, c := range ProductCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Product is a digital product offered in the storefront.
type Product struct {
	ID            uuid.UUID       `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"` // In the base currency
	Category      string          `json:"category"`
	PreviewImages []string        `json:"preview_images"`
	DownloadFile  string          `json:"download_file"`
	IsActive      bool            `json:"is_active"`
	Tags          []string        `json:"tags"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

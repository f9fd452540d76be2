package dto

// CreateProductRequest is the request body for adding a digital product.
type CreateProductRequest struct {
	Title         string   `json:"title" binding:"required,min=1,max=200"`
	Description   string   `json:"description" binding:"max=2000"`
	Price         string   `json:"price" binding:"required"`
	Category      string   `json:"category" binding:"required"`
	PreviewImages []string `json:"preview_images,omitempty"`
	DownloadFile  string   `json:"download_file" binding:"max=500"`
	Tags          []string `json:"tags,omitempty"`
}

// PurchaseRequest is the request body for buying a product.
type PurchaseRequest struct {
	ProductID     string  `json:"product_id" binding:"required,uuid"`
	CustomerID    string  `json:"customer_id" binding:"max=200"`
	Amount        string  `json:"amount" binding:"required"`
	Currency      string  `json:"currency" binding:"required,len=3"`
	PaymentMethod string  `json:"payment_method" binding:"required,max=50"`
	TransactionID *string `json:"transaction_id,omitempty"`
}

// WithdrawRequest is the request body for a profit payout.
type WithdrawRequest struct {
	Amount    string `json:"amount" binding:"required"`
	UPIMethod string `json:"upi_method" binding:"required,max=50"`
	UPIID     string `json:"upi_id" binding:"required,max=100"`
}

// AssistantMessageRequest is the request body for an owner command.
type AssistantMessageRequest struct {
	Message string `json:"message" binding:"required,max=1000"`
}

// AssistantReplyResponse is the assistant's answer.
type AssistantReplyResponse struct {
	Reply string `json:"reply"`
}

// DownloadResponse is the response for resolving a download link.
type DownloadResponse struct {
	File          string `json:"file"`
	DownloadCount int    `json:"download_count"`
}

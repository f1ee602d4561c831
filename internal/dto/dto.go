package dto

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type ProductRequest struct {
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	Price             int64             `json:"price"`
	CategoryID        string            `json:"category_id"`
	SubcategoryID     string            `json:"subcategory_id"`
	StockQuantity     int64             `json:"stock_quantity"`
	LowStockThreshold int64             `json:"low_stock_threshold"`
	InStock           *bool             `json:"in_stock"`
	Attributes        map[string]string `json:"attributes"`
	Specifications    map[string]string `json:"specifications"`
}

type StockUpdateRequest struct {
	StockQuantity *int64 `json:"stock_quantity"`
	InStock       *bool  `json:"in_stock"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type CartAddRequest struct {
	ProductID        string            `json:"product_id"`
	Quantity         int64             `json:"quantity"`
	SelectedFeatures map[string]string `json:"selected_features"`
}

type CartUpdateRequest struct {
	Quantity int64 `json:"quantity"`
}

type WishlistAddRequest struct {
	ProductID string `json:"product_id"`
}

type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method"`
	PaymentStatus string `json:"payment_status"`
}

type OrderStatusRequest struct {
	Status string `json:"status"`
}

type ReturnRequest struct {
	Reason string `json:"reason"`
}

type ReturnResolveRequest struct {
	Status string `json:"status"` // Approved | Rejected
}

type SellerApplyRequest struct {
	StoreName      string `json:"store_name"`
	About          string `json:"about"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	AccountName    string `json:"account_name"`
	AccountNumber  string `json:"account_number"`
	BankName       string `json:"bank_name"`
	IFSC           string `json:"ifsc"`
}

type VerifySellerRequest struct {
	Status string `json:"status"` // verified | rejected
}

type PayoutRequest struct {
	Amount int64 `json:"amount"`
}

type PayoutResolveRequest struct {
	Status        string `json:"status"` // Paid | Failed | Rejected
	TransactionID string `json:"transaction_id"`
	Notes         string `json:"notes"`
}

type SellerDashboard struct {
	StoreName          string `json:"store_name"`
	VerificationStatus string `json:"verification_status"`
	WalletBalance      int64  `json:"wallet_balance"`
	ProductCount       int64  `json:"product_count"`
	PendingPayouts     int64  `json:"pending_payouts"`
}

package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           string `gorm:"primaryKey;size:64;not null"`
	Name         string `gorm:"size:128;not null"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:128;not null"`
	Role         Role   `gorm:"size:16;index;not null"` // user, seller, admin
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Seller struct {
	ID        string `gorm:"primaryKey;size:64;not null"`
	UserID    string `gorm:"size:64;uniqueIndex;not null"`
	StoreName string `gorm:"size:128;not null"`
	About     string `gorm:"size:1024"`

	VerificationStatus VerificationStatus `gorm:"size:16;index;not null"`
	IsVerified         bool               `gorm:"not null"` // mirrors VerificationStatus == verified

	// KYC
	DocumentType   string `gorm:"size:32"`
	DocumentNumber string `gorm:"size:64"`

	// bank details for manual payouts
	AccountName   string `gorm:"size:128"`
	AccountNumber string `gorm:"size:64"`
	BankName      string `gorm:"size:128"`
	IFSC          string `gorm:"size:16"`

	// minor currency units; credited by settlement, debited by payout requests
	WalletBalance int64 `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Category struct {
	ID        string `gorm:"primaryKey;size:64;not null"`
	Name      string `gorm:"size:128;uniqueIndex;not null"`
	Slug      string `gorm:"size:128;index;not null"`
	ParentID  string `gorm:"size:64;index"` // empty for top-level
	CreatedAt time.Time
}

type Product struct {
	ID       string `gorm:"primaryKey;size:64;not null"`
	SellerID string `gorm:"size:64;index"` // empty for admin-owned products

	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"size:4096"`
	Price       int64  `gorm:"not null"` // minor currency units

	// denormalized names, optionally resolved from the category ids below
	Category      string `gorm:"size:128;index"`
	Subcategory   string `gorm:"size:128"`
	CategoryID    string `gorm:"size:64;index"`
	SubcategoryID string `gorm:"size:64"`

	// StockQuantity and InStock are independently settable; checkout only
	// touches StockQuantity.
	StockQuantity     int64 `gorm:"not null;default:0"`
	LowStockThreshold int64 `gorm:"not null;default:5"`
	InStock           bool  `gorm:"not null;default:true"`

	RatingAverage float64 `gorm:"not null;default:0"`
	ReviewCount   int64   `gorm:"not null;default:0"`

	Attributes     map[string]string `gorm:"serializer:json"`
	Specifications map[string]string `gorm:"serializer:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type Review struct {
	ID        string `gorm:"primaryKey;size:64;not null"`
	ProductID string `gorm:"size:64;index;not null"`
	UserID    string `gorm:"size:64;index;not null"`
	Rating    int    `gorm:"not null"` // 1..5
	Comment   string `gorm:"size:2048"`
	CreatedAt time.Time
}

type CartItem struct {
	ID        string `gorm:"primaryKey;size:64;not null"`
	UserID    string `gorm:"size:64;index:idx_cart_user_product,unique;not null"`
	ProductID string `gorm:"size:64;index:idx_cart_user_product,unique;not null"`
	Quantity  int64  `gorm:"not null"`

	SelectedFeatures map[string]string `gorm:"serializer:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type WishlistItem struct {
	ID        string `gorm:"primaryKey;size:64;not null"`
	UserID    string `gorm:"size:64;index:idx_wish_user_product,unique;not null"`
	ProductID string `gorm:"size:64;index:idx_wish_user_product,unique;not null"`
	CreatedAt time.Time
}

type Order struct {
	ID     string `gorm:"primaryKey;size:64;not null"`
	UserID string `gorm:"size:64;index;not null"`

	// sum of item UnitPrice × Quantity at creation; not re-validated after
	TotalAmount int64       `gorm:"not null"`
	Status      OrderStatus `gorm:"size:32;index;not null"`

	PaymentMethod string `gorm:"size:32"` // COD, CARD, UPI — pass-through
	PaymentStatus string `gorm:"size:32"`

	ReturnStatus ReturnStatus `gorm:"size:32"`
	ReturnReason string       `gorm:"size:1024"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderItem struct {
	ID string `gorm:"primaryKey;size:64;not null"`
	// FK → order.id
	OrderID string `gorm:"size:64;index;not null"`
	// FK → product.id
	ProductID string `gorm:"size:64;index;not null"`
	// owning seller captured at checkout; empty for admin-owned products
	SellerID string `gorm:"size:64;index"`

	Quantity  int64 `gorm:"not null"`
	UnitPrice int64 `gorm:"not null"` // captured at purchase time

	// once true this item must never be credited again
	IsPayoutProcessed bool `gorm:"index;not null;default:false"`

	SelectedFeatures map[string]string `gorm:"serializer:json"`

	CreatedAt time.Time
}

type Payout struct {
	ID       string `gorm:"primaryKey;size:64;not null"`
	SellerID string `gorm:"size:64;index;not null"`

	Amount int64        `gorm:"not null"` // debited from the wallet at request time
	Status PayoutStatus `gorm:"size:32;index;not null"`

	TransactionID string `gorm:"size:128"` // external bank/manual reference
	Notes         string `gorm:"size:1024"`

	RequestedAt time.Time
	ProcessedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Setting rows are keyed by a name column; "key" itself is reserved on mysql.
type Setting struct {
	Key       string `gorm:"primaryKey;column:setting_key;size:64;not null"`
	Value     string `gorm:"size:255;not null"`
	UpdatedAt time.Time
}

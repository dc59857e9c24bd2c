package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types
const (
	TransactionTypePurchase   = "purchase"
	TransactionTypeSale       = "sale"
	TransactionTypeDeposit    = "deposit"
	TransactionTypeWithdrawal = "withdrawal"
	TransactionTypeRefund     = "refund"
)

// Transaction statuses
const (
	TransactionStatusPending   = "pending"
	TransactionStatusConfirmed = "confirmed"
	TransactionStatusCanceled  = "canceled"
)

// Refund sub-states carried on a purchase transaction
const (
	RefundStatusPending      = "pending"
	RefundStatusApproved     = "approved"
	RefundStatusRejected     = "rejected"
	RefundStatusVerified     = "verified"
	RefundStatusAutoRefunded = "auto_refunded"
)

// Transaction is one ledger entry: a single signed monetary movement. The
// sign is implied by Type; Amount is always positive. Every purchase has a
// matching sale row on the seller side, created in the same database
// transaction.
type Transaction struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	UserID            uint            `gorm:"index" json:"user_id"`
	User              User            `gorm:"foreignKey:UserID" json:"-"`
	ListingID         *uint           `gorm:"index" json:"listing_id,omitempty"`
	Listing           *Listing        `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
	Type              string          `gorm:"not null;index" json:"type"`
	Amount            decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Status            string          `gorm:"default:'confirmed'" json:"status"`
	RefundStatus      *string         `gorm:"default:null" json:"refund_status,omitempty"`
	RefundReason      string          `json:"refund_reason,omitempty"`
	RefundRequestedAt *time.Time      `json:"refund_requested_at,omitempty"`
	Reference         string          `json:"reference,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

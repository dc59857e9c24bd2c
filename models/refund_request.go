package models

import "time"

// RefundRequest statuses
const (
	RefundRequestStatusPending  = "pending"
	RefundRequestStatusApproved = "approved"
	RefundRequestStatusRejected = "rejected"
)

// RefundRequest is a buyer-raised dispute against a purchase transaction.
// At most one request exists per transaction; only an admin moves it out of
// pending.
type RefundRequest struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	TransactionID uint        `gorm:"uniqueIndex" json:"transaction_id"`
	Transaction   Transaction `gorm:"foreignKey:TransactionID" json:"transaction,omitempty"`
	UserID        uint        `gorm:"index" json:"user_id"`
	User          User        `gorm:"foreignKey:UserID" json:"-"`
	Reason        string      `gorm:"not null" json:"reason"`
	Status        string      `gorm:"default:'pending'" json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

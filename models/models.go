package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User roles
const (
	RoleUser   = "user"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// User represents an account in the system. Balance is only mutated by the
// ledger workflows in the services package.
type User struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Username  string          `gorm:"uniqueIndex;not null" json:"username"`
	Email     string          `gorm:"uniqueIndex;not null" json:"email"`
	Password  string          `json:"-"`
	Role      string          `gorm:"default:'user'" json:"role"`
	Balance   decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"balance"`
	GoogleID  *string         `gorm:"uniqueIndex;default:null" json:"-"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AdminSettings is the singleton site configuration row.
type AdminSettings struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	SiteName        string          `gorm:"default:'CardBay'" json:"site_name"`
	WalletAddress   string          `json:"wallet_address"`
	QrCodeURL       string          `json:"qr_code_url"`
	BtcRate         decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"btc_rate"`
	BonusPercentage decimal.Decimal `gorm:"type:numeric(5,2);default:0" json:"bonus_percentage"`
	MinBonusAmount  decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"min_bonus_amount"`
	ExchangeFee     decimal.Decimal `gorm:"type:numeric(5,2);default:0" json:"exchange_fee"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TopupOrder tracks a Razorpay wallet topup from order creation until the
// payment is verified and credited.
type TopupOrder struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"index" json:"user_id"`
	RazorpayOrderID string          `gorm:"uniqueIndex" json:"razorpay_order_id"`
	Amount          decimal.Decimal `gorm:"type:numeric(12,2)" json:"amount"`
	Status          string          `gorm:"default:'pending'" json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

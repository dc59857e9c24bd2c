package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Listing status constants
const (
	ListingStatusPending  = "pending"
	ListingStatusActive   = "active"
	ListingStatusSold     = "sold"
	ListingStatusRejected = "rejected"
)

// Listing is a prepaid/gift card offered for sale. Code and Pin are the
// sensitive payload and are only revealed to the buyer after purchase or to
// an admin.
type Listing struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	SellerID  uint            `gorm:"index" json:"seller_id"`
	Seller    User            `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Title     string          `gorm:"not null" json:"title"`
	Brand     string          `json:"brand"`
	CardType  string          `json:"card_type"`
	Country   string          `json:"country"`
	FaceValue decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"face_value"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Details   string          `json:"details"`
	Code      string          `gorm:"not null" json:"-"`
	Pin       string          `json:"-"`
	ExpMonth  int             `json:"exp_month"`
	ExpYear   int             `json:"exp_year"`
	Status    string          `gorm:"default:'pending';index" json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CardDetails is the sensitive payload of a purchased listing.
type CardDetails struct {
	Code      string          `json:"code"`
	Pin       string          `json:"pin"`
	ExpMonth  int             `json:"exp_month"`
	ExpYear   int             `json:"exp_year"`
	Brand     string          `json:"brand"`
	CardType  string          `json:"card_type"`
	Country   string          `json:"country"`
	FaceValue decimal.Decimal `json:"face_value"`
	Details   string          `json:"details"`
}

// CardDetails returns the post-purchase payload of the listing.
func (l *Listing) CardDetails() CardDetails {
	return CardDetails{
		Code:      l.Code,
		Pin:       l.Pin,
		ExpMonth:  l.ExpMonth,
		ExpYear:   l.ExpYear,
		Brand:     l.Brand,
		CardType:  l.CardType,
		Country:   l.Country,
		FaceValue: l.FaceValue,
		Details:   l.Details,
	}
}

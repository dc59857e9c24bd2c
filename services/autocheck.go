package services

import (
	"errors"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Arjun-P-716/CardBay/models"
)

// CheckWindow is how long after purchase a buyer may run the card check.
const CheckWindow = 5 * time.Minute

// CheckOutcome draws the result of a card check; true means the card is
// valid. Injected so tests can force either outcome.
type CheckOutcome func() bool

// DefaultCheckOutcome passes 70% of checks.
func DefaultCheckOutcome() bool {
	return rand.Float64() > 0.3
}

// Auto-check result statuses
const (
	CheckStatusValid    = "valid"
	CheckStatusRefunded = "refunded"
)

// AutoCheckResult reports the outcome of a card check. Amount is set only on
// the refunded path.
type AutoCheckResult struct {
	Status string
	Amount decimal.Decimal
}

// AutoCheck runs the time-boxed self-service card check on a purchase owned
// by the caller. A transaction whose refund status is already set is rejected
// before the window test, so the check cannot double-process. On a failed
// check the buyer is refunded and the seller debited in the same database
// transaction that holds the row lock.
func AutoCheck(db *gorm.DB, userID, transactionID uint, outcome CheckOutcome) (*AutoCheckResult, error) {
	if outcome == nil {
		outcome = DefaultCheckOutcome
	}
	var result AutoCheckResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var txn models.Transaction
		if err := lockForUpdate(tx).
			Where("id = ? AND user_id = ?", transactionID, userID).
			First(&txn).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if txn.RefundStatus != nil {
			return ErrAlreadyProcessed
		}
		if time.Since(txn.CreatedAt) > CheckWindow {
			return ErrWindowExpired
		}

		if outcome() {
			if err := tx.Model(&models.Transaction{}).
				Where("id = ?", txn.ID).
				Update("refund_status", models.RefundStatusVerified).Error; err != nil {
				return err
			}
			result = AutoCheckResult{Status: CheckStatusValid}
			return nil
		}

		if err := adjustBalance(tx, txn.UserID, txn.Amount); err != nil {
			return err
		}
		if txn.ListingID != nil {
			var listing models.Listing
			if err := tx.First(&listing, *txn.ListingID).Error; err == nil {
				if err := adjustBalance(tx, listing.SellerID, txn.Amount.Neg()); err != nil {
					return err
				}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}
		if err := tx.Model(&models.Transaction{}).
			Where("id = ?", txn.ID).
			Updates(map[string]interface{}{
				"refund_status": models.RefundStatusAutoRefunded,
				"refund_reason": "Card check failed",
			}).Error; err != nil {
			return err
		}
		result = AutoCheckResult{Status: CheckStatusRefunded, Amount: txn.Amount}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Arjun-P-716/CardBay/models"
)

// RequestRefund files a dispute against a purchase owned by the caller. The
// duplicate check and the creation run in one critical section so two
// concurrent requests against the same transaction cannot both succeed.
func RequestRefund(db *gorm.DB, userID, transactionID uint, reason string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var txn models.Transaction
		if err := lockForUpdate(tx).
			Where("id = ? AND user_id = ?", transactionID, userID).
			First(&txn).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if txn.Type != models.TransactionTypePurchase {
			return ErrInvalidType
		}
		if txn.RefundStatus != nil {
			return ErrAlreadyRequested
		}
		var existing int64
		if err := tx.Model(&models.RefundRequest{}).
			Where("transaction_id = ?", txn.ID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyRequested
		}

		request := models.RefundRequest{
			TransactionID: txn.ID,
			UserID:        userID,
			Reason:        reason,
			Status:        models.RefundRequestStatusPending,
		}
		if err := tx.Create(&request).Error; err != nil {
			return err
		}
		now := time.Now()
		return tx.Model(&models.Transaction{}).
			Where("id = ?", txn.ID).
			Updates(map[string]interface{}{
				"refund_status":       models.RefundStatusPending,
				"refund_reason":       reason,
				"refund_requested_at": &now,
			}).Error
	})
}

// RefundDecision summarizes an adjudicated refund request, for the response
// body and the buyer notification.
type RefundDecision struct {
	RefundID      uint
	TransactionID uint
	BuyerID       uint
	Amount        decimal.Decimal
	Status        string
}

// ApproveRefund approves a pending refund request: credits the buyer, debits
// the seller (when the purchase references a listing), marks the request and
// the originating transaction, and writes a refund ledger entry. All five
// effects commit together or not at all.
func ApproveRefund(db *gorm.DB, refundID uint) (*RefundDecision, error) {
	var decision RefundDecision
	err := db.Transaction(func(tx *gorm.DB) error {
		var request models.RefundRequest
		if err := lockForUpdate(tx).First(&request, refundID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if request.Status != models.RefundRequestStatusPending {
			return ErrAlreadyProcessed
		}

		var txn models.Transaction
		if err := tx.First(&txn, request.TransactionID).Error; err != nil {
			return err
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

		if err := tx.Model(&models.RefundRequest{}).
			Where("id = ?", request.ID).
			Update("status", models.RefundRequestStatusApproved).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Transaction{}).
			Where("id = ?", txn.ID).
			Update("refund_status", models.RefundStatusApproved).Error; err != nil {
			return err
		}

		refund := models.Transaction{
			UserID:    txn.UserID,
			ListingID: txn.ListingID,
			Type:      models.TransactionTypeRefund,
			Amount:    txn.Amount,
			Status:    models.TransactionStatusConfirmed,
		}
		if err := tx.Create(&refund).Error; err != nil {
			return err
		}

		decision = RefundDecision{
			RefundID:      request.ID,
			TransactionID: txn.ID,
			BuyerID:       txn.UserID,
			Amount:        txn.Amount,
			Status:        models.RefundRequestStatusApproved,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &decision, nil
}

// RejectRefund rejects a pending refund request. No balance moves; the
// check-then-mutate sequence still runs in one transaction.
func RejectRefund(db *gorm.DB, refundID uint) (*RefundDecision, error) {
	var decision RefundDecision
	err := db.Transaction(func(tx *gorm.DB) error {
		var request models.RefundRequest
		if err := lockForUpdate(tx).First(&request, refundID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if request.Status != models.RefundRequestStatusPending {
			return ErrAlreadyProcessed
		}

		var txn models.Transaction
		if err := tx.First(&txn, request.TransactionID).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.RefundRequest{}).
			Where("id = ?", request.ID).
			Update("status", models.RefundRequestStatusRejected).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Transaction{}).
			Where("id = ?", txn.ID).
			Update("refund_status", models.RefundStatusRejected).Error; err != nil {
			return err
		}

		decision = RefundDecision{
			RefundID:      request.ID,
			TransactionID: txn.ID,
			BuyerID:       txn.UserID,
			Amount:        txn.Amount,
			Status:        models.RefundRequestStatusRejected,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &decision, nil
}

package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Arjun-P-716/CardBay/models"
)

var oneHundred = decimal.NewFromInt(100)

// CreditDeposit credits a confirmed deposit to the user's balance and writes
// the deposit ledger entry. A deposit bonus from the site settings is applied
// when the amount reaches the configured minimum. Reference identifies the
// external payment (BTC txid, Razorpay payment id).
func CreditDeposit(db *gorm.DB, userID uint, amount decimal.Decimal, reference string) (*models.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	var entry models.Transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		total := amount
		var settings models.AdminSettings
		if err := tx.First(&settings).Error; err == nil {
			if settings.BonusPercentage.IsPositive() &&
				amount.GreaterThanOrEqual(settings.MinBonusAmount) {
				bonus := amount.Mul(settings.BonusPercentage).Div(oneHundred).Round(2)
				total = total.Add(bonus)
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := adjustBalance(tx, userID, total); err != nil {
			return err
		}
		entry = models.Transaction{
			UserID:    userID,
			Type:      models.TransactionTypeDeposit,
			Amount:    total,
			Status:    models.TransactionStatusConfirmed,
			Reference: reference,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// RequestWithdrawal records a pending withdrawal to the given BTC address.
// The balance is not debited until an admin completes the withdrawal, but the
// requested amount must be covered and only one withdrawal may be pending per
// user.
func RequestWithdrawal(db *gorm.DB, userID uint, amount decimal.Decimal, address string) (*models.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	var entry models.Transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := lockForUpdate(tx).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if user.Balance.LessThan(amount) {
			return ErrInsufficientBalance
		}
		var pending int64
		if err := tx.Model(&models.Transaction{}).
			Where("user_id = ? AND type = ? AND status = ?",
				userID, models.TransactionTypeWithdrawal, models.TransactionStatusPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return ErrAlreadyRequested
		}
		entry = models.Transaction{
			UserID:    userID,
			Type:      models.TransactionTypeWithdrawal,
			Amount:    amount,
			Status:    models.TransactionStatusPending,
			Reference: address,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// CompleteWithdrawal finalizes a pending withdrawal: re-checks the balance,
// debits it and confirms the ledger entry atomically.
func CompleteWithdrawal(db *gorm.DB, transactionID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var txn models.Transaction
		if err := lockForUpdate(tx).
			Where("id = ? AND type = ?", transactionID, models.TransactionTypeWithdrawal).
			First(&txn).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if txn.Status != models.TransactionStatusPending {
			return ErrAlreadyProcessed
		}
		var user models.User
		if err := tx.First(&user, txn.UserID).Error; err != nil {
			return err
		}
		if user.Balance.LessThan(txn.Amount) {
			return ErrInsufficientBalance
		}
		if err := adjustBalance(tx, txn.UserID, txn.Amount.Neg()); err != nil {
			return err
		}
		return tx.Model(&models.Transaction{}).
			Where("id = ?", txn.ID).
			Update("status", models.TransactionStatusConfirmed).Error
	})
}

// CancelWithdrawal cancels a pending withdrawal without moving any balance.
func CancelWithdrawal(db *gorm.DB, transactionID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var txn models.Transaction
		if err := lockForUpdate(tx).
			Where("id = ? AND type = ?", transactionID, models.TransactionTypeWithdrawal).
			First(&txn).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if txn.Status != models.TransactionStatusPending {
			return ErrAlreadyProcessed
		}
		return tx.Model(&models.Transaction{}).
			Where("id = ?", txn.ID).
			Update("status", models.TransactionStatusCanceled).Error
	})
}

package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Arjun-P-716/CardBay/models"
)

// lockForUpdate adds SELECT ... FOR UPDATE so concurrent attempts against the
// same row serialize. SQLite (used by the test suite) has no row locks; its
// writes serialize on the database file instead.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// adjustBalance applies a signed delta to a user's balance. Callers must run
// inside a transaction and pair every debit with exactly one matching credit.
func adjustBalance(tx *gorm.DB, userID uint, delta decimal.Decimal) error {
	return tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("balance", gorm.Expr("balance + ?", delta)).Error
}

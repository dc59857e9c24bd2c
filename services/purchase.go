package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Arjun-P-716/CardBay/models"
)

// PurchaseResult carries the sold listing and the buyer's ledger entry.
type PurchaseResult struct {
	Listing     models.Listing
	Transaction models.Transaction
}

// Purchase buys an active listing for the buyer. Within one database
// transaction it locks the listing row, re-checks the buyer's balance, debits
// the buyer, credits the seller, marks the listing sold and writes the paired
// purchase/sale ledger entries. Either all of it commits or none of it does.
func Purchase(db *gorm.DB, buyerID, listingID uint) (*PurchaseResult, error) {
	var result PurchaseResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := lockForUpdate(tx).
			Where("id = ? AND status = ?", listingID, models.ListingStatusActive).
			First(&listing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotAvailable
			}
			return err
		}

		var buyer models.User
		if err := tx.First(&buyer, buyerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if buyer.Balance.LessThan(listing.Price) {
			return ErrInsufficientBalance
		}

		if err := adjustBalance(tx, buyerID, listing.Price.Neg()); err != nil {
			return err
		}
		if err := adjustBalance(tx, listing.SellerID, listing.Price); err != nil {
			return err
		}
		if err := tx.Model(&models.Listing{}).
			Where("id = ?", listing.ID).
			Update("status", models.ListingStatusSold).Error; err != nil {
			return err
		}

		purchase := models.Transaction{
			UserID:    buyerID,
			ListingID: &listing.ID,
			Type:      models.TransactionTypePurchase,
			Amount:    listing.Price,
			Status:    models.TransactionStatusConfirmed,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}
		sale := models.Transaction{
			UserID:    listing.SellerID,
			ListingID: &listing.ID,
			Type:      models.TransactionTypeSale,
			Amount:    listing.Price,
			Status:    models.TransactionStatusConfirmed,
		}
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}

		listing.Status = models.ListingStatusSold
		result = PurchaseResult{Listing: listing, Transaction: purchase}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Arjun-P-716/CardBay/models"
)

func backdateTransaction(t *testing.T, db *gorm.DB, transactionID uint, age time.Duration) {
	t.Helper()
	err := db.Model(&models.Transaction{}).
		Where("id = ?", transactionID).
		UpdateColumn("created_at", time.Now().Add(-age)).Error
	require.NoError(t, err)
}

func TestAutoCheckPassMarksVerified(t *testing.T) {
	db := newTestDB(t)
	seller := createUser(t, db, "seller", models.RoleSeller, "0")
	buyer := createUser(t, db, "buyer", models.RoleUser, "50")
	listing := createListing(t, db, seller.ID, "30", models.ListingStatusActive)
	purchase := buyActiveListing(t, db, buyer.ID, listing.ID)

	result, err := AutoCheck(db, buyer.ID, purchase.ID, forcePass)
	require.NoError(t, err)
	assert.Equal(t, CheckStatusValid, result.Status)

	// no balance movement on a passing check
	requireAmount(t, "20", balanceOf(t, db, buyer.ID))
	requireAmount(t, "30", balanceOf(t, db, seller.ID))

	var stored models.Transaction
	require.NoError(t, db.First(&stored, purchase.ID).Error)
	require.NotNil(t, stored.RefundStatus)
	assert.Equal(t, models.RefundStatusVerified, *stored.RefundStatus)
}

func TestAutoCheckFailRefunds(t *testing.T) {
	db := newTestDB(t)
	seller := createUser(t, db, "seller", models.RoleSeller, "0")
	buyer := createUser(t, db, "buyer", models.RoleUser, "50")
	listing := createListing(t, db, seller.ID, "30", models.ListingStatusActive)
	purchase := buyActiveListing(t, db, buyer.ID, listing.ID)
	backdateTransaction(t, db, purchase.ID, 2*time.Minute)

	result, err := AutoCheck(db, buyer.ID, purchase.ID, forceFail)
	require.NoError(t, err)
	assert.Equal(t, CheckStatusRefunded, result.Status)
	requireAmount(t, "30", result.Amount)

	requireAmount(t, "50", balanceOf(t, db, buyer.ID))
	requireAmount(t, "0", balanceOf(t, db, seller.ID))

	var stored models.Transaction
	require.NoError(t, db.First(&stored, purchase.ID).Error)
	require.NotNil(t, stored.RefundStatus)
	assert.Equal(t, models.RefundStatusAutoRefunded, *stored.RefundStatus)
}

func TestAutoCheckWindowBoundary(t *testing.T) {
	db := newTestDB(t)
	seller := createUser(t, db, "seller", models.RoleSeller, "0")
	buyer := createUser(t, db, "buyer", models.RoleUser, "100")

	// 4:59 after purchase: still eligible
	inside := createListing(t, db, seller.ID, "10", models.ListingStatusActive)
	insideTxn := buyActiveListing(t, db, buyer.ID, inside.ID)
	backdateTransaction(t, db, insideTxn.ID, 4*time.Minute+59*time.Second)
	result, err := AutoCheck(db, buyer.ID, insideTxn.ID, forcePass)
	require.NoError(t, err)
	assert.Equal(t, CheckStatusValid, result.Status)

	// 5:01 after purchase: expired, no mutation
	outside := createListing(t, db, seller.ID, "10", models.ListingStatusActive)
	outsideTxn := buyActiveListing(t, db, buyer.ID, outside.ID)
	backdateTransaction(t, db, outsideTxn.ID, 5*time.Minute+time.Second)
	buyerBefore := balanceOf(t, db, buyer.ID)
	sellerBefore := balanceOf(t, db, seller.ID)

	_, err = AutoCheck(db, buyer.ID, outsideTxn.ID, forceFail)
	require.ErrorIs(t, err, ErrWindowExpired)

	assert.True(t, buyerBefore.Equal(balanceOf(t, db, buyer.ID)))
	assert.True(t, sellerBefore.Equal(balanceOf(t, db, seller.ID)))
	var stored models.Transaction
	require.NoError(t, db.First(&stored, outsideTxn.ID).Error)
	assert.Nil(t, stored.RefundStatus)
}

func TestAutoCheckAlreadyProcessed(t *testing.T) {
	db := newTestDB(t)
	seller := createUser(t, db, "seller", models.RoleSeller, "0")
	buyer := createUser(t, db, "buyer", models.RoleUser, "50")
	listing := createListing(t, db, seller.ID, "30", models.ListingStatusActive)
	purchase := buyActiveListing(t, db, buyer.ID, listing.ID)

	_, err := AutoCheck(db, buyer.ID, purchase.ID, forcePass)
	require.NoError(t, err)

	// a second check is rejected before the window test and moves no money
	_, err = AutoCheck(db, buyer.ID, purchase.ID, forceFail)
	require.ErrorIs(t, err, ErrAlreadyProcessed)
	requireAmount(t, "20", balanceOf(t, db, buyer.ID))
	requireAmount(t, "30", balanceOf(t, db, seller.ID))
}

func TestAutoCheckAfterRefundRequest(t *testing.T) {
	db := newTestDB(t)
	seller := createUser(t, db, "seller", models.RoleSeller, "0")
	buyer := createUser(t, db, "buyer", models.RoleUser, "50")
	listing := createListing(t, db, seller.ID, "30", models.ListingStatusActive)
	purchase := buyActiveListing(t, db, buyer.ID, listing.ID)
	require.NoError(t, RequestRefund(db, buyer.ID, purchase.ID, "dead card"))

	_, err := AutoCheck(db, buyer.ID, purchase.ID, forceFail)
	require.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestAutoCheckNotOwned(t *testing.T) {
	db := newTestDB(t)
	seller := createUser(t, db, "seller", models.RoleSeller, "0")
	buyer := createUser(t, db, "buyer", models.RoleUser, "50")
	other := createUser(t, db, "other", models.RoleUser, "50")
	listing := createListing(t, db, seller.ID, "30", models.ListingStatusActive)
	purchase := buyActiveListing(t, db, buyer.ID, listing.ID)

	_, err := AutoCheck(db, other.ID, purchase.ID, forcePass)
	require.ErrorIs(t, err, ErrNotFound)
}

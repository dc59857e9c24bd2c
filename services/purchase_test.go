package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arjun-P-716/CardBay/models"
)

func TestPurchaseHappyPath(t *testing.T) {
	db := newTestDB(t)
	seller := createUser(t, db, "seller", models.RoleSeller, "0")
	buyer := createUser(t, db, "buyer", models.RoleUser, "100")
	listing := createListing(t, db, seller.ID, "40", models.ListingStatusActive)

	result, err := Purchase(db, buyer.ID, listing.ID)
	require.NoError(t, err)

	requireAmount(t, "60", balanceOf(t, db, buyer.ID))
	requireAmount(t, "40", balanceOf(t, db, seller.ID))
	assert.Equal(t, models.ListingStatusSold, result.Listing.Status)

	var stored models.Listing
	require.NoError(t, db.First(&stored, listing.ID).Error)
	assert.Equal(t, models.ListingStatusSold, stored.Status)

	var entries []models.Transaction
	require.NoError(t, db.Where("listing_id = ?", listing.ID).Order("id").Find(&entries).Error)
	require.Len(t, entries, 2)
	assert.Equal(t, models.TransactionTypePurchase, entries[0].Type)
	assert.Equal(t, buyer.ID, entries[0].UserID)
	requireAmount(t, "40", entries[0].Amount)
	assert.Equal(t, models.TransactionTypeSale, entries[1].Type)
	assert.Equal(t, seller.ID, entries[1].UserID)
	requireAmount(t, "40", entries[1].Amount)
}

func TestPurchaseInsufficientBalance(t *testing.T) {
	db := newTestDB(t)
	seller := createUser(t, db, "seller", models.RoleSeller, "0")
	buyer := createUser(t, db, "buyer", models.RoleUser, "10")
	listing := createListing(t, db, seller.ID, "40", models.ListingStatusActive)

	_, err := Purchase(db, buyer.ID, listing.ID)
	require.ErrorIs(t, err, ErrInsufficientBalance)

	requireAmount(t, "10", balanceOf(t, db, buyer.ID))
	requireAmount(t, "0", balanceOf(t, db, seller.ID))

	var stored models.Listing
	require.NoError(t, db.First(&stored, listing.ID).Error)
	assert.Equal(t, models.ListingStatusActive, stored.Status)

	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPurchaseListingNotActive(t *testing.T) {
	db := newTestDB(t)
	seller := createUser(t, db, "seller", models.RoleSeller, "0")
	buyer := createUser(t, db, "buyer", models.RoleUser, "100")

	for _, status := range []string{
		models.ListingStatusPending,
		models.ListingStatusSold,
		models.ListingStatusRejected,
	} {
		listing := createListing(t, db, seller.ID, "40", status)
		_, err := Purchase(db, buyer.ID, listing.ID)
		assert.ErrorIs(t, err, ErrNotAvailable, "status %s", status)
	}
}

func TestPurchaseMissingListing(t *testing.T) {
	db := newTestDB(t)
	buyer := createUser(t, db, "buyer", models.RoleUser, "100")

	_, err := Purchase(db, buyer.ID, 9999)
	require.ErrorIs(t, err, ErrNotAvailable)
}

func TestPurchaseSoldListingCannotSellTwice(t *testing.T) {
	db := newTestDB(t)
	seller := createUser(t, db, "seller", models.RoleSeller, "0")
	first := createUser(t, db, "first", models.RoleUser, "100")
	second := createUser(t, db, "second", models.RoleUser, "100")
	listing := createListing(t, db, seller.ID, "40", models.ListingStatusActive)

	_, err := Purchase(db, first.ID, listing.ID)
	require.NoError(t, err)

	_, err = Purchase(db, second.ID, listing.ID)
	require.ErrorIs(t, err, ErrNotAvailable)

	requireAmount(t, "100", balanceOf(t, db, second.ID))
	requireAmount(t, "40", balanceOf(t, db, seller.ID))
}

func TestPurchaseConservesTotalBalance(t *testing.T) {
	db := newTestDB(t)
	seller := createUser(t, db, "seller", models.RoleSeller, "12.50")
	buyer := createUser(t, db, "buyer", models.RoleUser, "87.25")
	listing := createListing(t, db, seller.ID, "33.75", models.ListingStatusActive)

	before := balanceOf(t, db, buyer.ID).Add(balanceOf(t, db, seller.ID))
	_, err := Purchase(db, buyer.ID, listing.ID)
	require.NoError(t, err)
	after := balanceOf(t, db, buyer.ID).Add(balanceOf(t, db, seller.ID))

	assert.True(t, before.Equal(after), "sum of balances changed: %s -> %s", before, after)
	requireAmount(t, "53.50", balanceOf(t, db, buyer.ID))
	requireAmount(t, "46.25", balanceOf(t, db, seller.ID))
}

package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arjun-P-716/CardBay/models"
)

func TestRequestRefund(t *testing.T) {
	db := newTestDB(t)
	seller := createUser(t, db, "seller", models.RoleSeller, "0")
	buyer := createUser(t, db, "buyer", models.RoleUser, "100")
	listing := createListing(t, db, seller.ID, "25", models.ListingStatusActive)
	purchase := buyActiveListing(t, db, buyer.ID, listing.ID)

	err := RequestRefund(db, buyer.ID, purchase.ID, "card already redeemed")
	require.NoError(t, err)

	var request models.RefundRequest
	require.NoError(t, db.Where("transaction_id = ?", purchase.ID).First(&request).Error)
	assert.Equal(t, models.RefundRequestStatusPending, request.Status)
	assert.Equal(t, buyer.ID, request.UserID)
	assert.Equal(t, "card already redeemed", request.Reason)

	var stored models.Transaction
	require.NoError(t, db.First(&stored, purchase.ID).Error)
	require.NotNil(t, stored.RefundStatus)
	assert.Equal(t, models.RefundStatusPending, *stored.RefundStatus)
	assert.Equal(t, "card already redeemed", stored.RefundReason)
	assert.NotNil(t, stored.RefundRequestedAt)
}

func TestRequestRefundOnlyForPurchases(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "user", models.RoleUser, "50")
	deposit, err := CreditDeposit(db, user.ID, decimal.RequireFromString("20"), "btc:abc123")
	require.NoError(t, err)

	err = RequestRefund(db, user.ID, deposit.ID, "wrong amount")
	require.ErrorIs(t, err, ErrInvalidType)
}

func TestRequestRefundDuplicate(t *testing.T) {
	db := newTestDB(t)
	seller := createUser(t, db, "seller", models.RoleSeller, "0")
	buyer := createUser(t, db, "buyer", models.RoleUser, "100")
	listing := createListing(t, db, seller.ID, "25", models.ListingStatusActive)
	purchase := buyActiveListing(t, db, buyer.ID, listing.ID)

	require.NoError(t, RequestRefund(db, buyer.ID, purchase.ID, "dead card"))
	err := RequestRefund(db, buyer.ID, purchase.ID, "still a dead card")
	require.ErrorIs(t, err, ErrAlreadyRequested)

	var count int64
	require.NoError(t, db.Model(&models.RefundRequest{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRequestRefundNotOwned(t *testing.T) {
	db := newTestDB(t)
	seller := createUser(t, db, "seller", models.RoleSeller, "0")
	buyer := createUser(t, db, "buyer", models.RoleUser, "100")
	other := createUser(t, db, "other", models.RoleUser, "100")
	listing := createListing(t, db, seller.ID, "25", models.ListingStatusActive)
	purchase := buyActiveListing(t, db, buyer.ID, listing.ID)

	err := RequestRefund(db, other.ID, purchase.ID, "not mine")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestApproveRefund(t *testing.T) {
	db := newTestDB(t)
	seller := createUser(t, db, "seller", models.RoleSeller, "0")
	buyer := createUser(t, db, "buyer", models.RoleUser, "25")
	listing := createListing(t, db, seller.ID, "25", models.ListingStatusActive)
	purchase := buyActiveListing(t, db, buyer.ID, listing.ID)
	require.NoError(t, RequestRefund(db, buyer.ID, purchase.ID, "code invalid"))

	// post-purchase state: buyer 0, seller 25
	requireAmount(t, "0", balanceOf(t, db, buyer.ID))
	requireAmount(t, "25", balanceOf(t, db, seller.ID))

	var request models.RefundRequest
	require.NoError(t, db.Where("transaction_id = ?", purchase.ID).First(&request).Error)

	decision, err := ApproveRefund(db, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RefundRequestStatusApproved, decision.Status)
	assert.Equal(t, buyer.ID, decision.BuyerID)
	requireAmount(t, "25", decision.Amount)

	requireAmount(t, "25", balanceOf(t, db, buyer.ID))
	requireAmount(t, "0", balanceOf(t, db, seller.ID))

	require.NoError(t, db.First(&request, request.ID).Error)
	assert.Equal(t, models.RefundRequestStatusApproved, request.Status)

	var stored models.Transaction
	require.NoError(t, db.First(&stored, purchase.ID).Error)
	require.NotNil(t, stored.RefundStatus)
	assert.Equal(t, models.RefundStatusApproved, *stored.RefundStatus)

	var refundEntry models.Transaction
	require.NoError(t, db.Where("type = ? AND user_id = ?",
		models.TransactionTypeRefund, buyer.ID).First(&refundEntry).Error)
	requireAmount(t, "25", refundEntry.Amount)
	assert.Equal(t, models.TransactionStatusConfirmed, refundEntry.Status)
	require.NotNil(t, refundEntry.ListingID)
	assert.Equal(t, listing.ID, *refundEntry.ListingID)
}

func TestApproveRefundTwice(t *testing.T) {
	db := newTestDB(t)
	seller := createUser(t, db, "seller", models.RoleSeller, "0")
	buyer := createUser(t, db, "buyer", models.RoleUser, "25")
	listing := createListing(t, db, seller.ID, "25", models.ListingStatusActive)
	purchase := buyActiveListing(t, db, buyer.ID, listing.ID)
	require.NoError(t, RequestRefund(db, buyer.ID, purchase.ID, "code invalid"))

	var request models.RefundRequest
	require.NoError(t, db.Where("transaction_id = ?", purchase.ID).First(&request).Error)

	_, err := ApproveRefund(db, request.ID)
	require.NoError(t, err)

	_, err = ApproveRefund(db, request.ID)
	require.ErrorIs(t, err, ErrAlreadyProcessed)

	// the second attempt must not move balances again
	requireAmount(t, "25", balanceOf(t, db, buyer.ID))
	requireAmount(t, "0", balanceOf(t, db, seller.ID))
}

func TestRejectRefund(t *testing.T) {
	db := newTestDB(t)
	seller := createUser(t, db, "seller", models.RoleSeller, "0")
	buyer := createUser(t, db, "buyer", models.RoleUser, "25")
	listing := createListing(t, db, seller.ID, "25", models.ListingStatusActive)
	purchase := buyActiveListing(t, db, buyer.ID, listing.ID)
	require.NoError(t, RequestRefund(db, buyer.ID, purchase.ID, "changed my mind"))

	var request models.RefundRequest
	require.NoError(t, db.Where("transaction_id = ?", purchase.ID).First(&request).Error)

	decision, err := RejectRefund(db, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RefundRequestStatusRejected, decision.Status)

	// no balance movement on reject
	requireAmount(t, "0", balanceOf(t, db, buyer.ID))
	requireAmount(t, "25", balanceOf(t, db, seller.ID))

	require.NoError(t, db.First(&request, request.ID).Error)
	assert.Equal(t, models.RefundRequestStatusRejected, request.Status)

	var stored models.Transaction
	require.NoError(t, db.First(&stored, purchase.ID).Error)
	require.NotNil(t, stored.RefundStatus)
	assert.Equal(t, models.RefundStatusRejected, *stored.RefundStatus)

	_, err = ApproveRefund(db, request.ID)
	require.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestRefundDecisionMissingRequest(t *testing.T) {
	db := newTestDB(t)
	_, err := ApproveRefund(db, 404)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = RejectRefund(db, 404)
	require.ErrorIs(t, err, ErrNotFound)
}

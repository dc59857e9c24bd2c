package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arjun-P-716/CardBay/models"
)

func TestCreditDeposit(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "user", models.RoleUser, "5")

	entry, err := CreditDeposit(db, user.ID, decimal.RequireFromString("50"), "btc:deadbeef")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionTypeDeposit, entry.Type)
	assert.Equal(t, models.TransactionStatusConfirmed, entry.Status)
	assert.Equal(t, "btc:deadbeef", entry.Reference)
	requireAmount(t, "50", entry.Amount)
	requireAmount(t, "55", balanceOf(t, db, user.ID))
}

func TestCreditDepositAppliesBonus(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "user", models.RoleUser, "0")
	settings := models.AdminSettings{
		BonusPercentage: decimal.RequireFromString("10"),
		MinBonusAmount:  decimal.RequireFromString("100"),
	}
	require.NoError(t, db.Create(&settings).Error)

	// below the bonus threshold: credited as-is
	_, err := CreditDeposit(db, user.ID, decimal.RequireFromString("99"), "btc:a")
	require.NoError(t, err)
	requireAmount(t, "99", balanceOf(t, db, user.ID))

	// at the threshold: 10% bonus
	entry, err := CreditDeposit(db, user.ID, decimal.RequireFromString("100"), "btc:b")
	require.NoError(t, err)
	requireAmount(t, "110", entry.Amount)
	requireAmount(t, "209", balanceOf(t, db, user.ID))
}

func TestCreditDepositRejectsBadAmounts(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "user", models.RoleUser, "0")

	_, err := CreditDeposit(db, user.ID, decimal.Zero, "btc:x")
	require.ErrorIs(t, err, ErrInvalidAmount)
	_, err = CreditDeposit(db, user.ID, decimal.RequireFromString("-5"), "btc:x")
	require.ErrorIs(t, err, ErrInvalidAmount)
	_, err = CreditDeposit(db, 9999, decimal.RequireFromString("5"), "btc:x")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRequestWithdrawal(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "user", models.RoleUser, "80")

	entry, err := RequestWithdrawal(db, user.ID, decimal.RequireFromString("60"), "bc1qexample")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusPending, entry.Status)
	assert.Equal(t, "bc1qexample", entry.Reference)

	// balance is untouched until the withdrawal is completed
	requireAmount(t, "80", balanceOf(t, db, user.ID))

	// only one pending withdrawal at a time
	_, err = RequestWithdrawal(db, user.ID, decimal.RequireFromString("10"), "bc1qexample")
	require.ErrorIs(t, err, ErrAlreadyRequested)
}

func TestRequestWithdrawalInsufficientBalance(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "user", models.RoleUser, "10")

	_, err := RequestWithdrawal(db, user.ID, decimal.RequireFromString("25"), "bc1qexample")
	require.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestCompleteWithdrawal(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "user", models.RoleUser, "80")
	entry, err := RequestWithdrawal(db, user.ID, decimal.RequireFromString("60"), "bc1qexample")
	require.NoError(t, err)

	require.NoError(t, CompleteWithdrawal(db, entry.ID))
	requireAmount(t, "20", balanceOf(t, db, user.ID))

	var stored models.Transaction
	require.NoError(t, db.First(&stored, entry.ID).Error)
	assert.Equal(t, models.TransactionStatusConfirmed, stored.Status)

	// completing twice is rejected and does not double-debit
	err = CompleteWithdrawal(db, entry.ID)
	require.ErrorIs(t, err, ErrAlreadyProcessed)
	requireAmount(t, "20", balanceOf(t, db, user.ID))
}

func TestCancelWithdrawal(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "user", models.RoleUser, "80")
	entry, err := RequestWithdrawal(db, user.ID, decimal.RequireFromString("60"), "bc1qexample")
	require.NoError(t, err)

	require.NoError(t, CancelWithdrawal(db, entry.ID))
	requireAmount(t, "80", balanceOf(t, db, user.ID))

	var stored models.Transaction
	require.NoError(t, db.First(&stored, entry.ID).Error)
	assert.Equal(t, models.TransactionStatusCanceled, stored.Status)

	err = CompleteWithdrawal(db, entry.ID)
	require.ErrorIs(t, err, ErrAlreadyProcessed)
}

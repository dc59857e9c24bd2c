package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Arjun-P-716/CardBay/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps every session on the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.Transaction{},
		&models.RefundRequest{},
		&models.AdminSettings{},
		&models.TopupOrder{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username, role, balance string) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret",
		Role:     role,
		Balance:  decimal.RequireFromString(balance),
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createListing(t *testing.T, db *gorm.DB, sellerID uint, price, status string) models.Listing {
	t.Helper()
	listing := models.Listing{
		SellerID: sellerID,
		Title:    "Prepaid Visa $50",
		Brand:    "Visa",
		CardType: "prepaid",
		Country:  "US",
		Price:    decimal.RequireFromString(price),
		Code:     "4111222233334444",
		Pin:      "9876",
		ExpMonth: 12,
		ExpYear:  2028,
		Status:   status,
	}
	require.NoError(t, db.Create(&listing).Error)
	return listing
}

func balanceOf(t *testing.T, db *gorm.DB, userID uint) decimal.Decimal {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, userID).Error)
	return user.Balance
}

func requireAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(want).Equal(got),
		"want %s, got %s", want, got.String())
}

// buyActiveListing runs a successful purchase and returns the buyer's ledger
// entry.
func buyActiveListing(t *testing.T, db *gorm.DB, buyerID, listingID uint) models.Transaction {
	t.Helper()
	result, err := Purchase(db, buyerID, listingID)
	require.NoError(t, err)
	return result.Transaction
}

func forcePass() bool { return true }
func forceFail() bool { return false }

package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	razorpay "github.com/razorpay/razorpay-go"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Arjun-P-716/CardBay/config"
	"github.com/Arjun-P-716/CardBay/models"
	"github.com/Arjun-P-716/CardBay/services"
	"github.com/Arjun-P-716/CardBay/utils"
)

var decimalHundred = decimal.NewFromInt(100)

// InitiateWalletTopup creates a Razorpay order for a card-based balance topup
// and records it as pending.
func InitiateWalletTopup(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		Amount string `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Amount is required", err.Error())
		return
	}
	amount, err := utils.ParseAmount(req.Amount)
	if err != nil {
		utils.BadRequest(c, "Invalid amount", nil)
		return
	}

	// Razorpay expects the amount in the currency's smallest unit.
	amountMinor := amount.Mul(decimalHundred).IntPart()

	client := razorpay.NewClient(os.Getenv("RAZORPAY_KEY"), os.Getenv("RAZORPAY_SECRET"))
	orderData := map[string]interface{}{
		"amount":          amountMinor,
		"currency":        "USD",
		"receipt":         "topup_" + strconv.FormatUint(uint64(user.ID), 10) + "_" + time.Now().Format("20060102150405"),
		"payment_capture": 1,
	}
	rzOrder, err := client.Order.Create(orderData, nil)
	if err != nil {
		utils.LogError("Failed to create Razorpay order for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create payment order", nil)
		return
	}

	order := models.TopupOrder{
		UserID:          user.ID,
		RazorpayOrderID: fmt.Sprintf("%v", rzOrder["id"]),
		Amount:          amount,
		Status:          models.TransactionStatusPending,
	}
	if err := config.DB.Create(&order).Error; err != nil {
		utils.LogError("Failed to record topup order for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to record topup order", nil)
		return
	}

	utils.LogInfo("User %d initiated topup of %s", user.ID, utils.FormatAmount(amount))
	utils.Success(c, "Topup order created", gin.H{
		"razorpay_order_id": order.RazorpayOrderID,
		"amount":            utils.FormatAmount(amount),
		"key":               os.Getenv("RAZORPAY_KEY"),
	})
}

// VerifyWalletTopup verifies the Razorpay signature and credits the balance.
// Marking the order paid and crediting happen in one database transaction so
// a replayed callback cannot credit twice.
func VerifyWalletTopup(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
		RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
		RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Order, payment and signature are required", err.Error())
		return
	}

	mac := hmac.New(sha256.New, []byte(os.Getenv("RAZORPAY_SECRET")))
	mac.Write([]byte(req.RazorpayOrderID + "|" + req.RazorpayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(req.RazorpaySignature)) {
		utils.LogError("Topup signature mismatch for order %s", req.RazorpayOrderID)
		utils.BadRequest(c, "Payment verification failed", gin.H{"retry": true})
		return
	}

	var entry *models.Transaction
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var order models.TopupOrder
		if err := tx.Where("razorpay_order_id = ? AND user_id = ?", req.RazorpayOrderID, user.ID).
			First(&order).Error; err != nil {
			return services.ErrNotFound
		}
		if order.Status != models.TransactionStatusPending {
			return services.ErrAlreadyProcessed
		}
		if err := tx.Model(&order).Update("status", models.TransactionStatusConfirmed).Error; err != nil {
			return err
		}
		credited, err := services.CreditDeposit(tx, user.ID, order.Amount, "TOPUP-"+req.RazorpayPaymentID)
		if err != nil {
			return err
		}
		entry = credited
		return nil
	})
	if err != nil {
		handleServiceError(c, err, "Topup verification")
		return
	}

	utils.LogInfo("User %d topup of %s credited", user.ID, utils.FormatAmount(entry.Amount))
	utils.Success(c, "Balance topped up", gin.H{
		"amount_added": utils.FormatAmount(entry.Amount),
		"transaction":  entry,
	})
}

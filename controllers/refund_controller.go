package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Arjun-P-716/CardBay/config"
	"github.com/Arjun-P-716/CardBay/models"
	"github.com/Arjun-P-716/CardBay/services"
	"github.com/Arjun-P-716/CardBay/utils"
)

// RequestRefund files a dispute against one of the caller's purchases.
func RequestRefund(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		TransactionID uint   `json:"transaction_id" binding:"required"`
		Reason        string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Transaction ID and reason are required", err.Error())
		return
	}

	if err := services.RequestRefund(config.DB, user.ID, req.TransactionID, req.Reason); err != nil {
		handleServiceError(c, err, "Refund request")
		return
	}

	utils.LogInfo("User %d requested refund for transaction %d", user.ID, req.TransactionID)
	utils.Created(c, "Refund request submitted", nil)
}

// GetMyRefunds lists the caller's refund requests, newest first.
func GetMyRefunds(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var requests []models.RefundRequest
	if err := config.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").Find(&requests).Error; err != nil {
		utils.LogError("Failed to fetch refund requests: %v", err)
		utils.InternalServerError(c, "Failed to fetch refund requests", nil)
		return
	}

	utils.Success(c, "Refund requests retrieved", gin.H{"refunds": requests})
}

// AutoCheckTransaction runs the time-boxed card check on a purchase. A failed
// check refunds the buyer immediately.
func AutoCheckTransaction(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	transactionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid transaction ID", nil)
		return
	}

	result, err := services.AutoCheck(config.DB, user.ID, uint(transactionID), nil)
	if err != nil {
		handleServiceError(c, err, "Card check")
		return
	}

	if result.Status == services.CheckStatusRefunded {
		utils.LogInfo("Card check failed for transaction %d, refunded %s to user %d",
			transactionID, utils.FormatAmount(result.Amount), user.ID)
		utils.Success(c, "Card check failed, amount refunded", gin.H{
			"result": result.Status,
			"amount": utils.FormatAmount(result.Amount),
		})
		return
	}

	utils.Success(c, "Card check passed", gin.H{"result": result.Status})
}

package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Arjun-P-716/CardBay/config"
	"github.com/Arjun-P-716/CardBay/models"
	"github.com/Arjun-P-716/CardBay/services"
	"github.com/Arjun-P-716/CardBay/utils"
)

// CreditUserDeposit credits a confirmed external deposit to a user's balance.
// Used after the admin verifies the BTC payment on-chain.
func CreditUserDeposit(c *gin.Context) {
	var req struct {
		UserID    uint   `json:"user_id" binding:"required"`
		Amount    string `json:"amount" binding:"required"`
		Reference string `json:"reference"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "User ID and amount are required", err.Error())
		return
	}

	amount, err := utils.ParseAmount(req.Amount)
	if err != nil {
		utils.BadRequest(c, "Invalid amount", nil)
		return
	}

	entry, err := services.CreditDeposit(config.DB, req.UserID, amount, req.Reference)
	if err != nil {
		handleServiceError(c, err, "Deposit credit")
		return
	}

	utils.LogInfo("Admin credited deposit of %s to user %d",
		utils.FormatAmount(entry.Amount), req.UserID)
	utils.Created(c, "Deposit credited", gin.H{"transaction": entry})
}

// GetWithdrawals lists withdrawal requests, optionally filtered by status.
func GetWithdrawals(c *gin.Context) {
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Transaction{}).
		Where("type = ?", models.TransactionTypeWithdrawal)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count withdrawals: %v", err)
		utils.InternalServerError(c, "Failed to fetch withdrawals", nil)
		return
	}

	var withdrawals []models.Transaction
	if err := query.Order("created_at ASC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&withdrawals).Error; err != nil {
		utils.LogError("Failed to fetch withdrawals: %v", err)
		utils.InternalServerError(c, "Failed to fetch withdrawals", nil)
		return
	}

	utils.SuccessWithPagination(c, "Withdrawals retrieved", withdrawals, total, pagination.Page, pagination.Limit)
}

// CompleteWithdrawal marks a withdrawal as paid out and debits the balance.
func CompleteWithdrawal(c *gin.Context) {
	transactionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid transaction ID", nil)
		return
	}

	if err := services.CompleteWithdrawal(config.DB, uint(transactionID)); err != nil {
		handleServiceError(c, err, "Withdrawal completion")
		return
	}

	utils.LogInfo("Admin completed withdrawal %d", transactionID)
	utils.Success(c, "Withdrawal completed", nil)
}

// CancelWithdrawal cancels a pending withdrawal.
func CancelWithdrawal(c *gin.Context) {
	transactionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid transaction ID", nil)
		return
	}

	if err := services.CancelWithdrawal(config.DB, uint(transactionID)); err != nil {
		handleServiceError(c, err, "Withdrawal cancellation")
		return
	}

	utils.LogInfo("Admin canceled withdrawal %d", transactionID)
	utils.Success(c, "Withdrawal canceled", nil)
}

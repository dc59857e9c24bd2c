package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Arjun-P-716/CardBay/config"
	"github.com/Arjun-P-716/CardBay/models"
	"github.com/Arjun-P-716/CardBay/services"
	"github.com/Arjun-P-716/CardBay/utils"
)

// GetRefundRequests lists refund requests for adjudication, pending first.
func GetRefundRequests(c *gin.Context) {
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.RefundRequest{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count refund requests: %v", err)
		utils.InternalServerError(c, "Failed to fetch refund requests", nil)
		return
	}

	var requests []models.RefundRequest
	if err := query.Preload("User").Preload("Transaction").
		Order("status = 'pending' DESC, created_at ASC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&requests).Error; err != nil {
		utils.LogError("Failed to fetch refund requests: %v", err)
		utils.InternalServerError(c, "Failed to fetch refund requests", nil)
		return
	}

	utils.SuccessWithPagination(c, "Refund requests retrieved", requests, total, pagination.Page, pagination.Limit)
}

// ApproveRefundRequest approves a refund and notifies the buyer by email.
func ApproveRefundRequest(c *gin.Context) {
	refundID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid refund ID", nil)
		return
	}

	decision, err := services.ApproveRefund(config.DB, uint(refundID))
	if err != nil {
		handleServiceError(c, err, "Refund approval")
		return
	}

	notifyRefundDecision(decision, true)

	utils.LogInfo("Admin approved refund %d, credited %s to user %d",
		decision.RefundID, utils.FormatAmount(decision.Amount), decision.BuyerID)
	utils.Success(c, "Refund approved", gin.H{
		"refund_id": decision.RefundID,
		"amount":    utils.FormatAmount(decision.Amount),
		"status":    decision.Status,
	})
}

// RejectRefundRequest rejects a refund and notifies the buyer by email.
func RejectRefundRequest(c *gin.Context) {
	refundID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid refund ID", nil)
		return
	}

	decision, err := services.RejectRefund(config.DB, uint(refundID))
	if err != nil {
		handleServiceError(c, err, "Refund rejection")
		return
	}

	notifyRefundDecision(decision, false)

	utils.LogInfo("Admin rejected refund %d", decision.RefundID)
	utils.Success(c, "Refund rejected", gin.H{
		"refund_id": decision.RefundID,
		"status":    decision.Status,
	})
}

// notifyRefundDecision emails the buyer off the request path. Failures are
// logged and do not affect the response.
func notifyRefundDecision(decision *services.RefundDecision, approved bool) {
	var buyer models.User
	if err := config.DB.First(&buyer, decision.BuyerID).Error; err != nil {
		utils.LogError("Failed to load buyer %d for refund email: %v", decision.BuyerID, err)
		return
	}
	go func(email, amount string) {
		if err := utils.SendRefundDecisionEmail(email, amount, approved); err != nil {
			utils.LogError("Failed to send refund email to %s: %v", email, err)
		}
	}(buyer.Email, utils.FormatAmount(decision.Amount))
}

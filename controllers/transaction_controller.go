package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/Arjun-P-716/CardBay/config"
	"github.com/Arjun-P-716/CardBay/models"
	"github.com/Arjun-P-716/CardBay/utils"
)

// GetTransactions returns the caller's full ledger, newest first, with an
// optional type filter.
func GetTransactions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Transaction{}).Where("user_id = ?", user.ID)
	if txType := c.Query("type"); txType != "" {
		query = query.Where("type = ?", txType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count transactions: %v", err)
		utils.InternalServerError(c, "Failed to fetch transactions", nil)
		return
	}

	var transactions []models.Transaction
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&transactions).Error; err != nil {
		utils.LogError("Failed to fetch transactions: %v", err)
		utils.InternalServerError(c, "Failed to fetch transactions", nil)
		return
	}

	utils.SuccessWithPagination(c, "Transactions retrieved", transactions, total, pagination.Page, pagination.Limit)
}

// GetOrders returns the caller's purchases with the listing preloaded.
func GetOrders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var orders []models.Transaction
	if err := config.DB.Preload("Listing").
		Where("user_id = ? AND type = ?", user.ID, models.TransactionTypePurchase).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	utils.Success(c, "Orders retrieved", gin.H{"orders": orders})
}

// GetPurchasedItems returns the card payloads of every listing the caller has
// bought, skipping purchases that were refunded.
func GetPurchasedItems(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var purchases []models.Transaction
	if err := config.DB.Preload("Listing").
		Where("user_id = ? AND type = ? AND (refund_status IS NULL OR refund_status NOT IN ?)",
			user.ID, models.TransactionTypePurchase,
			[]string{models.RefundStatusApproved, models.RefundStatusAutoRefunded}).
		Order("created_at DESC").
		Find(&purchases).Error; err != nil {
		utils.LogError("Failed to fetch purchased items: %v", err)
		utils.InternalServerError(c, "Failed to fetch purchased items", nil)
		return
	}

	items := make([]gin.H, 0, len(purchases))
	for _, purchase := range purchases {
		if purchase.Listing == nil {
			continue
		}
		items = append(items, gin.H{
			"transaction_id": purchase.ID,
			"purchased_at":   purchase.CreatedAt,
			"title":          purchase.Listing.Title,
			"card":           purchase.Listing.CardDetails(),
		})
	}

	utils.Success(c, "Purchased items retrieved", gin.H{"items": items})
}

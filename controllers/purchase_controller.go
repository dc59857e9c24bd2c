package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Arjun-P-716/CardBay/config"
	"github.com/Arjun-P-716/CardBay/services"
	"github.com/Arjun-P-716/CardBay/utils"
)

// PurchaseListing buys a listing with wallet balance and returns the card
// payload along with the ledger entry.
func PurchaseListing(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	listingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid listing ID", nil)
		return
	}

	result, err := services.Purchase(config.DB, user.ID, uint(listingID))
	if err != nil {
		handleServiceError(c, err, "Purchase")
		return
	}

	utils.LogInfo("User %d purchased listing %d for %s",
		user.ID, result.Listing.ID, utils.FormatAmount(result.Transaction.Amount))
	utils.Success(c, "Purchase successful", gin.H{
		"transaction": result.Transaction,
		"card":        result.Listing.CardDetails(),
	})
}

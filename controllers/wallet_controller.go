package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/Arjun-P-716/CardBay/config"
	"github.com/Arjun-P-716/CardBay/models"
	"github.com/Arjun-P-716/CardBay/services"
	"github.com/Arjun-P-716/CardBay/utils"
)

// GetWalletBalance returns the caller's current balance.
func GetWalletBalance(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	// Re-read so long-lived sessions see balance changes from other requests.
	var fresh models.User
	if err := config.DB.First(&fresh, user.ID).Error; err != nil {
		utils.LogError("Failed to load user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch balance", nil)
		return
	}

	utils.Success(c, "Balance retrieved", gin.H{
		"balance": utils.FormatAmount(fresh.Balance),
	})
}

// GetDepositInfo returns the site deposit address plus a BTC quote when the
// caller passes an amount query parameter.
func GetDepositInfo(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	var settings models.AdminSettings
	if err := config.DB.First(&settings).Error; err != nil {
		utils.LogError("Failed to load settings: %v", err)
		utils.InternalServerError(c, "Failed to fetch deposit info", nil)
		return
	}

	data := gin.H{
		"wallet_address":   settings.WalletAddress,
		"qr_code_url":      settings.QrCodeURL,
		"btc_rate":         settings.BtcRate,
		"exchange_fee":     settings.ExchangeFee,
		"bonus_percentage": settings.BonusPercentage,
		"min_bonus_amount": settings.MinBonusAmount,
	}

	if raw := c.Query("amount"); raw != "" {
		amount, err := utils.ParseAmount(raw)
		if err != nil {
			utils.BadRequest(c, "Invalid amount", nil)
			return
		}
		btc, err := utils.QuoteDepositBTC(amount, settings.BtcRate, settings.ExchangeFee)
		if err != nil {
			utils.BadRequest(c, "BTC rate not configured", nil)
			return
		}
		data["amount_usd"] = utils.FormatAmount(amount)
		data["amount_btc"] = btc.String()
	}

	utils.Success(c, "Deposit info retrieved", data)
}

// RequestWithdrawal files a pending withdrawal to a BTC address.
func RequestWithdrawal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		Amount  string `json:"amount" binding:"required"`
		Address string `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Amount and address are required", err.Error())
		return
	}

	amount, err := utils.ParseAmount(req.Amount)
	if err != nil {
		utils.BadRequest(c, "Invalid amount", nil)
		return
	}
	if err := utils.ValidateBTCAddress(req.Address); err != nil {
		utils.BadRequest(c, "Invalid BTC address", nil)
		return
	}

	entry, err := services.RequestWithdrawal(config.DB, user.ID, amount, req.Address)
	if err != nil {
		handleServiceError(c, err, "Withdrawal request")
		return
	}

	utils.LogInfo("User %d requested withdrawal of %s", user.ID, utils.FormatAmount(amount))
	utils.Created(c, "Withdrawal requested", gin.H{"withdrawal": entry})
}

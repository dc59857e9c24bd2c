package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/Arjun-P-716/CardBay/config"
	"github.com/Arjun-P-716/CardBay/models"
	"github.com/Arjun-P-716/CardBay/utils"
)

// GetSettings returns the full site configuration.
func GetSettings(c *gin.Context) {
	var settings models.AdminSettings
	if err := config.DB.First(&settings).Error; err != nil {
		utils.LogError("Failed to load settings: %v", err)
		utils.InternalServerError(c, "Failed to fetch settings", nil)
		return
	}
	utils.Success(c, "Settings retrieved", gin.H{"settings": settings})
}

// UpdateSettings edits the site configuration. All fields are optional.
func UpdateSettings(c *gin.Context) {
	var req struct {
		SiteName        *string `json:"site_name"`
		WalletAddress   *string `json:"wallet_address"`
		BtcRate         *string `json:"btc_rate"`
		BonusPercentage *string `json:"bonus_percentage"`
		MinBonusAmount  *string `json:"min_bonus_amount"`
		ExchangeFee     *string `json:"exchange_fee"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var settings models.AdminSettings
	if err := config.DB.First(&settings).Error; err != nil {
		utils.LogError("Failed to load settings: %v", err)
		utils.InternalServerError(c, "Failed to fetch settings", nil)
		return
	}

	updates := map[string]interface{}{}
	if req.SiteName != nil {
		updates["site_name"] = *req.SiteName
	}
	if req.WalletAddress != nil {
		if err := utils.ValidateBTCAddress(*req.WalletAddress); err != nil {
			utils.BadRequest(c, "Invalid BTC address", nil)
			return
		}
		updates["wallet_address"] = *req.WalletAddress
	}
	for column, raw := range map[string]*string{
		"btc_rate":         req.BtcRate,
		"bonus_percentage": req.BonusPercentage,
		"min_bonus_amount": req.MinBonusAmount,
		"exchange_fee":     req.ExchangeFee,
	} {
		if raw == nil {
			continue
		}
		value, err := utils.ParseAmount(*raw)
		if err != nil {
			utils.BadRequest(c, "Invalid value for "+column, nil)
			return
		}
		updates[column] = value
	}
	if len(updates) == 0 {
		utils.BadRequest(c, "Nothing to update", nil)
		return
	}

	if err := config.DB.Model(&settings).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update settings: %v", err)
		utils.InternalServerError(c, "Failed to update settings", nil)
		return
	}
	if err := config.DB.First(&settings, settings.ID).Error; err != nil {
		utils.LogError("Failed to reload settings: %v", err)
		utils.InternalServerError(c, "Failed to update settings", nil)
		return
	}

	utils.LogInfo("Admin updated site settings")
	utils.Success(c, "Settings updated", gin.H{"settings": settings})
}

// UploadQrCode stores the deposit QR image and records its URL.
func UploadQrCode(c *gin.Context) {
	file, err := c.FormFile("qr_code")
	if err != nil {
		utils.BadRequest(c, "QR code image is required", nil)
		return
	}

	path, err := utils.SaveUploadedFile(file, utils.UploadDir)
	if err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	var settings models.AdminSettings
	if err := config.DB.First(&settings).Error; err != nil {
		utils.LogError("Failed to load settings: %v", err)
		utils.InternalServerError(c, "Failed to save QR code", nil)
		return
	}
	if err := config.DB.Model(&settings).
		Update("qr_code_url", "/"+path).Error; err != nil {
		utils.LogError("Failed to save QR code URL: %v", err)
		utils.InternalServerError(c, "Failed to save QR code", nil)
		return
	}

	utils.Success(c, "QR code uploaded", gin.H{"qr_code_url": "/" + path})
}

// GetPublicSettings exposes the subset of settings the storefront needs.
func GetPublicSettings(c *gin.Context) {
	var settings models.AdminSettings
	if err := config.DB.First(&settings).Error; err != nil {
		utils.LogError("Failed to load settings: %v", err)
		utils.InternalServerError(c, "Failed to fetch settings", nil)
		return
	}
	utils.Success(c, "Settings retrieved", gin.H{
		"site_name":        settings.SiteName,
		"bonus_percentage": settings.BonusPercentage,
		"min_bonus_amount": settings.MinBonusAmount,
	})
}

package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Arjun-P-716/CardBay/config"
	"github.com/Arjun-P-716/CardBay/models"
	"github.com/Arjun-P-716/CardBay/utils"
)

// GetListings returns the active catalog with optional brand, country, card
// type and price range filters.
func GetListings(c *gin.Context) {
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Listing{}).Where("status = ?", models.ListingStatusActive)

	if brand := c.Query("brand"); brand != "" {
		query = query.Where("brand = ?", brand)
	}
	if country := c.Query("country"); country != "" {
		query = query.Where("country = ?", country)
	}
	if cardType := c.Query("card_type"); cardType != "" {
		query = query.Where("card_type = ?", cardType)
	}
	if minPrice := c.Query("min_price"); minPrice != "" {
		if amount, err := utils.ParseAmount(minPrice); err == nil {
			query = query.Where("price >= ?", amount)
		}
	}
	if maxPrice := c.Query("max_price"); maxPrice != "" {
		if amount, err := utils.ParseAmount(maxPrice); err == nil {
			query = query.Where("price <= ?", amount)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count listings: %v", err)
		utils.InternalServerError(c, "Failed to fetch listings", nil)
		return
	}

	var listings []models.Listing
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&listings).Error; err != nil {
		utils.LogError("Failed to fetch listings: %v", err)
		utils.InternalServerError(c, "Failed to fetch listings", nil)
		return
	}

	utils.SuccessWithPagination(c, "Listings retrieved", listings, total, pagination.Page, pagination.Limit)
}

// GetMyListings returns every listing owned by the authenticated seller.
func GetMyListings(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var listings []models.Listing
	if err := config.DB.Where("seller_id = ?", user.ID).
		Order("created_at DESC").Find(&listings).Error; err != nil {
		utils.LogError("Failed to fetch seller listings: %v", err)
		utils.InternalServerError(c, "Failed to fetch listings", nil)
		return
	}

	utils.Success(c, "Listings retrieved", gin.H{"listings": listings})
}

type listingRequest struct {
	Title     string `json:"title" binding:"required"`
	Brand     string `json:"brand" binding:"required"`
	CardType  string `json:"card_type"`
	Country   string `json:"country"`
	FaceValue string `json:"face_value"`
	Price     string `json:"price" binding:"required"`
	Details   string `json:"details"`
	Code      string `json:"code" binding:"required"`
	Pin       string `json:"pin"`
	ExpMonth  int    `json:"exp_month"`
	ExpYear   int    `json:"exp_year"`
}

// CreateListing submits a new card for admin review. A plain user becomes a
// seller on their first submission.
func CreateListing(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Title, brand, price and code are required", err.Error())
		return
	}

	price, err := utils.ParseAmount(req.Price)
	if err != nil {
		utils.BadRequest(c, "Invalid price", nil)
		return
	}

	listing := models.Listing{
		SellerID: user.ID,
		Title:    req.Title,
		Brand:    req.Brand,
		CardType: req.CardType,
		Country:  req.Country,
		Price:    price,
		Details:  req.Details,
		Code:     req.Code,
		Pin:      req.Pin,
		ExpMonth: req.ExpMonth,
		ExpYear:  req.ExpYear,
		Status:   models.ListingStatusPending,
	}
	if req.FaceValue != "" {
		faceValue, err := utils.ParseAmount(req.FaceValue)
		if err != nil {
			utils.BadRequest(c, "Invalid face value", nil)
			return
		}
		listing.FaceValue = faceValue
	}

	if err := config.DB.Create(&listing).Error; err != nil {
		utils.LogError("Failed to create listing: %v", err)
		utils.InternalServerError(c, "Failed to create listing", nil)
		return
	}

	if user.Role == models.RoleUser {
		if err := config.DB.Model(&user).Update("role", models.RoleSeller).Error; err != nil {
			utils.LogError("Failed to promote user %d to seller: %v", user.ID, err)
		}
	}

	utils.LogInfo("User %d submitted listing %d", user.ID, listing.ID)
	utils.Created(c, "Listing submitted for review", gin.H{"listing": listing})
}

// UpdateListing edits an unsold listing owned by the caller. Edits send the
// listing back to review.
func UpdateListing(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	listingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid listing ID", nil)
		return
	}

	var listing models.Listing
	if err := config.DB.Where("id = ? AND seller_id = ?", listingID, user.ID).
		First(&listing).Error; err != nil {
		utils.NotFound(c, "Listing not found")
		return
	}
	if listing.Status == models.ListingStatusSold {
		utils.BadRequest(c, "Sold listings cannot be edited", nil)
		return
	}

	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Title, brand, price and code are required", err.Error())
		return
	}
	price, err := utils.ParseAmount(req.Price)
	if err != nil {
		utils.BadRequest(c, "Invalid price", nil)
		return
	}

	listing.Title = req.Title
	listing.Brand = req.Brand
	listing.CardType = req.CardType
	listing.Country = req.Country
	listing.Price = price
	listing.Details = req.Details
	listing.Code = req.Code
	listing.Pin = req.Pin
	listing.ExpMonth = req.ExpMonth
	listing.ExpYear = req.ExpYear
	listing.Status = models.ListingStatusPending
	if req.FaceValue != "" {
		faceValue, err := utils.ParseAmount(req.FaceValue)
		if err != nil {
			utils.BadRequest(c, "Invalid face value", nil)
			return
		}
		listing.FaceValue = faceValue
	}

	if err := config.DB.Save(&listing).Error; err != nil {
		utils.LogError("Failed to update listing %d: %v", listing.ID, err)
		utils.InternalServerError(c, "Failed to update listing", nil)
		return
	}

	utils.Success(c, "Listing updated and resubmitted for review", gin.H{"listing": listing})
}

// DeleteListing removes an unsold listing owned by the caller.
func DeleteListing(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	listingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid listing ID", nil)
		return
	}

	var listing models.Listing
	if err := config.DB.Where("id = ? AND seller_id = ?", listingID, user.ID).
		First(&listing).Error; err != nil {
		utils.NotFound(c, "Listing not found")
		return
	}
	if listing.Status == models.ListingStatusSold {
		utils.BadRequest(c, "Sold listings cannot be deleted", nil)
		return
	}

	if err := config.DB.Delete(&listing).Error; err != nil {
		utils.LogError("Failed to delete listing %d: %v", listing.ID, err)
		utils.InternalServerError(c, "Failed to delete listing", nil)
		return
	}

	utils.Success(c, "Listing deleted", nil)
}

// GetCardDetails reveals the card payload of a sold listing to its buyer.
func GetCardDetails(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	listingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid listing ID", nil)
		return
	}

	var listing models.Listing
	if err := config.DB.First(&listing, listingID).Error; err != nil {
		utils.NotFound(c, "Listing not found")
		return
	}

	var purchased int64
	if err := config.DB.Model(&models.Transaction{}).
		Where("user_id = ? AND listing_id = ? AND type = ?",
			user.ID, listing.ID, models.TransactionTypePurchase).
		Count(&purchased).Error; err != nil {
		utils.LogError("Failed to check purchase: %v", err)
		utils.InternalServerError(c, "Failed to fetch card details", nil)
		return
	}
	if purchased == 0 {
		utils.Forbidden(c, "You have not purchased this card")
		return
	}

	utils.Success(c, "Card details retrieved", gin.H{"card": listing.CardDetails()})
}

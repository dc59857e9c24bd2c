package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Arjun-P-716/CardBay/config"
	"github.com/Arjun-P-716/CardBay/models"
	"github.com/Arjun-P-716/CardBay/utils"
)

// GetAllListings lists every listing for review, optionally filtered by
// status. The seller is preloaded and the card payload stays hidden.
func GetAllListings(c *gin.Context) {
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Listing{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count listings: %v", err)
		utils.InternalServerError(c, "Failed to fetch listings", nil)
		return
	}

	var listings []models.Listing
	if err := query.Preload("Seller").Order("created_at ASC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&listings).Error; err != nil {
		utils.LogError("Failed to fetch listings: %v", err)
		utils.InternalServerError(c, "Failed to fetch listings", nil)
		return
	}

	utils.SuccessWithPagination(c, "Listings retrieved", listings, total, pagination.Page, pagination.Limit)
}

// ApproveListing moves a pending listing into the catalog.
func ApproveListing(c *gin.Context) {
	setListingStatus(c, models.ListingStatusActive, "Listing approved")
}

// RejectListing declines a pending listing.
func RejectListing(c *gin.Context) {
	setListingStatus(c, models.ListingStatusRejected, "Listing rejected")
}

// GetListingCard reveals the card payload of any listing for review.
func GetListingCard(c *gin.Context) {
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

	utils.Success(c, "Card details retrieved", gin.H{"card": listing.CardDetails()})
}

func setListingStatus(c *gin.Context, status, message string) {
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
	if listing.Status != models.ListingStatusPending {
		utils.BadRequest(c, "Only pending listings can be reviewed", nil)
		return
	}

	if err := config.DB.Model(&listing).Update("status", status).Error; err != nil {
		utils.LogError("Failed to update listing %d: %v", listing.ID, err)
		utils.InternalServerError(c, "Failed to update listing", nil)
		return
	}

	utils.LogInfo("Admin set listing %d to %s", listing.ID, status)
	utils.Success(c, message, gin.H{"listing": listing})
}

package controllers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"

	"github.com/Arjun-P-716/CardBay/config"
	"github.com/Arjun-P-716/CardBay/models"
	"github.com/Arjun-P-716/CardBay/utils"
)

// DownloadReceipt generates a PDF receipt for one of the caller's purchases.
// The card payload itself is never printed.
func DownloadReceipt(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	transactionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid transaction ID", nil)
		return
	}

	var txn models.Transaction
	if err := config.DB.Preload("Listing").
		Where("id = ? AND user_id = ? AND type = ?",
			transactionID, user.ID, models.TransactionTypePurchase).
		First(&txn).Error; err != nil {
		utils.NotFound(c, "Purchase not found")
		return
	}

	var settings models.AdminSettings
	siteName := utils.AppName
	if err := config.DB.First(&settings).Error; err == nil && settings.SiteName != "" {
		siteName = settings.SiteName
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, siteName)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "PURCHASE RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(60, 8, "Receipt #: "+strconv.FormatUint(uint64(txn.ID), 10))
	pdf.Cell(70, 8, "Date: "+txn.CreatedAt.Format("2006-01-02 15:04:05"))
	pdf.Ln(8)
	pdf.Cell(60, 8, "Buyer: "+user.Username)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(70, 8, "Item", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "Brand", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "Price", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 12)
	title, brand := "Card", ""
	if txn.Listing != nil {
		title = txn.Listing.Title
		brand = txn.Listing.Brand
	}
	pdf.CellFormat(70, 8, title, "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, brand, "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "$"+utils.FormatAmount(txn.Amount), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(110, 10, "Total Paid:", "", 0, "L", false, 0, "")
	pdf.CellFormat(40, 10, "$"+utils.FormatAmount(txn.Amount), "", 1, "R", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 11)
	pdf.Cell(0, 10, "Thank you for shopping with "+siteName+"!")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.LogError("Failed to render receipt for transaction %d: %v", txn.ID, err)
		utils.InternalServerError(c, "Failed to generate receipt", nil)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=receipt.pdf")
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

package controllers

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"

	"github.com/Arjun-P-716/CardBay/config"
	"github.com/Arjun-P-716/CardBay/models"
	"github.com/Arjun-P-716/CardBay/utils"
)

// reportRange resolves the period query parameter to a date range.
func reportRange(c *gin.Context) (time.Time, time.Time, bool) {
	period := c.DefaultQuery("period", "day")
	now := time.Now()
	end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())

	var start time.Time
	switch period {
	case "day":
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case "week":
		start = end.AddDate(0, 0, -6)
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	case "month":
		start = end.AddDate(0, -1, 0)
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	default:
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// DownloadTransactionsExcel exports the full ledger for a period as a
// spreadsheet.
func DownloadTransactionsExcel(c *gin.Context) {
	start, end, ok := reportRange(c)
	if !ok {
		return
	}

	var transactions []models.Transaction
	if err := config.DB.Preload("User").
		Where("created_at >= ? AND created_at <= ?", start, end).
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		utils.LogError("Failed to fetch transactions for export: %v", err)
		utils.InternalServerError(c, "Failed to fetch transactions", nil)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transactions")
	if err != nil {
		utils.LogError("Failed to create sheet: %v", err)
		utils.InternalServerError(c, "Failed to create spreadsheet", nil)
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString(utils.AppName + " - Transaction Ledger")
	rangeRow := sheet.AddRow()
	rangeRow.AddCell().SetString("Period: " + start.Format("2006-01-02") + " to " + end.Format("2006-01-02"))
	sheet.AddRow()

	headerRow := sheet.AddRow()
	for _, h := range []string{"ID", "User", "Type", "Amount", "Status", "Refund Status", "Reference", "Date"} {
		headerRow.AddCell().SetString(h)
	}

	for _, txn := range transactions {
		row := sheet.AddRow()
		row.AddCell().SetString(strconv.FormatUint(uint64(txn.ID), 10))
		row.AddCell().SetString(txn.User.Username)
		row.AddCell().SetString(txn.Type)
		row.AddCell().SetString(utils.FormatAmount(txn.Amount))
		row.AddCell().SetString(txn.Status)
		if txn.RefundStatus != nil {
			row.AddCell().SetString(*txn.RefundStatus)
		} else {
			row.AddCell().SetString("")
		}
		row.AddCell().SetString(txn.Reference)
		row.AddCell().SetString(txn.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		utils.LogError("Failed to render spreadsheet: %v", err)
		utils.InternalServerError(c, "Failed to generate spreadsheet", nil)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=transactions.xlsx")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// DownloadSalesReportPDF summarizes sales, refunds and deposits for a period.
func DownloadSalesReportPDF(c *gin.Context) {
	start, end, ok := reportRange(c)
	if !ok {
		return
	}

	var transactions []models.Transaction
	if err := config.DB.
		Where("created_at >= ? AND created_at <= ?", start, end).
		Find(&transactions).Error; err != nil {
		utils.LogError("Failed to fetch transactions for report: %v", err)
		utils.InternalServerError(c, "Failed to fetch transactions", nil)
		return
	}

	var salesCount, refundCount int
	salesTotal := decimal.Zero
	refundTotal := decimal.Zero
	depositTotal := decimal.Zero
	for _, txn := range transactions {
		switch txn.Type {
		case models.TransactionTypeSale:
			salesCount++
			salesTotal = salesTotal.Add(txn.Amount)
		case models.TransactionTypeRefund:
			refundCount++
			refundTotal = refundTotal.Add(txn.Amount)
		case models.TransactionTypeDeposit:
			depositTotal = depositTotal.Add(txn.Amount)
		}
	}
	// Auto-refunds skip the refund ledger row, but the purchase carries the
	// auto_refunded mark.
	for _, txn := range transactions {
		if txn.Type == models.TransactionTypePurchase &&
			txn.RefundStatus != nil && *txn.RefundStatus == models.RefundStatusAutoRefunded {
			refundCount++
			refundTotal = refundTotal.Add(txn.Amount)
		}
	}
	netTotal := salesTotal.Sub(refundTotal)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, utils.AppName+" Sales Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, "Period: "+start.Format("2006-01-02")+" to "+end.Format("2006-01-02"))
	pdf.Ln(12)

	writeLine := func(label, value string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(70, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		pdf.CellFormat(60, 8, value, "", 1, "R", false, 0, "")
	}
	writeLine("Cards sold:", strconv.Itoa(salesCount))
	writeLine("Gross sales:", "$"+utils.FormatAmount(salesTotal))
	writeLine("Refunds issued:", strconv.Itoa(refundCount))
	writeLine("Refund total:", "$"+utils.FormatAmount(refundTotal))
	writeLine("Net sales:", "$"+utils.FormatAmount(netTotal))
	writeLine("Deposits credited:", "$"+utils.FormatAmount(depositTotal))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.LogError("Failed to render sales report: %v", err)
		utils.InternalServerError(c, "Failed to generate report", nil)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=sales-report.pdf")
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

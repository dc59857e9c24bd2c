package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Arjun-P-716/CardBay/controllers"
	"github.com/Arjun-P-716/CardBay/middleware"
)

// initAdminRoutes initializes all admin-related routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		// User management
		admin.GET("/users", controllers.GetUsers)
		admin.PUT("/users/:id", controllers.UpdateUser)
		admin.DELETE("/users/:id", controllers.DeleteUser)

		// Listing review
		admin.GET("/listings", controllers.GetAllListings)
		admin.GET("/listings/:id/card", controllers.GetListingCard)
		admin.PATCH("/listings/:id/approve", controllers.ApproveListing)
		admin.PATCH("/listings/:id/reject", controllers.RejectListing)

		// Refund adjudication
		admin.GET("/refunds", controllers.GetRefundRequests)
		admin.PATCH("/refunds/:id/approve", controllers.ApproveRefundRequest)
		admin.PATCH("/refunds/:id/reject", controllers.RejectRefundRequest)

		// Wallet operations
		admin.POST("/deposits", controllers.CreditUserDeposit)
		admin.GET("/withdrawals", controllers.GetWithdrawals)
		admin.PATCH("/withdrawals/:id/complete", controllers.CompleteWithdrawal)
		admin.PATCH("/withdrawals/:id/cancel", controllers.CancelWithdrawal)

		// Site settings
		admin.GET("/settings", controllers.GetSettings)
		admin.PUT("/settings", controllers.UpdateSettings)
		admin.POST("/settings/qr-code", controllers.UploadQrCode)

		// Reports
		admin.GET("/reports/transactions/excel", controllers.DownloadTransactionsExcel)
		admin.GET("/reports/sales/pdf", controllers.DownloadSalesReportPDF)
	}
}

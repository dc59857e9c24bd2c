package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Arjun-P-716/CardBay/controllers"
	"github.com/Arjun-P-716/CardBay/middleware"
)

// initUserRoutes initializes all user-facing routes
func initUserRoutes(router *gin.RouterGroup) {
	// Public routes (no authentication required)
	router.POST("/register", controllers.Register)
	router.POST("/login", controllers.Login)
	router.POST("/logout", controllers.Logout)
	router.GET("/settings", controllers.GetPublicSettings)

	// Catalog browsing
	router.GET("/listings", controllers.GetListings)

	// Protected routes (require authentication)
	protected := router.Group("/user")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/me", controllers.GetMe)

		// Selling
		protected.GET("/my-listings", controllers.GetMyListings)
		protected.POST("/listings", controllers.CreateListing)
		protected.PUT("/listings/:id", controllers.UpdateListing)
		protected.DELETE("/listings/:id", controllers.DeleteListing)

		// Buying
		protected.POST("/listings/:id/purchase", controllers.PurchaseListing)
		protected.GET("/listings/:id/card", controllers.GetCardDetails)
		protected.GET("/orders", controllers.GetOrders)
		protected.GET("/purchased", controllers.GetPurchasedItems)
		protected.GET("/transactions", controllers.GetTransactions)
		protected.GET("/transactions/:id/receipt", controllers.DownloadReceipt)

		// Refunds and the card check
		protected.POST("/refunds", controllers.RequestRefund)
		protected.GET("/refunds", controllers.GetMyRefunds)
		protected.POST("/transactions/:id/check", controllers.AutoCheckTransaction)

		// Wallet
		protected.GET("/wallet", controllers.GetWalletBalance)
		protected.GET("/wallet/deposit", controllers.GetDepositInfo)
		protected.POST("/wallet/withdraw", controllers.RequestWithdrawal)
		protected.POST("/wallet/topup", controllers.InitiateWalletTopup)
		protected.POST("/wallet/topup/verify", controllers.VerifyWalletTopup)
	}
}

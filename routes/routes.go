package routes

import (
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/Arjun-P-716/CardBay/controllers"
	"github.com/Arjun-P-716/CardBay/utils"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	router := gin.New()
	router.Use(
		utils.LoggerMiddleware(),
		utils.RecoveryMiddleware(),
		utils.CORSMiddleware(),
		utils.RequestIDMiddleware(),
		utils.SecurityHeadersMiddleware(),
	)

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		sessionSecret = "dev-session-secret"
	}
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		MaxAge:   60 * 60 * 24,
		Path:     "/",
		Secure:   false,
		HttpOnly: true,
	})
	router.Use(sessions.Sessions("cardbay", store))

	router.Static("/uploads", "./"+utils.UploadDir)

	// OAuth routes
	auth := router.Group("/auth")
	{
		auth.GET("/google/login", controllers.GoogleLogin)
		auth.GET("/google/callback", controllers.GoogleCallback)
	}

	// API version group
	api := router.Group("/v1")
	{
		initUserRoutes(api)
		initAdminRoutes(api)
	}

	return router
}

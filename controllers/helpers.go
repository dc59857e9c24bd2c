package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Arjun-P-716/CardBay/models"
	"github.com/Arjun-P-716/CardBay/services"
	"github.com/Arjun-P-716/CardBay/utils"
)

// currentUser returns the authenticated user placed in context by the auth
// middleware. It writes the error response itself when the user is missing.
func currentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return models.User{}, false
	}
	user, ok := userVal.(models.User)
	if !ok {
		utils.InternalServerError(c, "Invalid user in context", nil)
		return models.User{}, false
	}
	return user, true
}

// handleServiceError maps the service sentinels to specific responses.
// Unexpected errors are logged and surfaced generically.
func handleServiceError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFound(c, "Not found")
	case errors.Is(err, services.ErrNotAvailable):
		utils.NotFound(c, "Listing not available")
	case errors.Is(err, services.ErrInsufficientBalance):
		utils.BadRequest(c, "Insufficient balance", nil)
	case errors.Is(err, services.ErrInvalidType):
		utils.BadRequest(c, "Can only refund purchases", nil)
	case errors.Is(err, services.ErrAlreadyRequested):
		utils.Conflict(c, "Already requested", nil)
	case errors.Is(err, services.ErrAlreadyProcessed):
		utils.BadRequest(c, "Already processed", nil)
	case errors.Is(err, services.ErrWindowExpired):
		utils.BadRequest(c, "Check window expired (5 minutes)", gin.H{"expired": true})
	case errors.Is(err, services.ErrInvalidAmount):
		utils.BadRequest(c, "Invalid amount", nil)
	default:
		utils.LogError("%s failed: %v", action, err)
		utils.InternalServerError(c, "Operation failed", nil)
	}
}

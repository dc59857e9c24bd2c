package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Arjun-P-716/CardBay/config"
	"github.com/Arjun-P-716/CardBay/models"
	"github.com/Arjun-P-716/CardBay/utils"
)

// GetUsers lists all accounts with optional role and search filters.
func GetUsers(c *gin.Context) {
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("username LIKE ? OR email LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count users: %v", err)
		utils.InternalServerError(c, "Failed to fetch users", nil)
		return
	}

	var users []models.User
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&users).Error; err != nil {
		utils.LogError("Failed to fetch users: %v", err)
		utils.InternalServerError(c, "Failed to fetch users", nil)
		return
	}

	utils.SuccessWithPagination(c, "Users retrieved", users, total, pagination.Page, pagination.Limit)
}

// UpdateUser changes a user's role or resets their balance.
func UpdateUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid user ID", nil)
		return
	}

	var req struct {
		Role    *string `json:"role"`
		Balance *string `json:"balance"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	updates := map[string]interface{}{}
	if req.Role != nil {
		switch *req.Role {
		case models.RoleUser, models.RoleSeller, models.RoleAdmin:
			updates["role"] = *req.Role
		default:
			utils.BadRequest(c, "Invalid role", nil)
			return
		}
	}
	if req.Balance != nil {
		balance, err := utils.ParseAmount(*req.Balance)
		if err != nil {
			utils.BadRequest(c, "Invalid balance", nil)
			return
		}
		updates["balance"] = balance
	}
	if len(updates) == 0 {
		utils.BadRequest(c, "Nothing to update", nil)
		return
	}

	if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update user", nil)
		return
	}
	if err := config.DB.First(&user, user.ID).Error; err != nil {
		utils.LogError("Failed to reload user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update user", nil)
		return
	}

	utils.LogInfo("Admin updated user %d", user.ID)
	utils.Success(c, "User updated", gin.H{"user": user})
}

// DeleteUser removes an account. Admin accounts cannot be deleted.
func DeleteUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid user ID", nil)
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}
	if user.Role == models.RoleAdmin {
		utils.Forbidden(c, "Admin accounts cannot be deleted")
		return
	}

	if err := config.DB.Delete(&user).Error; err != nil {
		utils.LogError("Failed to delete user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to delete user", nil)
		return
	}

	utils.LogInfo("Admin deleted user %d", user.ID)
	utils.Success(c, "User deleted", nil)
}

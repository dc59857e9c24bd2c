package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/Arjun-P-716/CardBay/config"
	"github.com/Arjun-P-716/CardBay/models"
	"github.com/Arjun-P-716/CardBay/utils"
)

const tokenCookieMaxAge = 7 * 24 * 60 * 60

// Register creates a new user account and logs it in.
func Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,min=3,max=30"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=4"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Username, email and password are required", err.Error())
		return
	}

	var existing int64
	if err := config.DB.Model(&models.User{}).
		Where("username = ? OR email = ?", req.Username, req.Email).
		Count(&existing).Error; err != nil {
		utils.LogError("Registration lookup failed: %v", err)
		utils.InternalServerError(c, "Registration failed", nil)
		return
	}
	if existing > 0 {
		utils.Conflict(c, "Username or email already exists", nil)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Password hash failed: %v", err)
		utils.InternalServerError(c, "Registration failed", nil)
		return
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
		Role:     models.RoleUser,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		utils.LogError("Failed to create user: %v", err)
		utils.InternalServerError(c, "Registration failed", nil)
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Token generation failed: %v", err)
		utils.InternalServerError(c, "Registration failed", nil)
		return
	}
	c.SetCookie("token", token, tokenCookieMaxAge, "/", "", false, true)

	utils.LogInfo("User %d registered", user.ID)
	utils.Created(c, "Registration successful", gin.H{
		"user":  userResponse(user),
		"token": token,
	})
}

// Login authenticates by username and password.
func Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Username and password are required", err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		utils.BadRequest(c, "Invalid credentials", nil)
		return
	}
	if !utils.CheckPassword(req.Password, user.Password) {
		utils.BadRequest(c, "Invalid credentials", nil)
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Token generation failed: %v", err)
		utils.InternalServerError(c, "Login failed", nil)
		return
	}
	c.SetCookie("token", token, tokenCookieMaxAge, "/", "", false, true)

	utils.LogInfo("User %d logged in", user.ID)
	utils.Success(c, "Login successful", gin.H{
		"user":  userResponse(user),
		"token": token,
	})
}

// Logout clears the auth cookie.
func Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	utils.Success(c, "Logged out", nil)
}

// GetMe returns the authenticated user.
func GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	utils.Success(c, "User retrieved", gin.H{"user": userResponse(user)})
}

func userResponse(user models.User) gin.H {
	return gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
		"balance":  utils.FormatAmount(user.Balance),
	}
}

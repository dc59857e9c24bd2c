package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/Arjun-P-716/CardBay/config"
	"github.com/Arjun-P-716/CardBay/models"
	"github.com/Arjun-P-716/CardBay/utils"
)

type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleLogin redirects to the Google consent page with a per-session state.
func GoogleLogin(c *gin.Context) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		utils.LogError("Failed to generate OAuth state: %v", err)
		utils.InternalServerError(c, "Login failed", nil)
		return
	}
	state := base64.URLEncoding.EncodeToString(buf)

	session := sessions.Default(c)
	session.Set("oauth_state", state)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save session: %v", err)
		utils.InternalServerError(c, "Login failed", nil)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, config.GoogleOAuthConfig.AuthCodeURL(state))
}

// GoogleCallback exchanges the code, fetches the profile and signs the user in.
// Accounts are matched by Google ID first, then by email.
func GoogleCallback(c *gin.Context) {
	session := sessions.Default(c)
	savedState, _ := session.Get("oauth_state").(string)
	session.Delete("oauth_state")
	_ = session.Save()

	if savedState == "" || c.Query("state") != savedState {
		utils.BadRequest(c, "Invalid OAuth state", nil)
		return
	}

	code := c.Query("code")
	if code == "" {
		utils.BadRequest(c, "Missing authorization code", nil)
		return
	}

	token, err := config.GoogleOAuthConfig.Exchange(c.Request.Context(), code)
	if err != nil {
		utils.LogError("OAuth code exchange failed: %v", err)
		utils.BadRequest(c, "OAuth exchange failed", nil)
		return
	}

	client := config.GoogleOAuthConfig.Client(c.Request.Context(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		utils.LogError("Failed to fetch Google profile: %v", err)
		utils.InternalServerError(c, "Login failed", nil)
		return
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		utils.LogError("Failed to decode Google profile: %v", err)
		utils.InternalServerError(c, "Login failed", nil)
		return
	}
	if info.Email == "" {
		utils.BadRequest(c, "Google account has no email", nil)
		return
	}

	var user models.User
	err = config.DB.Where("google_id = ?", info.ID).First(&user).Error
	if err != nil {
		err = config.DB.Where("email = ?", info.Email).First(&user).Error
	}
	if err != nil {
		user = models.User{
			Username: info.Email,
			Email:    info.Email,
			GoogleID: &info.ID,
			Role:     models.RoleUser,
		}
		if err := config.DB.Create(&user).Error; err != nil {
			utils.LogError("Failed to create Google user: %v", err)
			utils.InternalServerError(c, "Login failed", nil)
			return
		}
		utils.LogInfo("Created user %d via Google login", user.ID)
	} else if user.GoogleID == nil {
		user.GoogleID = &info.ID
		if err := config.DB.Model(&user).Update("google_id", info.ID).Error; err != nil {
			utils.LogError("Failed to link Google account: %v", err)
		}
	}

	jwtToken, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Token generation failed: %v", err)
		utils.InternalServerError(c, "Login failed", nil)
		return
	}
	c.SetCookie("token", jwtToken, tokenCookieMaxAge, "/", "", false, true)

	utils.Success(c, "Login successful", gin.H{
		"user":  userResponse(user),
		"token": jwtToken,
	})
}

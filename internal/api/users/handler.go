package users

import (
	"net/http"

	"directory-app/config"
	"directory-app/database"
	"directory-app/internal/domain/catalog"
	"directory-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func GetCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.
		Preload("Plan").
		Where("id = ?", userID).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var owned int64
	database.DB.Model(&catalog.Business{}).Where("owner_id = ?", user.ID).Count(&owned)

	resp := MeResponse{
		User: UserDTO{
			ID:                  user.ID,
			Email:               user.Email,
			Name:                user.Name,
			Phone:               stringPtrIfNotEmpty(user.Phone),
			Gender:              user.Gender,
			Avatar:              user.Avatar,
			Role:                user.Role,
			OnboardingCompleted: user.OnboardingCompleted,
			IsVerified:          user.IsVerified,
		},
		Subscription: BuildSubscriptionDTO(user),
		Access:       BuildAccessDTO(user, int(owned)),
	}

	c.JSON(http.StatusOK, resp)
}

func UpdateCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body struct {
		Name                *string `json:"name"`
		Phone               *string `json:"phone"`
		Gender              *string `json:"gender"`
		Avatar              *string `json:"avatar"`
		OnboardingCompleted *bool   `json:"onboarding_completed"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if body.Name != nil && *body.Name != "" {
		updates["name"] = *body.Name
	}
	if body.Phone != nil {
		updates["phone"] = *body.Phone
	}
	if body.Gender != nil {
		updates["gender"] = *body.Gender
	}
	if body.Avatar != nil {
		updates["avatar"] = *body.Avatar
	}
	if body.OnboardingCompleted != nil {
		updates["onboarding_completed"] = *body.OnboardingCompleted
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := database.DB.Model(&users.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	GetCurrentUser(c)
}

func stringPtrIfNotEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	type Token struct {
		UserID int
	}
	var t Token
	if err := database.DB.Table("verification_tokens").Where("token = ?", token).First(&t).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}

	if err := database.DB.Model(&users.User{}).Where("id = ?", t.UserID).Update("is_verified", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user"})
		return
	}

	_ = database.DB.Exec("DELETE FROM verification_tokens WHERE token = ?", token)

	redirectURL := config.GOOGLE_FRONTEND_REDIRECT
	if redirectURL == "" {
		c.JSON(http.StatusOK, gin.H{"message": "Email verified"})
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}

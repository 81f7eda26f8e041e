package middleware

import (
	"net/http"

	"directory-app/database"
	"directory-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// RequireBusinessOwner gates business write endpoints: the caller must be an
// admin, or an owner with an active subscription. The JWT role claim is only
// a hint — the DB row is authoritative, since roles flip on payment outcomes
// after the token was issued.
func RequireBusinessOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var user users.User
		if err := database.DB.Preload("Plan").Where("id = ?", userID).First(&user).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		if user.Role == users.RoleAdmin {
			c.Next()
			return
		}

		if user.Role != users.RoleOwner || !user.HasActiveSubscription() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "An active owner subscription is required",
			})
			return
		}

		c.Next()
	}
}

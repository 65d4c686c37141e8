package middleware

import (
	"net/http"
	"strings"

	"github.com/business-nexus/backend/database"
	"github.com/business-nexus/backend/models"
	"github.com/business-nexus/backend/utils"
	"github.com/gin-gonic/gin"
)

// JWTAuth validates the bearer token, loads the account and aborts with 401
// if the token is missing, invalid or the account has been deactivated.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.Error(c, http.StatusUnauthorized, "Authorization token required")
			c.Abort()
			return
		}

		userID, err := utils.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			utils.Error(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err != nil || !user.IsActive {
			utils.Error(c, http.StatusUnauthorized, "Account not found or deactivated")
			c.Abort()
			return
		}

		c.Set("userID", user.ID)
		c.Set("userRole", user.Role)
		c.Set("user", user)
		c.Next()
	}
}

// RequireRole gates a route group to a single account role.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.MustGet("userRole").(models.Role) != role {
			utils.Error(c, http.StatusForbidden, "Access denied for your role")
			c.Abort()
			return
		}
		c.Next()
	}
}

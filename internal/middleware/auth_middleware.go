package middleware

import (
	"strings"

	"jamride/internal/models"
	"jamride/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer token and puts the authenticated
// identity snapshot into the request context.
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_name", claims.Name)
		c.Set("user_avatar", claims.Avatar)

		c.Next()
	}
}

// CurrentIdentity rebuilds the identity snapshot stored by AuthRequired.
func CurrentIdentity(c *gin.Context) (models.Identity, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		return models.Identity{}, false
	}
	return models.Identity{
		ID:     userID,
		Name:   c.GetString("user_name"),
		Avatar: c.GetString("user_avatar"),
	}, true
}

package middleware

import (
	"log"
	"net/http"
	"strings"

	"partner-portal-api/res/auth"
	"partner-portal-api/res/store"

	"github.com/gin-gonic/gin"
)

// SESSION USER GETTER

const contextKeyCurrentUser = "currentUser"

func GetCurrentUser(c *gin.Context) *store.User {
	if val, ok := c.Get(contextKeyCurrentUser); ok {
		if currentUser, ok := val.(*store.User); ok {
			return currentUser
		}
	}

	return nil
}

// AUTH MIDDLEWARE

// AuthMiddleware resolves a Bearer access token into the current user.
// Requests without an Authorization header pass through anonymously; role
// enforcement happens in RequireStaff.
func AuthMiddleware(logger *log.Logger, storeImpl store.Store, authImpl auth.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		headerVal := c.GetHeader("Authorization")

		if len(headerVal) == 0 {
			c.Next()
			return
		}

		headerValParts := strings.Split(headerVal, " ")
		if len(headerValParts) != 2 || !strings.EqualFold(headerValParts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Malformed Authorization header"})
			return
		}

		var accessTokenClaims auth.AccessTokenClaims
		err := authImpl.ValidateToken(headerValParts[1], &accessTokenClaims)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid Authorization header"})
			return
		}

		currentUser, err := storeImpl.Users().Get(c.Request.Context(), accessTokenClaims.UserID)
		if err != nil || currentUser == nil {
			if err != nil {
				logger.Printf("Error retrieving user for access token: %s", err)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid Authorization header"})
			return
		}

		c.Set(contextKeyCurrentUser, currentUser)
		c.Next()
	}
}

// RequireStaff blocks requests that do not carry an authenticated dashboard
// user. Both STAFF and GLOBAL_ADMIN roles pass.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetCurrentUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "access forbidden"})
			return
		}
		c.Next()
	}
}

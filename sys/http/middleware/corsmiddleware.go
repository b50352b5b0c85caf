package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get environment to determine CORS policy
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		// In production, restrict to the configured frontend domain.
		// In development, allow all origins for easier local development.
		if environment == "production" {
			allowedOrigin := os.Getenv("FRONTEND_URL")
			origin := c.GetHeader("Origin")

			// Allow exact match or subdomain match
			isAllowed := allowedOrigin != "" && origin == allowedOrigin
			if !isAllowed && allowedOrigin != "" && strings.HasPrefix(origin, "https://") && strings.Contains(origin, allowedOrigin) {
				isAllowed = true
			}

			// Only set Access-Control-Allow-Origin if the origin matches
			if isAllowed {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Credentials", "true")
			}
			// If origin doesn't match, CORS headers are not set, blocking the request
		} else {
			// Development/staging: Allow requesting origin with credentials
			origin := c.GetHeader("Origin")
			if origin != "" {
				c.Header("Access-Control-Allow-Origin", origin)
			} else {
				c.Header("Access-Control-Allow-Origin", "http://localhost:3000")
			}
			c.Header("Access-Control-Allow-Credentials", "true")
		}

		// Handle preflight requests
		if c.Request.Method == http.MethodOptions {
			c.Header("Access-Control-Allow-Methods", "POST, GET, PATCH, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

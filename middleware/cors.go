package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tempo/utils"
)

// CORSMiddleware reflects the request origin when it matches CORS_ORIGIN
// (comma-separated, "*" allows any). Credentials force reflection over a
// literal wildcard.
func CORSMiddleware() gin.HandlerFunc {
	allowed := strings.Split(utils.GetEnvAsString("CORS_ORIGIN", "*"), ",")

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && originAllowed(origin, allowed) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods",
			"POST, GET, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func originAllowed(origin string, allowed []string) bool {
	for _, candidate := range allowed {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || candidate == origin {
			return true
		}
	}
	return false
}

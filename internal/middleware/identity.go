package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const coachNameKey = contextKey("coachName")

// CoachNameHeader carries the acting coach's name. Identity selection is a
// trusted external input; there is no authentication layer in front of it.
const CoachNameHeader = "X-Coach-Name"

// CoachIdentityMiddleware requires the acting coach header on every request
// and injects the name into the request context.
func CoachIdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimSpace(c.GetHeader(CoachNameHeader))
		if name == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing " + CoachNameHeader + " header"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), coachNameKey, name)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetCoachNameFromContext retrieves the acting coach's name from the
// context. It returns the name and a boolean indicating if it was found.
func GetCoachNameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(coachNameKey).(string)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

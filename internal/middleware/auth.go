package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shutterdesk-be/internal/user"
)

const userIDKey = "userID"

// ExtractAccessToken reads the token from the access_token cookie first,
// falling back to a bearer Authorization header.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie("access_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// RequireAuth gates the private routes. All the rest of the app learns from
// it is that someone is signed in.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ExtractAccessToken(c.Request)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
			return
		}

		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

// UserID returns the signed-in user's id, if any.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

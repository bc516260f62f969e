package httpserver

import (
	"net/http"
	"strings"

	"gamestore/internal/domain"
	"github.com/gin-gonic/gin"
)

const userCtxKey = "currentUser"

// authRequired resolves the bearer token to a user (roles included) once per
// request. Anonymous or stale tokens get a 401.
func authRequired(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := userFromToken(c, auth)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(userCtxKey, user)
		c.Next()
	}
}

// requireRole gates a route group on a role resolved by authRequired.
func requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentUser(c).HasRole(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// currentUser returns the authenticated user or nil for anonymous requests.
func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(userCtxKey)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}

// userFromToken is best-effort: public routes use it to detect moderators
// without demanding authentication.
func userFromToken(c *gin.Context, auth AuthService) *domain.User {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return nil
	}
	user, err := auth.LookupByToken(c.Request.Context(), strings.TrimSpace(token))
	if err != nil {
		return nil
	}
	return user
}

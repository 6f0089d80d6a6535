package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"roomhub/internal/auth"
	"roomhub/internal/database"
	"roomhub/internal/models"
	"roomhub/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookie  = "session"
	userContextKey = "currentUser"
)

// AuthRequired resolves the acting user from the session cookie or a bearer
// token and rejects the request when neither is valid.
func AuthRequired(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		user, err := authService.GetUserFromToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		return cookie
	}
	return ""
}

func currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userContextKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

// respondError maps service errors onto responses. Ownership denials answer
// plain text, matching the denial pages of the original flows.
func respondError(c *gin.Context, err error, denial string) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, services.ErrForbidden):
		c.String(http.StatusForbidden, denial)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

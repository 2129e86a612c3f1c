package handlers

import (
	"errors"
	"net/http"

	"gamegrove/internal/middleware"
	"gamegrove/internal/models"
	"gamegrove/internal/services"

	"github.com/gin-gonic/gin"
)

// CurrentUser returns the session user, or nil for guests.
func CurrentUser(c *gin.Context) *models.User {
	if u, exists := c.Get(middleware.CheckUserKey); exists {
		return u.(*models.User)
	}
	return nil
}

// AbortWithError maps service errors onto HTTP status codes.
func AbortWithError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/gin-gonic/gin"
)

// respondError maps domain error kinds to status codes. Internal details never
// reach the client.
func respondError(c *gin.Context, err error) {
	var (
		vErr domain.ValidationError
		aErr domain.AvailabilityError
	)
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "field": vErr.Field})
	case errors.As(err, &aErr):
		c.JSON(http.StatusConflict, gin.H{"error": aErr.Error(), "remaining_seats": aErr.Remaining})
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case domain.IsForbidden(err):
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
	case domain.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		slog.Error("request failed", "request_id", GetRequestID(c), "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

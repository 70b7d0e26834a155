package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/auraboard/auraboard-server/internal/model"
)

// handleError maps core failures to HTTP responses. Anything unrecognized
// is treated as a storage failure and surfaced as a generic 500.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrZeroChange),
		errors.Is(err, model.ErrEmptyReason),
		errors.Is(err, model.ErrSelfTransfer),
		errors.Is(err, model.ErrNegativeAmount),
		errors.Is(err, model.ErrInvalidUsername):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrQuotaExceeded):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, model.ErrEmailTaken),
		errors.Is(err, model.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrInvalidCredentials),
		errors.Is(err, model.ErrTokenRevoked),
		errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenMismatch):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

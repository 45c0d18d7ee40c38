package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"Tunedeck/internal/apperr"
)

// writeError maps application errors onto HTTP responses. Validation
// failures carry a human-readable field-naming message; everything else
// returns a generic indication without leaking internals.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	if ve, ok := apperr.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": ve.Error()})
		return
	}

	switch {
	case errors.Is(err, apperr.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized - you must be logged in"})
	case errors.Is(err, apperr.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized - you must be an admin"})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	default:
		logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

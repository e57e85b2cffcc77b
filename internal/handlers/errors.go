package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses. Unclassified errors
// are logged and reported as fallbackMsg with a 500.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	var integrityErr *apperrors.DataIntegrityError
	switch {
	case errors.As(err, &integrityErr):
		logger.Warn("Data integrity violation", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{
			"error":         err.Error(),
			"transactionID": integrityErr.TransactionID,
			"categoryID":    integrityErr.CategoryID,
		})
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidRequest):
		logger.Warn("Rejected request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrProtectedCategory):
		logger.Warn("Conflicting request", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}

// bindError reports a request that failed binding or tag validation.
func bindError(c *gin.Context, logger *slog.Logger, op string, err error) {
	logger.Warn("Failed to bind request for "+op, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
}

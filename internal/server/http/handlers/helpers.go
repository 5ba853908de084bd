package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/cianorte/storefront/internal/domain/errors"
	"github.com/cianorte/storefront/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// respondError maps domain errors to HTTP statuses. NotFound covers
// both missing entities and entities the caller may not see.
func respondError(c *gin.Context, err error) {
	if ge, ok := domainErrors.IsGatewayError(err); ok {
		details := json.RawMessage(ge.Body)
		if !json.Valid(details) {
			details, _ = json.Marshal(ge.Body)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment gateway error", "details": details})
		return
	}

	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domainErrors.ErrProductNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "product not found"})
	case errors.Is(err, domainErrors.ErrInsufficientStock):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "insufficient stock"})
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credentials"})
	case errors.Is(err, domainErrors.ErrInvalidOrderLine),
		errors.Is(err, domainErrors.ErrInvalidOrderStatus),
		errors.Is(err, domainErrors.ErrInvalidPayment):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/classconnect/classconnect-api/internal/middleware"
	"github.com/classconnect/classconnect-api/internal/models"
)

// claimsFromContext extracts validated JWT claims from the gin context.
func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// File: controllers/controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gin-gonic/gin"

	"xostore-backend/services"
	"xostore-backend/store"
)

// Controller menampung dependensi yang akan digunakan oleh semua handler.
type Controller struct {
	Auth     *services.AuthService
	Products *services.ProductService
	Sales    *services.SaleService
	Stats    *services.StatsService
	Users    *services.UserService
	Insights *services.InsightsService
	Cld      *cloudinary.Cloudinary
}

// respondError memetakan taksonomi error services/store ke kode HTTP.
func respondError(c *gin.Context, err error) {
	var consErr *services.ConsistencyError

	switch {
	case errors.As(err, &consErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": consErr.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, services.ErrAlreadyInitialized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

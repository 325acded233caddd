package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"xostore-backend/services"
)

// Auth memverifikasi token PASETO dari header Authorization dan menaruh
// identitas pengguna ke context request.
func Auth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication token required"})
			return
		}

		claims, err := auth.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// Require menolak permintaan yang perannya tidak diizinkan melakukan aksi.
// Kebijakannya terpusat di services.Can.
func Require(action services.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !services.Can(c.GetString("role"), action) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}

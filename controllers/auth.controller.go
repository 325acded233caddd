package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"xostore-backend/models"
)

// Login menangani proses login pengguna.
func (ctrl *Controller) Login(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := ctrl.Auth.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "user": user, "token": token})
}

// Register menangani registrasi admin pertama. Hanya berlaku saat koleksi
// pengguna masih kosong; setelah itu pengguna dibuat lewat endpoint /users.
func (ctrl *Controller) Register(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ctrl.Users.RegisterFirstAdmin(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := ctrl.Auth.IssueToken(user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful", "user": user, "token": token})
}

// Me mengembalikan pengguna untuk sesi saat ini.
func (ctrl *Controller) Me(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := ctrl.Auth.CurrentUser(ctx, c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

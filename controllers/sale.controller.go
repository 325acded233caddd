// File: controllers/sale.controller.go
package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"xostore-backend/models"
)

// GetSales menangani pengambilan penjualan, terurut tanggal menurun.
// Query ?limit membatasi jumlah baris.
func (ctrl *Controller) GetSales(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var limit int64
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	sales, err := ctrl.Sales.List(ctx, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sales": sales})
}

// RecordSale menangani pencatatan penjualan baru. Identitas pengguna dari
// token sesi dicap pada penjualan.
func (ctrl *Controller) RecordSale(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sale, err := ctrl.Sales.Record(ctx, req, c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sale": sale})
}

// UpdateSale menangani perubahan penjualan yang sudah tercatat.
func (ctrl *Controller) UpdateSale(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sale, err := ctrl.Sales.Update(ctx, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sale": sale})
}

// DeleteSale menangani pembatalan penjualan; stok produk dipulihkan.
func (ctrl *Controller) DeleteSale(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := ctrl.Sales.Delete(ctx, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sale deleted successfully"})
}

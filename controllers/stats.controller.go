// File: controllers/stats.controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck memeriksa status layanan.
func (ctrl *Controller) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
	})
}

// GetDashboardStats mengambil statistik untuk halaman dashboard.
func (ctrl *Controller) GetDashboardStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stats, err := ctrl.Stats.Dashboard(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GetSalesSummary mengambil ringkasan penjualan per periode.
func (ctrl *Controller) GetSalesSummary(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	summary, err := ctrl.Stats.Summary(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetInsights meminta analisis AI atas data produk dan penjualan. Kegagalan
// layanan AI tidak menggagalkan permintaan; pesan statis yang dikembalikan.
func (ctrl *Controller) GetInsights(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	products, err := ctrl.Products.List(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	sales, err := ctrl.Sales.List(ctx, 0)
	if err != nil {
		respondError(c, err)
		return
	}

	insights := ctrl.Insights.GenerateSalesInsights(ctx, products, sales)
	c.JSON(http.StatusOK, gin.H{"insights": insights})
}

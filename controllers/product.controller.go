// File: controllers/product.controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"

	"xostore-backend/models"
)

// uploadProductImage mengunggah gambar base64 ke Cloudinary bila dikonfigurasi.
func (ctrl *Controller) uploadProductImage(p *models.Product, imageBase64 string) bool {
	if imageBase64 == "" || ctrl.Cld == nil {
		return true
	}

	uploadResult, err := ctrl.Cld.Upload.Upload(
		context.Background(),
		imageBase64,
		uploader.UploadParams{Folder: "xostore/products"},
	)
	if err != nil {
		log.Println("Cloudinary upload error:", err)
		return false
	}
	p.ImageURL = uploadResult.SecureURL
	p.Image = uploadResult.PublicID
	return true
}

// GetProducts menangani pengambilan semua produk.
func (ctrl *Controller) GetProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	productList, err := ctrl.Products.List(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": productList})
}

// GetProduct menangani pengambilan satu produk berdasarkan ID.
func (ctrl *Controller) GetProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	product, err := ctrl.Products.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// CreateProduct menangani pembuatan produk baru.
func (ctrl *Controller) CreateProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := models.Product{
		Name:  input.Name,
		Price: *input.Price,
		Cost:  *input.Cost,
		Stock: *input.Stock,
	}
	if !ctrl.uploadProductImage(&product, input.ImageBase64) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	created, err := ctrl.Products.Create(ctx, &product)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": created})
}

// UpdateProduct menangani pembaruan data produk. Perubahan stok lewat sini
// adalah koreksi manual admin, bukan penjualan.
func (ctrl *Controller) UpdateProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	existing, err := ctrl.Products.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	product := models.Product{
		Name:     input.Name,
		Price:    *input.Price,
		Cost:     *input.Cost,
		Stock:    *input.Stock,
		Image:    existing.Image,
		ImageURL: existing.ImageURL,
	}
	if !ctrl.uploadProductImage(&product, input.ImageBase64) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	updated, err := ctrl.Products.Update(ctx, id, &product)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": updated})
}

// DeleteProduct menangani penghapusan produk.
func (ctrl *Controller) DeleteProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := ctrl.Products.Delete(ctx, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

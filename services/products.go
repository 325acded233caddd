package services

import (
	"context"
	"fmt"

	"xostore-backend/models"
	"xostore-backend/store"
)

// ProductService mengelola data produk. Mutasi stok langsung lewat Update
// diperlakukan sebagai koreksi manual oleh admin, bukan penjualan; pengurangan
// stok karena penjualan hanya terjadi lewat SaleService.
type ProductService struct {
	products store.ProductStore
}

// NewProductService membuat ProductService baru.
func NewProductService(products store.ProductStore) *ProductService {
	return &ProductService{products: products}
}

func validateProduct(p *models.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if p.Cost < 0 {
		return fmt.Errorf("%w: cost must not be negative", ErrValidation)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrValidation)
	}
	return nil
}

// List mengembalikan semua produk.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.products.List(ctx)
}

// Get mengembalikan satu produk berdasarkan id.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.products.Get(ctx, id)
}

// Create menyimpan produk baru setelah validasi.
func (s *ProductService) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update memperbarui produk yang ada setelah validasi.
func (s *ProductService) Update(ctx context.Context, id string, p *models.Product) (*models.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if err := s.products.Update(ctx, id, p); err != nil {
		return nil, err
	}
	return s.products.Get(ctx, id)
}

// Delete menghapus produk. Penjualan lama yang merujuk produk ini tetap ada
// dengan nama snapshot-nya; tidak ada cascading delete.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

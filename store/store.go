// Package store mendefinisikan kontrak gateway persistensi: CRUD per baris,
// setiap panggilan satu round trip dan atomik sendiri-sendiri. Tidak ada
// transaksi lintas koleksi; konsistensi lintas baris menjadi tanggung jawab
// lapisan services.
package store

import (
	"context"
	"errors"

	"xostore-backend/models"
)

var (
	// ErrNotFound dikembalikan saat baris yang dirujuk tidak ada.
	ErrNotFound = errors.New("record not found")
	// ErrInsufficientStock dikembalikan AdjustStock saat pengurangan akan
	// membuat stok negatif. Baris tidak diubah.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrDuplicate dikembalikan saat constraint unik dilanggar (mis. email).
	ErrDuplicate = errors.New("record already exists")
)

// ProductStore menyediakan akses data produk.
type ProductStore interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, id string, p *models.Product) error
	Delete(ctx context.Context, id string) error

	// AdjustStock menambah stok produk sebesar delta dalam satu update atomik.
	// Delta negatif bersyarat: hanya diterapkan bila stok mencukupi, kalau
	// tidak mengembalikan ErrInsufficientStock tanpa mengubah apa pun.
	AdjustStock(ctx context.Context, id string, delta int) error
}

// SaleStore menyediakan akses data penjualan.
type SaleStore interface {
	// List mengembalikan penjualan terurut tanggal menurun. limit <= 0 berarti semua.
	List(ctx context.Context, limit int64) ([]models.Sale, error)
	Get(ctx context.Context, id string) (*models.Sale, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*models.Sale, error)
	Create(ctx context.Context, s *models.Sale) error
	Update(ctx context.Context, id string, s *models.Sale) error
	Delete(ctx context.Context, id string) error
}

// UserStore menyediakan akses data pengguna.
type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, id string, u *models.User) error
	Delete(ctx context.Context, id string) error
}

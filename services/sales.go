package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"xostore-backend/models"
	"xostore-backend/store"
)

// SaleService menjalankan protokol transaksi penjualan: mencatat, mengubah,
// dan membatalkan penjualan sambil menjaga stok produk tetap konsisten.
// Gateway hanya menjamin atomisitas per baris, jadi langkah lintas baris
// dijalankan berurutan dengan kompensasi manual saat gagal. Tidak ada retry
// otomatis: mengulang mutasi yang sudah separuh jalan bisa menggandakan
// perubahan stok.
type SaleService struct {
	products store.ProductStore
	sales    store.SaleStore
	now      func() time.Time
}

// NewSaleService membuat SaleService baru.
func NewSaleService(products store.ProductStore, sales store.SaleStore) *SaleService {
	return &SaleService{products: products, sales: sales, now: time.Now}
}

// List mengembalikan penjualan terurut tanggal menurun.
func (s *SaleService) List(ctx context.Context, limit int64) ([]models.Sale, error) {
	return s.sales.List(ctx, limit)
}

// Record mencatat penjualan baru: stok dikurangi dulu (atomik per baris),
// baru baris penjualan disisipkan dengan snapshot nama dan harga produk.
// Jika penyisipan gagal, pengurangan stok dikompensasi.
func (s *SaleService) Record(ctx context.Context, req models.RecordSaleRequest, userID string) (*models.Sale, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be greater than zero", ErrValidation)
	}

	// Kunci idempotensi yang sama berarti pengiriman ganda: kembalikan
	// penjualan yang sudah tercatat tanpa menerapkan apa pun lagi.
	if req.IdempotencyKey != "" {
		existing, err := s.sales.GetByIdempotencyKey(ctx, req.IdempotencyKey)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}

	product, err := s.products.Get(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product.Stock < req.Quantity {
		return nil, fmt.Errorf("%w: product %s has %d in stock, requested %d",
			store.ErrInsufficientStock, req.ProductID, product.Stock, req.Quantity)
	}

	if err := s.products.AdjustStock(ctx, req.ProductID, -req.Quantity); err != nil {
		return nil, err
	}

	sale := &models.Sale{
		Reference:      uuid.NewString(),
		ProductID:      product.ID,
		ProductName:    product.Name,
		Quantity:       req.Quantity,
		TotalPrice:     product.Price * float64(req.Quantity),
		Date:           s.now(),
		UserID:         userID,
		IdempotencyKey: req.IdempotencyKey,
	}
	if err := s.sales.Create(ctx, sale); err != nil {
		// Stok sudah berkurang tanpa baris penjualan: coba kompensasi.
		if restoreErr := s.products.AdjustStock(ctx, req.ProductID, req.Quantity); restoreErr != nil {
			consErr := &ConsistencyError{
				Op:      "RecordSale",
				Applied: fmt.Sprintf("stock of product %s decremented by %d without a sale row", req.ProductID, req.Quantity),
				Err:     restoreErr,
			}
			log.Printf("CONSISTENCY: %v (original insert error: %v)", consErr, err)
			return nil, consErr
		}
		return nil, fmt.Errorf("recording sale: %w", err)
	}
	return sale, nil
}

// Update mengubah penjualan dengan pola balikkan-lalu-terapkan-ulang: stok
// produk lama dipulihkan penuh, lalu stok produk baru dikurangi penuh. Pola
// ini berlaku juga saat produknya sama, demi keterlacakan audit. Jika
// pengurangan baru gagal, pemulihan di langkah awal dibatalkan persis
// sehingga ledger kembali ke keadaan sebelum pemanggilan.
func (s *SaleService) Update(ctx context.Context, saleID string, req models.UpdateSaleRequest) (*models.Sale, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be greater than zero", ErrValidation)
	}

	sale, err := s.sales.Get(ctx, saleID)
	if err != nil {
		return nil, err
	}

	oldProductID := sale.ProductID.Hex()
	if err := s.products.AdjustStock(ctx, oldProductID, sale.Quantity); err != nil {
		return nil, fmt.Errorf("restoring stock of product %s: %w", oldProductID, err)
	}

	newProduct, err := s.products.Get(ctx, req.ProductID)
	if err != nil {
		if consErr := s.rollbackRestore(ctx, "UpdateSale", oldProductID, sale.Quantity, err); consErr != nil {
			return nil, consErr
		}
		return nil, err
	}

	if err := s.products.AdjustStock(ctx, req.ProductID, -req.Quantity); err != nil {
		if consErr := s.rollbackRestore(ctx, "UpdateSale", oldProductID, sale.Quantity, err); consErr != nil {
			return nil, consErr
		}
		return nil, err
	}

	updated := *sale
	updated.ProductID = newProduct.ID
	updated.ProductName = newProduct.Name
	updated.Quantity = req.Quantity
	updated.TotalPrice = newProduct.Price * float64(req.Quantity)
	if err := s.sales.Update(ctx, saleID, &updated); err != nil {
		consErr := &ConsistencyError{
			Op: "UpdateSale",
			Applied: fmt.Sprintf("stock moved (product %s +%d, product %s -%d) but sale %s row not updated",
				oldProductID, sale.Quantity, req.ProductID, req.Quantity, saleID),
			Err: err,
		}
		log.Printf("CONSISTENCY: %v", consErr)
		return nil, consErr
	}
	return &updated, nil
}

// rollbackRestore membatalkan pemulihan stok dari langkah awal Update. Jika
// pembatalan ini pun gagal, ledger tertinggal di keadaan parsial: keadaannya
// dicatat keras dan ConsistencyError dikembalikan supaya pemanggil tahu, bukan
// hanya penyebab aslinya.
func (s *SaleService) rollbackRestore(ctx context.Context, op, productID string, quantity int, cause error) error {
	if err := s.products.AdjustStock(ctx, productID, -quantity); err != nil {
		consErr := &ConsistencyError{
			Op:      op,
			Applied: fmt.Sprintf("stock of product %s restored by %d and could not be rolled back", productID, quantity),
			Err:     err,
		}
		log.Printf("CONSISTENCY: %v (rollback triggered by: %v)", consErr, cause)
		return consErr
	}
	return nil
}

// Delete membatalkan penjualan: stok dipulihkan dulu, baru baris dihapus.
// Urutan ini disengaja; menghapus dulu berisiko kehilangan stok permanen bila
// proses mati di tengah. Jika produknya sudah tidak ada, pemulihan dilewati
// dan baris penjualan tetap dihapus (tidak ada baris untuk menampung stok).
func (s *SaleService) Delete(ctx context.Context, saleID string) error {
	sale, err := s.sales.Get(ctx, saleID)
	if err != nil {
		return err
	}

	productID := sale.ProductID.Hex()
	restored := true
	if err := s.products.AdjustStock(ctx, productID, sale.Quantity); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("restoring stock of product %s: %w", productID, err)
		}
		restored = false
		log.Printf("WARN: deleting sale %s: product %s no longer exists, stock restore skipped", saleID, productID)
	}

	if err := s.sales.Delete(ctx, saleID); err != nil {
		applied := fmt.Sprintf("sale %s row not deleted", saleID)
		if restored {
			applied = fmt.Sprintf("stock of product %s restored by %d but sale %s row not deleted", productID, sale.Quantity, saleID)
		}
		consErr := &ConsistencyError{
			Op:      "DeleteSale",
			Applied: applied,
			Err:     err,
		}
		log.Printf("CONSISTENCY: %v", consErr)
		return consErr
	}
	return nil
}

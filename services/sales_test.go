package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xostore-backend/models"
	"xostore-backend/services"
	"xostore-backend/store"
	"xostore-backend/store/memory"
)

func seedProduct(t *testing.T, stores *memory.Stores, name string, price, cost float64, stock int) string {
	t.Helper()
	p := &models.Product{Name: name, Price: price, Cost: cost, Stock: stock}
	require.NoError(t, stores.Products.Create(context.Background(), p))
	return p.ID.Hex()
}

func TestRecordSale_DecrementsStockAndSnapshots(t *testing.T) {
	ctx := context.Background()
	stores := memory.New()
	svc := services.NewSaleService(stores.Products, stores.Sales)

	productID := seedProduct(t, stores, "Espresso Machine", 350, 200, 15)

	sale, err := svc.Record(ctx, models.RecordSaleRequest{ProductID: productID, Quantity: 5}, "user1")
	require.NoError(t, err)

	assert.Equal(t, 5, sale.Quantity)
	assert.Equal(t, float64(5*350), sale.TotalPrice)
	assert.Equal(t, "Espresso Machine", sale.ProductName)
	assert.Equal(t, "user1", sale.UserID)
	assert.NotEmpty(t, sale.Reference)

	product, err := stores.Products.Get(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 10, product.Stock)
}

func TestRecordSale_InsufficientStockLeavesStockUnchanged(t *testing.T) {
	ctx := context.Background()
	stores := memory.New()
	svc := services.NewSaleService(stores.Products, stores.Sales)

	productID := seedProduct(t, stores, "Digital Scale", 35, 20, 3)

	_, err := svc.Record(ctx, models.RecordSaleRequest{ProductID: productID, Quantity: 5}, "user1")
	require.ErrorIs(t, err, store.ErrInsufficientStock)

	product, err := stores.Products.Get(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 3, product.Stock)

	sales, err := svc.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestRecordSale_UnknownProduct(t *testing.T) {
	stores := memory.New()
	svc := services.NewSaleService(stores.Products, stores.Sales)

	_, err := svc.Record(context.Background(), models.RecordSaleRequest{ProductID: "missing", Quantity: 1}, "user1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRecordSale_InvalidQuantity(t *testing.T) {
	stores := memory.New()
	svc := services.NewSaleService(stores.Products, stores.Sales)

	productID := seedProduct(t, stores, "Tamper", 25, 12, 30)

	_, err := svc.Record(context.Background(), models.RecordSaleRequest{ProductID: productID, Quantity: 0}, "user1")
	require.ErrorIs(t, err, services.ErrValidation)
}

func TestRecordSale_IdempotencyKeyReplay(t *testing.T) {
	ctx := context.Background()
	stores := memory.New()
	svc := services.NewSaleService(stores.Products, stores.Sales)

	productID := seedProduct(t, stores, "Milk Frother", 80, 50, 8)

	req := models.RecordSaleRequest{ProductID: productID, Quantity: 3, IdempotencyKey: "key-1"}
	first, err := svc.Record(ctx, req, "user1")
	require.NoError(t, err)

	second, err := svc.Record(ctx, req, "user1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// Stok hanya berkurang sekali dan hanya ada satu baris penjualan.
	product, err := stores.Products.Get(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 5, product.Stock)

	sales, err := svc.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, sales, 1)
}

func TestDeleteSale_RestoresStockExactly(t *testing.T) {
	ctx := context.Background()
	stores := memory.New()
	svc := services.NewSaleService(stores.Products, stores.Sales)

	productID := seedProduct(t, stores, "Coffee Beans", 45, 25, 48)

	sale, err := svc.Record(ctx, models.RecordSaleRequest{ProductID: productID, Quantity: 5}, "user1")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, sale.ID.Hex()))

	product, err := stores.Products.Get(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 48, product.Stock)

	sales, err := svc.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestDeleteSale_MissingSale(t *testing.T) {
	stores := memory.New()
	svc := services.NewSaleService(stores.Products, stores.Sales)

	err := svc.Delete(context.Background(), "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteSale_OrphanedProductSoftSucceeds(t *testing.T) {
	ctx := context.Background()
	stores := memory.New()
	svc := services.NewSaleService(stores.Products, stores.Sales)

	productID := seedProduct(t, stores, "Grinder", 120, 70, 10)

	sale, err := svc.Record(ctx, models.RecordSaleRequest{ProductID: productID, Quantity: 2}, "user1")
	require.NoError(t, err)

	// Produk dihapus; pembatalan penjualan tetap harus bisa jalan.
	require.NoError(t, stores.Products.Delete(ctx, productID))

	require.NoError(t, svc.Delete(ctx, sale.ID.Hex()))

	sales, err := svc.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestUpdateSale_RollbackOnInsufficientStock(t *testing.T) {
	ctx := context.Background()
	stores := memory.New()
	svc := services.NewSaleService(stores.Products, stores.Sales)

	oldID := seedProduct(t, stores, "Old", 100, 60, 12)
	newID := seedProduct(t, stores, "New", 50, 30, 1)

	sale, err := svc.Record(ctx, models.RecordSaleRequest{ProductID: oldID, Quantity: 2}, "user1")
	require.NoError(t, err)

	_, err = svc.Update(ctx, sale.ID.Hex(), models.UpdateSaleRequest{ProductID: newID, Quantity: 5})
	require.ErrorIs(t, err, store.ErrInsufficientStock)

	// Rollback harus persis: pemulihan di langkah awal dibatalkan lagi.
	oldProduct, err := stores.Products.Get(ctx, oldID)
	require.NoError(t, err)
	assert.Equal(t, 10, oldProduct.Stock)

	newProduct, err := stores.Products.Get(ctx, newID)
	require.NoError(t, err)
	assert.Equal(t, 1, newProduct.Stock)

	unchanged, err := stores.Sales.Get(ctx, sale.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 2, unchanged.Quantity)
	assert.Equal(t, "Old", unchanged.ProductName)
}

func TestUpdateSale_SameProductReappliesFully(t *testing.T) {
	ctx := context.Background()
	stores := memory.New()
	svc := services.NewSaleService(stores.Products, stores.Sales)

	productID := seedProduct(t, stores, "Kettle", 60, 35, 10)

	sale, err := svc.Record(ctx, models.RecordSaleRequest{ProductID: productID, Quantity: 2}, "user1")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, sale.ID.Hex(), models.UpdateSaleRequest{ProductID: productID, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)
	assert.Equal(t, float64(5*60), updated.TotalPrice)

	product, err := stores.Products.Get(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 3, product.Stock)
}

func TestUpdateSale_MovesStockBetweenProducts(t *testing.T) {
	ctx := context.Background()
	stores := memory.New()
	svc := services.NewSaleService(stores.Products, stores.Sales)

	oldID := seedProduct(t, stores, "Old", 100, 60, 10)
	newID := seedProduct(t, stores, "New", 40, 20, 9)

	sale, err := svc.Record(ctx, models.RecordSaleRequest{ProductID: oldID, Quantity: 4}, "user1")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, sale.ID.Hex(), models.UpdateSaleRequest{ProductID: newID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.ProductName)
	assert.Equal(t, float64(3*40), updated.TotalPrice)

	oldProduct, err := stores.Products.Get(ctx, oldID)
	require.NoError(t, err)
	assert.Equal(t, 10, oldProduct.Stock)

	newProduct, err := stores.Products.Get(ctx, newID)
	require.NoError(t, err)
	assert.Equal(t, 6, newProduct.Stock)
}

var errGatewayDown = errors.New("gateway unavailable")

// flakySaleStore membungkus store.SaleStore dan menggagalkan perintah tertentu
// untuk menguji jalur kompensasi.
type flakySaleStore struct {
	store.SaleStore
	failCreate bool
	failUpdate bool
	failDelete bool
}

func (s *flakySaleStore) Create(ctx context.Context, sale *models.Sale) error {
	if s.failCreate {
		return errGatewayDown
	}
	return s.SaleStore.Create(ctx, sale)
}

func (s *flakySaleStore) Update(ctx context.Context, id string, sale *models.Sale) error {
	if s.failUpdate {
		return errGatewayDown
	}
	return s.SaleStore.Update(ctx, id, sale)
}

func (s *flakySaleStore) Delete(ctx context.Context, id string) error {
	if s.failDelete {
		return errGatewayDown
	}
	return s.SaleStore.Delete(ctx, id)
}

// flakyProductStore menggagalkan AdjustStock untuk mutasi yang cocok dengan
// predikatnya.
type flakyProductStore struct {
	store.ProductStore
	failAdjust func(id string, delta int) bool
}

func (s *flakyProductStore) AdjustStock(ctx context.Context, id string, delta int) error {
	if s.failAdjust != nil && s.failAdjust(id, delta) {
		return errGatewayDown
	}
	return s.ProductStore.AdjustStock(ctx, id, delta)
}

func TestRecordSale_CompensatesWhenInsertFails(t *testing.T) {
	ctx := context.Background()
	stores := memory.New()
	sales := &flakySaleStore{SaleStore: stores.Sales, failCreate: true}
	svc := services.NewSaleService(stores.Products, sales)

	productID := seedProduct(t, stores, "Thermometer", 30, 18, 7)

	_, err := svc.Record(ctx, models.RecordSaleRequest{ProductID: productID, Quantity: 3}, "user1")
	require.ErrorIs(t, err, errGatewayDown)

	// Pengurangan stok dikompensasi; ini bukan inkonsistensi.
	var consErr *services.ConsistencyError
	assert.False(t, errors.As(err, &consErr))

	product, err := stores.Products.Get(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 7, product.Stock)
}

func TestRecordSale_ConsistencyErrorWhenCompensationFails(t *testing.T) {
	ctx := context.Background()
	stores := memory.New()
	productID := seedProduct(t, stores, "Thermometer", 30, 18, 7)

	products := &flakyProductStore{
		ProductStore: stores.Products,
		failAdjust:   func(id string, delta int) bool { return delta > 0 },
	}
	sales := &flakySaleStore{SaleStore: stores.Sales, failCreate: true}
	svc := services.NewSaleService(products, sales)

	_, err := svc.Record(ctx, models.RecordSaleRequest{ProductID: productID, Quantity: 3}, "user1")

	var consErr *services.ConsistencyError
	require.ErrorAs(t, err, &consErr)
	assert.Equal(t, "RecordSale", consErr.Op)

	// Stok tertinggal berkurang tanpa baris penjualan.
	product, err := stores.Products.Get(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 4, product.Stock)
}

func TestUpdateSale_ConsistencyErrorWhenRowUpdateFails(t *testing.T) {
	ctx := context.Background()
	stores := memory.New()
	svc := services.NewSaleService(stores.Products, stores.Sales)

	oldID := seedProduct(t, stores, "Old", 100, 60, 12)
	newID := seedProduct(t, stores, "New", 40, 20, 9)

	sale, err := svc.Record(ctx, models.RecordSaleRequest{ProductID: oldID, Quantity: 2}, "user1")
	require.NoError(t, err)

	flakySvc := services.NewSaleService(stores.Products, &flakySaleStore{SaleStore: stores.Sales, failUpdate: true})

	_, err = flakySvc.Update(ctx, sale.ID.Hex(), models.UpdateSaleRequest{ProductID: newID, Quantity: 3})

	var consErr *services.ConsistencyError
	require.ErrorAs(t, err, &consErr)
	assert.Equal(t, "UpdateSale", consErr.Op)

	// Stok sudah berpindah tetapi baris penjualan masih yang lama.
	oldProduct, err := stores.Products.Get(ctx, oldID)
	require.NoError(t, err)
	assert.Equal(t, 12, oldProduct.Stock)

	newProduct, err := stores.Products.Get(ctx, newID)
	require.NoError(t, err)
	assert.Equal(t, 6, newProduct.Stock)

	unchanged, err := stores.Sales.Get(ctx, sale.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 2, unchanged.Quantity)
	assert.Equal(t, "Old", unchanged.ProductName)
}

func TestUpdateSale_ConsistencyErrorWhenRollbackFails(t *testing.T) {
	ctx := context.Background()
	stores := memory.New()
	svc := services.NewSaleService(stores.Products, stores.Sales)

	oldID := seedProduct(t, stores, "Old", 100, 60, 12)
	newID := seedProduct(t, stores, "New", 50, 30, 1)

	sale, err := svc.Record(ctx, models.RecordSaleRequest{ProductID: oldID, Quantity: 2}, "user1")
	require.NoError(t, err)

	// Pengurangan produk baru gagal karena stok kurang; pembatalan pemulihan
	// produk lama ikut digagalkan.
	products := &flakyProductStore{
		ProductStore: stores.Products,
		failAdjust:   func(id string, delta int) bool { return id == oldID && delta < 0 },
	}
	flakySvc := services.NewSaleService(products, stores.Sales)

	_, err = flakySvc.Update(ctx, sale.ID.Hex(), models.UpdateSaleRequest{ProductID: newID, Quantity: 5})

	var consErr *services.ConsistencyError
	require.ErrorAs(t, err, &consErr)
	assert.Equal(t, "UpdateSale", consErr.Op)

	// Pemulihan di langkah awal tertinggal diterapkan.
	oldProduct, err := stores.Products.Get(ctx, oldID)
	require.NoError(t, err)
	assert.Equal(t, 12, oldProduct.Stock)

	unchanged, err := stores.Sales.Get(ctx, sale.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 2, unchanged.Quantity)
}

func TestDeleteSale_ConsistencyErrorWhenRowDeleteFails(t *testing.T) {
	ctx := context.Background()
	stores := memory.New()
	svc := services.NewSaleService(stores.Products, stores.Sales)

	productID := seedProduct(t, stores, "Grinder", 120, 70, 10)

	sale, err := svc.Record(ctx, models.RecordSaleRequest{ProductID: productID, Quantity: 2}, "user1")
	require.NoError(t, err)

	flakySvc := services.NewSaleService(stores.Products, &flakySaleStore{SaleStore: stores.Sales, failDelete: true})

	err = flakySvc.Delete(ctx, sale.ID.Hex())

	var consErr *services.ConsistencyError
	require.ErrorAs(t, err, &consErr)
	assert.Equal(t, "DeleteSale", consErr.Op)

	// Stok sudah dipulihkan tetapi baris penjualan masih ada.
	product, err := stores.Products.Get(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 10, product.Stock)

	remaining, err := stores.Sales.Get(ctx, sale.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 2, remaining.Quantity)
}

// Skenario ujung-ke-ujung: catat penjualan lalu hitung statistik dashboard.
func TestSaleThenDashboardScenario(t *testing.T) {
	ctx := context.Background()
	stores := memory.New()
	svc := services.NewSaleService(stores.Products, stores.Sales)
	stats := services.NewStatsService(stores.Products, stores.Sales)

	productID := seedProduct(t, stores, "Widget", 100, 60, 10)

	sale, err := svc.Record(ctx, models.RecordSaleRequest{ProductID: productID, Quantity: 4}, "user1")
	require.NoError(t, err)
	assert.Equal(t, float64(400), sale.TotalPrice)

	product, err := stores.Products.Get(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 6, product.Stock)

	dashboard, err := stats.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(400), dashboard.TotalRevenue)
	assert.Equal(t, float64(160), dashboard.TotalProfit)
	assert.Equal(t, 1, dashboard.SalesToday)
}

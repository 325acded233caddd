package services

import (
	"context"
	"time"

	"xostore-backend/models"
	"xostore-backend/store"
)

// LowStockThreshold adalah ambang stok rendah untuk peringatan dashboard.
const LowStockThreshold = 10

// StatsService menghitung statistik dashboard dan ringkasan penjualan dari
// snapshot produk dan penjualan. Fungsi murni dari masukannya: tidak ada
// keadaan tersimpan, aman dihitung ulang pada setiap permintaan.
type StatsService struct {
	products store.ProductStore
	sales    store.SaleStore
	now      func() time.Time
}

// NewStatsService membuat StatsService baru.
func NewStatsService(products store.ProductStore, sales store.SaleStore) *StatsService {
	return &StatsService{products: products, sales: sales, now: time.Now}
}

// Dashboard menghitung statistik untuk halaman dashboard.
func (s *StatsService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.sales.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	return BuildDashboardStats(products, sales, s.now()), nil
}

// Summary menghitung ringkasan penjualan harian/mingguan/bulanan/tahunan.
func (s *StatsService) Summary(ctx context.Context) (*models.SalesSummary, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.sales.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	return BuildSalesSummary(products, sales, s.now()), nil
}

// costIndex memetakan id produk ke biaya satuan untuk perhitungan keuntungan.
func costIndex(products []models.Product) map[string]float64 {
	costs := make(map[string]float64, len(products))
	for _, p := range products {
		costs[p.ID.Hex()] = p.Cost
	}
	return costs
}

// saleProfit menghitung keuntungan satu penjualan. Penjualan yang produknya
// sudah dihapus menyumbang 0 keuntungan (pendapatannya tetap dihitung);
// perilaku ini disengaja, bukan error.
func saleProfit(sale models.Sale, costs map[string]float64) float64 {
	cost, ok := costs[sale.ProductID.Hex()]
	if !ok {
		return 0
	}
	return sale.TotalPrice - cost*float64(sale.Quantity)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// BuildDashboardStats menyusun statistik dashboard dari snapshot yang diberikan.
func BuildDashboardStats(products []models.Product, sales []models.Sale, now time.Time) *models.DashboardStats {
	costs := costIndex(products)
	today := startOfDay(now)

	stats := &models.DashboardStats{}
	for _, sale := range sales {
		stats.TotalRevenue += sale.TotalPrice
		stats.TotalProfit += saleProfit(sale, costs)
		if !sale.Date.Before(today) && sale.Date.Before(today.AddDate(0, 0, 1)) {
			stats.SalesToday++
		}
	}
	for _, p := range products {
		if p.Stock < LowStockThreshold {
			stats.LowStockItems++
		}
	}

	// Grafik 7 hari terakhir, kronologis dan berakhir hari ini; hari tanpa
	// penjualan tetap muncul dengan keuntungan 0.
	stats.SalesByDay = make([]models.DayProfit, 0, 7)
	for i := 6; i >= 0; i-- {
		dayStart := today.AddDate(0, 0, -i)
		dayEnd := dayStart.AddDate(0, 0, 1)

		var profit float64
		for _, sale := range sales {
			if !sale.Date.Before(dayStart) && sale.Date.Before(dayEnd) {
				profit += saleProfit(sale, costs)
			}
		}
		stats.SalesByDay = append(stats.SalesByDay, models.DayProfit{
			Day:    dayStart.Format("Mon"),
			Profit: profit,
		})
	}
	return stats
}

// BuildSalesSummary menyusun ringkasan per periode. Keempat jendela saling
// tumpang tindih dan berlabuh pada "sekarang": awal hari, awal minggu
// (Minggu), tanggal 1 bulan berjalan, dan 1 Januari.
func BuildSalesSummary(products []models.Product, sales []models.Sale, now time.Time) *models.SalesSummary {
	costs := costIndex(products)
	dayStart := startOfDay(now)
	weekStart := dayStart.AddDate(0, 0, -int(now.Weekday()))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())

	summary := &models.SalesSummary{}
	for _, sale := range sales {
		profit := saleProfit(sale, costs)
		if !sale.Date.Before(dayStart) {
			summary.Daily.Sales += sale.TotalPrice
			summary.Daily.Profit += profit
		}
		if !sale.Date.Before(weekStart) {
			summary.Weekly.Sales += sale.TotalPrice
			summary.Weekly.Profit += profit
		}
		if !sale.Date.Before(monthStart) {
			summary.Monthly.Sales += sale.TotalPrice
			summary.Monthly.Profit += profit
		}
		if !sale.Date.Before(yearStart) {
			summary.Yearly.Sales += sale.TotalPrice
			summary.Yearly.Profit += profit
		}
	}
	return summary
}

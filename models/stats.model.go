package models

// DayProfit adalah satu titik pada grafik keuntungan 7 hari terakhir.
type DayProfit struct {
	Day    string  `json:"day"`
	Profit float64 `json:"profit"`
}

// DashboardStats mendefinisikan struktur statistik untuk halaman dashboard.
// Dihitung ulang dari snapshot produk dan penjualan pada setiap permintaan.
type DashboardStats struct {
	TotalRevenue  float64     `json:"total_revenue"`
	TotalProfit   float64     `json:"total_profit"`
	SalesToday    int         `json:"sales_today"`
	LowStockItems int         `json:"low_stock_items"`
	SalesByDay    []DayProfit `json:"sales_by_day"`
}

// PeriodTotals berisi total penjualan dan keuntungan untuk satu jendela waktu.
type PeriodTotals struct {
	Sales  float64 `json:"sales"`
	Profit float64 `json:"profit"`
}

// SalesSummary mendefinisikan ringkasan penjualan per periode,
// semua jendela berlabuh pada "sekarang" (awal hari/minggu/bulan/tahun).
type SalesSummary struct {
	Daily   PeriodTotals `json:"daily"`
	Weekly  PeriodTotals `json:"weekly"`
	Monthly PeriodTotals `json:"monthly"`
	Yearly  PeriodTotals `json:"yearly"`
}

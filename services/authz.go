package services

import "xostore-backend/models"

// Action adalah kapabilitas yang dijaga kebijakan otorisasi.
type Action string

const (
	ActionManageProducts Action = "products:manage"
	ActionManageSales    Action = "sales:manage"
	ActionRecordSale     Action = "sales:record"
	ActionManageUsers    Action = "users:manage"
	ActionViewReports    Action = "reports:view"
)

// rolePermissions adalah satu-satunya sumber kebenaran peran → aksi.
// Admin penuh; sales_staff hanya mencatat penjualan dan membaca laporan.
var rolePermissions = map[string]map[Action]bool{
	models.RoleAdmin: {
		ActionManageProducts: true,
		ActionManageSales:    true,
		ActionRecordSale:     true,
		ActionManageUsers:    true,
		ActionViewReports:    true,
	},
	models.RoleSalesStaff: {
		ActionRecordSale:  true,
		ActionViewReports: true,
	},
}

// Can menjawab apakah peran boleh melakukan aksi. Peran tak dikenal tidak
// boleh apa-apa.
func Can(role string, action Action) bool {
	return rolePermissions[role][action]
}

package dto

import "github.com/shopspring/decimal"

// DashboardStatsResponse resumen del dashboard. Con la tienda vacía todos los
// campos son cero, nunca error.
type DashboardStatsResponse struct {
	TotalProducts     int             `json:"totalProducts"`
	LowStockCount     int             `json:"lowStockCount"`
	TodaySalesCount   int             `json:"todaySalesCount"`
	TodayStockInCount int             `json:"todayStockInCount"`
	TotalStockValue   decimal.Decimal `json:"totalStockValue"`
}

// SalesReportBucket agregado de ventas por periodo calendario.
type SalesReportBucket struct {
	Period          string          `json:"period"` // ej. 2026-08-29, 2026-W35, 2026-08
	TotalQuantity   int             `json:"totalQuantity"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	TotalSalesCount int             `json:"totalSalesCount"`
}

// TopSellingProduct fila del reporte de más vendidos.
type TopSellingProduct struct {
	ProductID       string          `json:"productId"`
	ProductName     string          `json:"name"`
	Category        string          `json:"category"`
	TotalQuantity   int             `json:"totalQuantity"`
	TotalSalesCount int             `json:"totalSalesCount"`
	Revenue         decimal.Decimal `json:"revenue"`
}

// InventoryReportRow fila del reporte de inventario.
type InventoryReportRow struct {
	ProductID         string          `json:"productId"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	CurrentStock      int             `json:"currentStock"`
	LowStockThreshold int             `json:"lowStockThreshold"`
	BuyingPrice       decimal.Decimal `json:"buyingPrice"`
	SellingPrice      decimal.Decimal `json:"sellingPrice"`
	StockValue        decimal.Decimal `json:"stockValue"`
	IsLowStock        bool            `json:"isLowStock"`
}

// InventoryReportSummary totales del reporte de inventario.
type InventoryReportSummary struct {
	TotalProducts     int             `json:"totalProducts"`
	TotalStockValue   decimal.Decimal `json:"totalStockValue"`
	LowStockItemCount int             `json:"lowStockItemCount"`
}

// InventoryReportResponse reporte completo de inventario.
type InventoryReportResponse struct {
	Products []InventoryReportRow   `json:"products"`
	Summary  InventoryReportSummary `json:"summary"`
}

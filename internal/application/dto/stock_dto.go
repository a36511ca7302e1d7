package dto

import "time"

// CreateStockInRequest body para POST /api/stock-in.
type CreateStockInRequest struct {
	ProductID string     `json:"product"`
	Quantity  int        `json:"quantity"`
	Supplier  string     `json:"supplier,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
}

// CreateStockOutRequest body para POST /api/stock-out.
type CreateStockOutRequest struct {
	ProductID string     `json:"product"`
	Quantity  int        `json:"quantity"`
	SaleType  string     `json:"saleType,omitempty"` // retail | wholesale
	Notes     string     `json:"notes,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
}

// BatchSaleItem una venta dentro de un lote.
type BatchSaleItem struct {
	ProductID string `json:"product"`
	Quantity  int    `json:"quantity"`
	SaleType  string `json:"saleType,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// BatchStockOutRequest body para POST /api/stock-out/batch.
type BatchStockOutRequest struct {
	Date  *time.Time      `json:"date,omitempty"`
	Sales []BatchSaleItem `json:"sales"`
}

// StockInResponse salida de una entrada de stock, con el producto resuelto.
type StockInResponse struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"product"`
	ProductName     string    `json:"productName,omitempty"`
	ProductCategory string    `json:"productCategory,omitempty"`
	Quantity        int       `json:"quantity"`
	Supplier        string    `json:"supplier,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Date            time.Time `json:"date"`
	CreatedAt       time.Time `json:"createdAt"`
}

// StockOutResponse salida de una venta, con el producto resuelto.
type StockOutResponse struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"product"`
	ProductName     string    `json:"productName,omitempty"`
	ProductCategory string    `json:"productCategory,omitempty"`
	Quantity        int       `json:"quantity"`
	SaleType        string    `json:"saleType"`
	Notes           string    `json:"notes,omitempty"`
	Date            time.Time `json:"date"`
	CreatedAt       time.Time `json:"createdAt"`
}

// BatchStockOutResponse resultado de un lote: conteos, ventas creadas y fallas.
// El lote es best-effort por ítem: Errors describe cada venta rechazada sin
// afectar a las demás.
type BatchStockOutResponse struct {
	Processed int                `json:"processed"`
	Total     int                `json:"total"`
	Sales     []StockOutResponse `json:"sales"`
	Errors    []string           `json:"errors,omitempty"`
}

// StockInListResponse lista paginada de entradas.
type StockInListResponse struct {
	Items      []StockInResponse `json:"items"`
	Pagination Pagination        `json:"pagination"`
}

// StockOutListResponse lista paginada de salidas.
type StockOutListResponse struct {
	Items      []StockOutResponse `json:"items"`
	Pagination Pagination         `json:"pagination"`
}

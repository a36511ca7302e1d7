package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// CurrentStock no se acepta: el stock inicia en 0 y solo lo mueve el ledger.
type CreateProductRequest struct {
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	PackSize          string          `json:"packSize"`
	BuyingPrice       decimal.Decimal `json:"buyingPrice"`
	SellingPrice      decimal.Decimal `json:"sellingPrice"`
	Supplier          string          `json:"supplier,omitempty"`
	ExpiryDate        *time.Time      `json:"expiryDate,omitempty"`
	LowStockThreshold *int            `json:"lowStockThreshold,omitempty"`
}

// UpdateProductRequest entrada para actualización parcial de campos descriptivos.
// No existe campo de stock a propósito: el catálogo rechaza escrituras directas.
type UpdateProductRequest struct {
	Name              *string          `json:"name"`
	Category          *string          `json:"category"`
	PackSize          *string          `json:"packSize"`
	BuyingPrice       *decimal.Decimal `json:"buyingPrice"`
	SellingPrice      *decimal.Decimal `json:"sellingPrice"`
	Supplier          *string          `json:"supplier"`
	ExpiryDate        *time.Time       `json:"expiryDate"`
	LowStockThreshold *int             `json:"lowStockThreshold"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	PackSize          string          `json:"packSize"`
	BuyingPrice       decimal.Decimal `json:"buyingPrice"`
	SellingPrice      decimal.Decimal `json:"sellingPrice"`
	Supplier          string          `json:"supplier,omitempty"`
	ExpiryDate        *time.Time      `json:"expiryDate,omitempty"`
	LowStockThreshold int             `json:"lowStockThreshold"`
	CurrentStock      int             `json:"currentStock"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	Pagination Pagination        `json:"pagination"`
}

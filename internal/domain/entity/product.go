package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Umbral de stock bajo por defecto cuando el producto no define uno.
const DefaultLowStockThreshold = 5

// Product representa un producto del catálogo con su stock cacheado.
// CurrentStock es un agregado materializado: siempre igual a la suma de entradas
// menos la suma de salidas registradas para el producto. Solo el motor de ledger
// lo modifica; el CRUD de catálogo nunca lo escribe directamente.
type Product struct {
	ID                string
	Name              string
	Category          string
	PackSize          string
	BuyingPrice       decimal.Decimal // precio de compra (>= 0)
	SellingPrice      decimal.Decimal // precio de venta (>= 0)
	Supplier          string          // opcional
	ExpiryDate        *time.Time      // opcional
	LowStockThreshold int             // >= 0, por defecto 5
	CurrentStock      int             // >= 0, nunca negativo
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock indica si el stock actual está en o por debajo del umbral configurado.
func (p *Product) IsLowStock() bool {
	return p.CurrentStock <= p.LowStockThreshold
}

// StockValue devuelve el valor del inventario del producto (stock x precio de compra).
func (p *Product) StockValue() decimal.Decimal {
	return p.BuyingPrice.Mul(decimal.NewFromInt(int64(p.CurrentStock)))
}

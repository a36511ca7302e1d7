package entity

import "time"

// Tipos de venta para StockOut.
const (
	SaleTypeRetail    = "retail"
	SaleTypeWholesale = "wholesale"
)

// StockOut representa una salida de mercancía (venta).
// Inmutable una vez creada. Nunca debe registrarse una salida que deje el
// stock cacheado del producto por debajo de cero.
type StockOut struct {
	ID        string
	ProductID string
	Quantity  int    // >= 1
	SaleType  string // retail | wholesale, por defecto retail
	Notes     string
	Date      time.Time
	CreatedAt time.Time
}

// ValidSaleType indica si el tipo de venta es uno de los permitidos.
func ValidSaleType(s string) bool {
	return s == SaleTypeRetail || s == SaleTypeWholesale
}

package entity

import "time"

// StockIn representa una entrada de mercancía (compra o reposición).
// Inmutable una vez creada: no existen operaciones de update ni delete.
type StockIn struct {
	ID        string
	ProductID string
	Quantity  int // >= 1
	Supplier  string
	Notes     string
	Date      time.Time // fecha de ocurrencia; por defecto la de creación
	CreatedAt time.Time
}

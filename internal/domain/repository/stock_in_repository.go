package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// MovementFilter rango de fechas y paginación para listados de movimientos.
type MovementFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// StockInRepository define el puerto de persistencia para StockIn (DIP).
// Los registros son inmutables: solo Create y lecturas.
type StockInRepository interface {
	Create(ctx context.Context, in *entity.StockIn) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockIn, error)
	Count(ctx context.Context, from, to *time.Time) (int, error)
	CountByProduct(ctx context.Context, productID string) (int, error)
	// SumByProduct devuelve la suma de cantidades registradas para el producto.
	// Usado por la reconciliación del stock cacheado.
	SumByProduct(ctx context.Context, productID string) (int, error)
}

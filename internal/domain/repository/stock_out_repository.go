package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// StockOutRepository define el puerto de persistencia para StockOut (DIP).
// Los registros son inmutables: solo Create y lecturas.
type StockOutRepository interface {
	Create(ctx context.Context, out *entity.StockOut) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockOut, error)
	// ListInRange devuelve todas las salidas del rango ordenadas por fecha ascendente,
	// sin paginar. Lo usa el motor de reportes.
	ListInRange(ctx context.Context, from, to *time.Time) ([]*entity.StockOut, error)
	Count(ctx context.Context, from, to *time.Time) (int, error)
	CountByProduct(ctx context.Context, productID string) (int, error)
	SumByProduct(ctx context.Context, productID string) (int, error)
}

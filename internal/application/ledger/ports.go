package ledger

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que el registro del movimiento y la actualización del
// stock cacheado se apliquen como una sola unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		stockInRepo repository.StockInRepository,
		stockOutRepo repository.StockOutRepository,
	) error) error
}

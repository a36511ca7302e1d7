package ledger

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// RebuildStock reconstruye el stock cacheado de un producto desde el log de
// movimientos (suma de entradas menos suma de salidas), dentro de una sola
// transacción con la fila bloqueada. Es la operación de reparación cuando se
// detecta deriva del agregado materializado; el log es la fuente recuperable
// de verdad. Devuelve el valor recalculado.
func (uc *UseCase) RebuildStock(ctx context.Context, productID string) (int, error) {
	if productID == "" {
		return 0, domain.ErrInvalidInput
	}
	var rebuilt int
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		stockInRepo repository.StockInRepository,
		stockOutRepo repository.StockOutRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		sumIn, err := stockInRepo.SumByProduct(ctx, productID)
		if err != nil {
			return err
		}
		sumOut, err := stockOutRepo.SumByProduct(ctx, productID)
		if err != nil {
			return err
		}
		rebuilt = sumIn - sumOut
		if rebuilt < 0 {
			// El propio log viola el invariante: no persistir un stock negativo.
			return fmt.Errorf("log de movimientos inconsistente para %s (suma %d): %w",
				productID, rebuilt, domain.ErrConflict)
		}
		return productRepo.UpdateStock(ctx, productID, rebuilt)
	})
	if err != nil {
		return 0, err
	}
	return rebuilt, nil
}

package ledger

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
)

// RecordBatchStockOut procesa una lista de ventas en orden, cada una con el mismo
// contrato transaccional de RecordStockOut. El lote es best-effort por ítem:
// una venta rechazada se anota en Errors y el procesamiento continúa; las ventas
// ya aplicadas no se revierten. Contrato elegido por disponibilidad sobre
// atomicidad estricta del lote.
func (uc *UseCase) RecordBatchStockOut(ctx context.Context, in dto.BatchStockOutRequest) (*dto.BatchStockOutResponse, error) {
	res := &dto.BatchStockOutResponse{
		Total: len(in.Sales),
		Sales: make([]dto.StockOutResponse, 0, len(in.Sales)),
	}

	for i, sale := range in.Sales {
		req := dto.CreateStockOutRequest{
			ProductID: sale.ProductID,
			Quantity:  sale.Quantity,
			SaleType:  sale.SaleType,
			Notes:     sale.Notes,
			Date:      in.Date,
		}
		out, err := uc.RecordStockOut(ctx, req)
		if err != nil {
			// Cancelación del caller sí aborta: ya no hay nada útil que reportar.
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			res.Errors = append(res.Errors, fmt.Sprintf("venta %d (producto %s): %s", i+1, sale.ProductID, err.Error()))
			continue
		}
		res.Sales = append(res.Sales, *out)
		res.Processed++
	}
	return res, nil
}

package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

func TestRebuildStock_CorrigeDeriva(t *testing.T) {
	uc, store := newTestUseCase()
	store.addProduct("p1", "Paracetamol", 0)
	ctx := context.Background()

	_, err := uc.RecordStockIn(ctx, dto.CreateStockInRequest{ProductID: "p1", Quantity: 20})
	require.NoError(t, err)
	_, err = uc.RecordStockOut(ctx, dto.CreateStockOutRequest{ProductID: "p1", Quantity: 8})
	require.NoError(t, err)

	// Deriva simulada: alguien escribió el agregado por fuera del ledger.
	store.products["p1"].CurrentStock = 99

	rebuilt, err := uc.RebuildStock(ctx, "p1")
	require.NoError(t, err)

	assert.Equal(t, 12, rebuilt, "Σin(20) − Σout(8) = 12")
	assert.Equal(t, 12, store.stockOf("p1"))
}

func TestRebuildStock_LogInconsistenteNoPersiste(t *testing.T) {
	uc, store := newTestUseCase()
	store.addProduct("p1", "Paracetamol", 5)
	ctx := context.Background()

	// Log corrupto: una salida sin entrada que la respalde.
	store.outs = append(store.outs, &entity.StockOut{
		ID: "m1", ProductID: "p1", Quantity: 3, SaleType: entity.SaleTypeRetail,
	})

	_, err := uc.RebuildStock(ctx, "p1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 5, store.stockOf("p1"), "un log negativo no debe persistirse")
}

func TestRebuildStock_ProductoInexistente(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.RebuildStock(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRebuildStock_SinMovimientos(t *testing.T) {
	uc, store := newTestUseCase()
	store.addProduct("p1", "Paracetamol", 4)

	rebuilt, err := uc.RebuildStock(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, 0, rebuilt, "sin movimientos el stock reconstruido es 0")
	assert.Equal(t, 0, store.stockOf("p1"))
}

package catalog_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/catalog"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria del catálogo. Los repos de movimientos solo cuentan:
// es lo único que el catálogo consulta (bloqueo de borrado con historial).
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	prev, ok := r.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *p
	// El repo real nunca escribe current_stock en Update.
	cp.CurrentStock = prev.CurrentStock
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStock(_ context.Context, id string, stock int) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentStock = stock
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	out := []*entity.Product{}
	for _, p := range r.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if f.SortBy == "category" && out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	if f.Offset > len(out) {
		return []*entity.Product{}, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *fakeProductRepo) ListLowStock(_ context.Context) ([]*entity.Product, error) {
	out := []*entity.Product{}
	for _, p := range r.products {
		if p.IsLowStock() {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Count(_ context.Context) (int, error) { return len(r.products), nil }

func (r *fakeProductRepo) CountLowStock(_ context.Context) (int, error) {
	n := 0
	for _, p := range r.products {
		if p.IsLowStock() {
			n++
		}
	}
	return n, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(r.products, id)
	return nil
}

// fakeMovementCounts implementa ambos repos de movimientos devolviendo conteos fijos.
type fakeMovementCounts struct {
	counts map[string]int
}

func (r *fakeMovementCounts) Create(_ context.Context, _ *entity.StockIn) error { return nil }

func (r *fakeMovementCounts) List(_ context.Context, _ repository.MovementFilter) ([]*entity.StockIn, error) {
	return nil, nil
}

func (r *fakeMovementCounts) Count(_ context.Context, _, _ *time.Time) (int, error) { return 0, nil }

func (r *fakeMovementCounts) CountByProduct(_ context.Context, productID string) (int, error) {
	return r.counts[productID], nil
}

func (r *fakeMovementCounts) SumByProduct(_ context.Context, _ string) (int, error) { return 0, nil }

type fakeOutCounts struct{ fakeMovementCounts }

func (r *fakeOutCounts) Create(_ context.Context, _ *entity.StockOut) error { return nil }

func (r *fakeOutCounts) List(_ context.Context, _ repository.MovementFilter) ([]*entity.StockOut, error) {
	return nil, nil
}

func (r *fakeOutCounts) ListInRange(_ context.Context, _, _ *time.Time) ([]*entity.StockOut, error) {
	return nil, nil
}

type testEnv struct {
	uc       *catalog.UseCase
	products *fakeProductRepo
	ins      *fakeMovementCounts
	outs     *fakeOutCounts
}

func newTestEnv() *testEnv {
	products := newFakeProductRepo()
	ins := &fakeMovementCounts{counts: map[string]int{}}
	outs := &fakeOutCounts{fakeMovementCounts{counts: map[string]int{}}}
	return &testEnv{
		uc:       catalog.NewUseCase(products, ins, outs),
		products: products,
		ins:      ins,
		outs:     outs,
	}
}

func seed(env *testEnv, id, name, category string, stock, threshold int) {
	env.products.products[id] = &entity.Product{
		ID: id, Name: name, Category: category, PackSize: "caja",
		BuyingPrice: decimal.NewFromInt(10), SellingPrice: decimal.NewFromInt(15),
		LowStockThreshold: threshold, CurrentStock: stock,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_AplicaDefaults(t *testing.T) {
	env := newTestEnv()

	out, err := env.uc.Create(context.Background(), dto.CreateProductRequest{
		Name:         "Paracetamol 500mg",
		Category:     "analgésicos",
		PackSize:     "caja x20",
		BuyingPrice:  decimal.NewFromInt(8),
		SellingPrice: decimal.NewFromInt(12),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, 0, out.CurrentStock, "el stock inicial siempre es 0")
	assert.Equal(t, entity.DefaultLowStockThreshold, out.LowStockThreshold, "umbral por defecto 5")
}

func TestCreate_UmbralExplicito(t *testing.T) {
	env := newTestEnv()
	threshold := 12

	out, err := env.uc.Create(context.Background(), dto.CreateProductRequest{
		Name: "Vitamina C", Category: "suplementos", PackSize: "frasco",
		LowStockThreshold: &threshold,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, out.LowStockThreshold)
}

func TestCreate_ValidacionPorCampos(t *testing.T) {
	env := newTestEnv()

	_, err := env.uc.Create(context.Background(), dto.CreateProductRequest{
		BuyingPrice: decimal.NewFromInt(-1),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	fields := map[string]bool{}
	for _, f := range verr.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["name"], "name requerido debe reportarse")
	assert.True(t, fields["category"], "category requerida debe reportarse")
	assert.True(t, fields["packSize"], "packSize requerido debe reportarse")
	assert.True(t, fields["buyingPrice"], "precio negativo debe reportarse")
}

// ──────────────────────────────────────────────────────────────────────────────
// GetByID / List
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByID_NoEncontrado(t *testing.T) {
	env := newTestEnv()

	_, err := env.uc.GetByID(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_FiltroYOrden(t *testing.T) {
	env := newTestEnv()
	seed(env, "p1", "Zinc", "suplementos", 10, 5)
	seed(env, "p2", "Aspirina", "analgésicos", 10, 5)
	seed(env, "p3", "Calcio", "suplementos", 10, 5)

	res, err := env.uc.List(context.Background(), "suplementos", "name", 1, 50)
	require.NoError(t, err)

	require.Len(t, res.Items, 2)
	assert.Equal(t, "Calcio", res.Items[0].Name)
	assert.Equal(t, "Zinc", res.Items[1].Name)
}

func TestList_SortByInvalido(t *testing.T) {
	env := newTestEnv()

	_, err := env.uc.List(context.Background(), "", "precio", 1, 50)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_ParcialNoTocaStock(t *testing.T) {
	env := newTestEnv()
	seed(env, "p1", "Paracetamol", "analgésicos", 33, 5)

	name := "Paracetamol 500mg"
	price := decimal.NewFromInt(14)
	out, err := env.uc.Update(context.Background(), "p1", dto.UpdateProductRequest{
		Name:         &name,
		SellingPrice: &price,
	})
	require.NoError(t, err)

	assert.Equal(t, "Paracetamol 500mg", out.Name)
	assert.True(t, price.Equal(out.SellingPrice))
	assert.Equal(t, "analgésicos", out.Category, "los campos no enviados no cambian")
	assert.Equal(t, 33, out.CurrentStock, "el stock jamás se toca desde el catálogo")
	assert.Equal(t, 33, env.products.products["p1"].CurrentStock)
}

func TestUpdate_ValidaCampos(t *testing.T) {
	env := newTestEnv()
	seed(env, "p1", "Paracetamol", "analgésicos", 0, 5)

	empty := ""
	negative := decimal.NewFromInt(-5)
	_, err := env.uc.Update(context.Background(), "p1", dto.UpdateProductRequest{
		Name:        &empty,
		BuyingPrice: &negative,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "Paracetamol", env.products.products["p1"].Name, "nada se persiste si hay errores")
}

func TestUpdate_NoEncontrado(t *testing.T) {
	env := newTestEnv()

	name := "X"
	_, err := env.uc.Update(context.Background(), "no-existe", dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_SinHistorial(t *testing.T) {
	env := newTestEnv()
	seed(env, "p1", "Paracetamol", "analgésicos", 0, 5)

	require.NoError(t, env.uc.Delete(context.Background(), "p1"))
	assert.NotContains(t, env.products.products, "p1")
}

func TestDelete_BloqueadoConHistorial(t *testing.T) {
	env := newTestEnv()
	seed(env, "p1", "Paracetamol", "analgésicos", 10, 5)
	env.outs.counts["p1"] = 3

	err := env.uc.Delete(context.Background(), "p1")
	assert.ErrorIs(t, err, domain.ErrConflict, "con movimientos el borrado se rechaza")
	assert.Contains(t, env.products.products, "p1")
}

// ──────────────────────────────────────────────────────────────────────────────
// Low stock
// ──────────────────────────────────────────────────────────────────────────────

func TestListLowStock_UmbralInclusive(t *testing.T) {
	env := newTestEnv()
	seed(env, "p1", "En el umbral", "a", 5, 5)
	seed(env, "p2", "Por encima", "a", 6, 5)
	seed(env, "p3", "Agotado", "a", 0, 5)

	out, err := env.uc.ListLowStock(context.Background())
	require.NoError(t, err)

	ids := map[string]bool{}
	for _, p := range out {
		ids[p.ID] = true
	}
	assert.True(t, ids["p1"], "stock == umbral cuenta como bajo")
	assert.True(t, ids["p3"])
	assert.False(t, ids["p2"])
}

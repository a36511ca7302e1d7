// Package ledger implementa el motor de consistencia del stock: cada movimiento
// (entrada o salida) se registra y el contador cacheado del producto se actualiza
// en la misma transacción, con la fila del producto bloqueada (SELECT FOR UPDATE)
// para que dos salidas concurrentes no puedan sobrevender contra un valor viejo.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// UseCase registra entradas y salidas de stock de forma transaccional.
type UseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	stockInRepo  repository.StockInRepository
	stockOutRepo repository.StockOutRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	stockInRepo repository.StockInRepository,
	stockOutRepo repository.StockOutRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		stockInRepo:  stockInRepo,
		stockOutRepo: stockOutRepo,
	}
}

// RecordStockIn registra una entrada de mercancía y suma la cantidad al stock
// cacheado del producto dentro de una sola transacción.
func (uc *UseCase) RecordStockIn(ctx context.Context, in dto.CreateStockInRequest) (*dto.StockInResponse, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}

	var out *dto.StockInResponse
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		stockInRepo repository.StockInRepository,
		_ repository.StockOutRepository,
	) error {
		// Bloquea la fila del producto: serializa mutaciones de stock por producto.
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		mov := &entity.StockIn{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Quantity:  in.Quantity,
			Supplier:  in.Supplier,
			Notes:     in.Notes,
			Date:      date,
			CreatedAt: now,
		}
		if err := stockInRepo.Create(ctx, mov); err != nil {
			return err
		}
		if err := productRepo.UpdateStock(ctx, product.ID, product.CurrentStock+in.Quantity); err != nil {
			return err
		}
		out = toStockInResponse(mov, product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RecordStockOut registra una venta: verifica suficiencia de stock y resta la
// cantidad, todo bajo la misma fila bloqueada. Si quantity > stock actual
// devuelve InsufficientStockError con disponible y solicitado.
func (uc *UseCase) RecordStockOut(ctx context.Context, in dto.CreateStockOutRequest) (*dto.StockOutResponse, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	saleType := in.SaleType
	if saleType == "" {
		saleType = entity.SaleTypeRetail
	}
	if !entity.ValidSaleType(saleType) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}

	var out *dto.StockOutResponse
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.StockInRepository,
		stockOutRepo repository.StockOutRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		// Chequeo y decremento bajo el mismo lock: la clásica carrera
		// check-then-act no puede colar dos ventas contra el mismo stock.
		if in.Quantity > product.CurrentStock {
			return &domain.InsufficientStockError{
				Available: product.CurrentStock,
				Requested: in.Quantity,
			}
		}
		mov := &entity.StockOut{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Quantity:  in.Quantity,
			SaleType:  saleType,
			Notes:     in.Notes,
			Date:      date,
			CreatedAt: now,
		}
		if err := stockOutRepo.Create(ctx, mov); err != nil {
			return err
		}
		if err := productRepo.UpdateStock(ctx, product.ID, product.CurrentStock-in.Quantity); err != nil {
			return err
		}
		out = toStockOutResponse(mov, product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListStockIns lista entradas paginadas (más recientes primero), resolviendo
// nombre y categoría del producto de cada registro.
func (uc *UseCase) ListStockIns(ctx context.Context, page, limit int, from, to *time.Time) (*dto.StockInListResponse, error) {
	page, limit = normalizePage(page, limit)
	filter := repository.MovementFilter{From: from, To: to, Limit: limit, Offset: (page - 1) * limit}

	movs, err := uc.stockInRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.stockInRepo.Count(ctx, from, to)
	if err != nil {
		return nil, err
	}

	products := map[string]*entity.Product{}
	items := make([]dto.StockInResponse, 0, len(movs))
	for _, m := range movs {
		p, err := uc.lookupProduct(ctx, products, m.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, *toStockInResponse(m, p))
	}
	return &dto.StockInListResponse{
		Items:      items,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

// ListStockOuts lista salidas paginadas (más recientes primero).
func (uc *UseCase) ListStockOuts(ctx context.Context, page, limit int, from, to *time.Time) (*dto.StockOutListResponse, error) {
	page, limit = normalizePage(page, limit)
	filter := repository.MovementFilter{From: from, To: to, Limit: limit, Offset: (page - 1) * limit}

	movs, err := uc.stockOutRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.stockOutRepo.Count(ctx, from, to)
	if err != nil {
		return nil, err
	}

	products := map[string]*entity.Product{}
	items := make([]dto.StockOutResponse, 0, len(movs))
	for _, m := range movs {
		p, err := uc.lookupProduct(ctx, products, m.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, *toStockOutResponse(m, p))
	}
	return &dto.StockOutListResponse{
		Items:      items,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

// lookupProduct resuelve un producto con cache local por página.
func (uc *UseCase) lookupProduct(ctx context.Context, cache map[string]*entity.Product, id string) (*entity.Product, error) {
	if p, ok := cache[id]; ok {
		return p, nil
	}
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cache[id] = p
	return p, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	return page, limit
}

func toStockInResponse(m *entity.StockIn, p *entity.Product) *dto.StockInResponse {
	r := &dto.StockInResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		Supplier:  m.Supplier,
		Notes:     m.Notes,
		Date:      m.Date,
		CreatedAt: m.CreatedAt,
	}
	if p != nil {
		r.ProductName = p.Name
		r.ProductCategory = p.Category
	}
	return r
}

func toStockOutResponse(m *entity.StockOut, p *entity.Product) *dto.StockOutResponse {
	r := &dto.StockOutResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		SaleType:  m.SaleType,
		Notes:     m.Notes,
		Date:      m.Date,
		CreatedAt: m.CreatedAt,
	}
	if p != nil {
		r.ProductName = p.Name
		r.ProductCategory = p.Category
	}
	return r
}

// Package catalog implementa el CRUD de productos. El stock cacheado queda fuera
// de su alcance: lo mueve exclusivamente el motor de ledger.
package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// UseCase casos de uso CRUD para productos.
type UseCase struct {
	productRepo  repository.ProductRepository
	stockInRepo  repository.StockInRepository
	stockOutRepo repository.StockOutRepository
}

// NewUseCase construye el caso de uso. Los repos de movimientos solo se usan
// para bloquear el borrado de productos con historial.
func NewUseCase(
	productRepo repository.ProductRepository,
	stockInRepo repository.StockInRepository,
	stockOutRepo repository.StockOutRepository,
) *UseCase {
	return &UseCase{productRepo: productRepo, stockInRepo: stockInRepo, stockOutRepo: stockOutRepo}
}

// Create valida y crea un producto. El stock inicia en 0 y el umbral de stock
// bajo en 5 si no se indica.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if verr := validateCreate(in); verr.HasErrors() {
		return nil, verr
	}
	threshold := entity.DefaultLowStockThreshold
	if in.LowStockThreshold != nil {
		threshold = *in.LowStockThreshold
	}
	now := time.Now()
	product := &entity.Product{
		ID:                uuid.New().String(),
		Name:              in.Name,
		Category:          in.Category,
		PackSize:          in.PackSize,
		BuyingPrice:       in.BuyingPrice,
		SellingPrice:      in.SellingPrice,
		Supplier:          in.Supplier,
		ExpiryDate:        in.ExpiryDate,
		LowStockThreshold: threshold,
		CurrentStock:      0,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista productos con filtro opcional de categoría y orden por nombre o categoría.
func (uc *UseCase) List(ctx context.Context, category, sortBy string, page, limit int) (*dto.ProductListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if sortBy != "" && sortBy != "name" && sortBy != "category" {
		return nil, (&domain.ValidationError{}).Add("sortBy", "debe ser name o category")
	}
	filter := repository.ProductFilter{
		Category: category,
		SortBy:   sortBy,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}
	list, err := uc.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.productRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items:      items,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

// Update actualización parcial de campos descriptivos. CurrentStock no es
// actualizable desde aquí: el DTO no lo expone y el repo no lo escribe.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	verr := &domain.ValidationError{}
	if in.Name != nil {
		if *in.Name == "" {
			verr.Add("name", "no puede ser vacío")
		}
		product.Name = *in.Name
	}
	if in.Category != nil {
		if *in.Category == "" {
			verr.Add("category", "no puede ser vacía")
		}
		product.Category = *in.Category
	}
	if in.PackSize != nil {
		product.PackSize = *in.PackSize
	}
	if in.BuyingPrice != nil {
		if in.BuyingPrice.IsNegative() {
			verr.Add("buyingPrice", "debe ser >= 0")
		}
		product.BuyingPrice = *in.BuyingPrice
	}
	if in.SellingPrice != nil {
		if in.SellingPrice.IsNegative() {
			verr.Add("sellingPrice", "debe ser >= 0")
		}
		product.SellingPrice = *in.SellingPrice
	}
	if in.Supplier != nil {
		product.Supplier = *in.Supplier
	}
	if in.ExpiryDate != nil {
		product.ExpiryDate = in.ExpiryDate
	}
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 0 {
			verr.Add("lowStockThreshold", "debe ser >= 0")
		}
		product.LowStockThreshold = *in.LowStockThreshold
	}
	if verr.HasErrors() {
		return nil, verr
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto sin historial de movimientos. Si existen entradas
// o salidas que lo referencian devuelve ErrConflict: la integridad referencial
// del ledger manda sobre el borrado.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	ins, err := uc.stockInRepo.CountByProduct(ctx, id)
	if err != nil {
		return err
	}
	outs, err := uc.stockOutRepo.CountByProduct(ctx, id)
	if err != nil {
		return err
	}
	if ins > 0 || outs > 0 {
		return domain.ErrConflict
	}
	return uc.productRepo.Delete(ctx, id)
}

// ListLowStock lista productos con stock en o por debajo de su umbral.
func (uc *UseCase) ListLowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.productRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

func validateCreate(in dto.CreateProductRequest) *domain.ValidationError {
	verr := &domain.ValidationError{}
	if in.Name == "" {
		verr.Add("name", "es requerido")
	}
	if in.Category == "" {
		verr.Add("category", "es requerida")
	}
	if in.PackSize == "" {
		verr.Add("packSize", "es requerido")
	}
	if in.BuyingPrice.LessThan(decimal.Zero) {
		verr.Add("buyingPrice", "debe ser >= 0")
	}
	if in.SellingPrice.LessThan(decimal.Zero) {
		verr.Add("sellingPrice", "debe ser >= 0")
	}
	if in.LowStockThreshold != nil && *in.LowStockThreshold < 0 {
		verr.Add("lowStockThreshold", "debe ser >= 0")
	}
	return verr
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Category:          p.Category,
		PackSize:          p.PackSize,
		BuyingPrice:       p.BuyingPrice,
		SellingPrice:      p.SellingPrice,
		Supplier:          p.Supplier,
		ExpiryDate:        p.ExpiryDate,
		LowStockThreshold: p.LowStockThreshold,
		CurrentStock:      p.CurrentStock,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

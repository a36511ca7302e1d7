package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// ProductFilter criterios de listado para el catálogo.
type ProductFilter struct {
	Category string // vacío = todas
	SortBy   string // "name" o "category"; vacío = name
	Limit    int
	Offset   int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// CurrentStock solo se escribe vía UpdateStock, y únicamente dentro de la
// transacción del motor de ledger; Update no lo toca.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE)
	// para serializar mutaciones de stock por producto.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, productID string, stock int) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
	Count(ctx context.Context) (int, error)
	CountLowStock(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}

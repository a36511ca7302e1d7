package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.StockOutRepository = (*StockOutRepo)(nil)

// StockOutRepo implementación de StockOutRepository sobre PostgreSQL (usable con pool o tx).
// Las salidas son inmutables: no hay UPDATE ni DELETE.
type StockOutRepo struct {
	q Querier
}

// NewStockOutRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockOutRepository(q Querier) *StockOutRepo {
	return &StockOutRepo{q: q}
}

// Create persiste una salida de stock.
func (r *StockOutRepo) Create(ctx context.Context, out *entity.StockOut) error {
	query := `
		INSERT INTO stock_outs (id, product_id, quantity, sale_type, notes, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		out.ID, out.ProductID, out.Quantity, out.SaleType, nullIfEmpty(out.Notes),
		out.Date, out.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock out: %w", err)
	}
	return nil
}

// List lista salidas en un rango de fechas, más recientes primero, paginadas.
func (r *StockOutRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockOut, error) {
	query := `SELECT id, product_id, quantity, sale_type, notes, date, created_at FROM stock_outs`
	where, args := dateRangeClause(filter.From, filter.To)
	query += where
	query += fmt.Sprintf(" ORDER BY date DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)
	return r.queryMany(ctx, query, args)
}

// ListInRange devuelve todas las salidas del rango ordenadas por fecha ascendente.
// Sin paginar: lo consume el motor de reportes.
func (r *StockOutRepo) ListInRange(ctx context.Context, from, to *time.Time) ([]*entity.StockOut, error) {
	query := `SELECT id, product_id, quantity, sale_type, notes, date, created_at FROM stock_outs`
	where, args := dateRangeClause(from, to)
	query += where + " ORDER BY date, created_at"
	return r.queryMany(ctx, query, args)
}

// Count cuenta salidas en el rango.
func (r *StockOutRepo) Count(ctx context.Context, from, to *time.Time) (int, error) {
	query := `SELECT count(*) FROM stock_outs`
	where, args := dateRangeClause(from, to)
	var n int
	if err := r.q.QueryRow(ctx, query+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stock outs: %w", err)
	}
	return n, nil
}

// CountByProduct cuenta salidas que referencian al producto.
func (r *StockOutRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM stock_outs WHERE product_id = $1`, productID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count stock outs by product: %w", err)
	}
	return n, nil
}

// SumByProduct suma las cantidades vendidas del producto.
func (r *StockOutRepo) SumByProduct(ctx context.Context, productID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT coalesce(sum(quantity), 0) FROM stock_outs WHERE product_id = $1`, productID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sum stock outs by product: %w", err)
	}
	return n, nil
}

func (r *StockOutRepo) queryMany(ctx context.Context, query string, args []any) ([]*entity.StockOut, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock outs: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockOut
	for rows.Next() {
		var m entity.StockOut
		var notes *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Quantity, &m.SaleType, &notes, &m.Date, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock out: %w", err)
		}
		if notes != nil {
			m.Notes = *notes
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

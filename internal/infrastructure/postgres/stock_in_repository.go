package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.StockInRepository = (*StockInRepo)(nil)

// StockInRepo implementación de StockInRepository sobre PostgreSQL (usable con pool o tx).
// Las entradas son inmutables: no hay UPDATE ni DELETE.
type StockInRepo struct {
	q Querier
}

// NewStockInRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockInRepository(q Querier) *StockInRepo {
	return &StockInRepo{q: q}
}

// Create persiste una entrada de stock.
func (r *StockInRepo) Create(ctx context.Context, in *entity.StockIn) error {
	query := `
		INSERT INTO stock_ins (id, product_id, quantity, supplier, notes, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		in.ID, in.ProductID, in.Quantity, nullIfEmpty(in.Supplier), nullIfEmpty(in.Notes),
		in.Date, in.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock in: %w", err)
	}
	return nil
}

// List lista entradas en un rango de fechas, más recientes primero, paginadas.
func (r *StockInRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockIn, error) {
	query := `SELECT id, product_id, quantity, supplier, notes, date, created_at FROM stock_ins`
	where, args := dateRangeClause(filter.From, filter.To)
	query += where
	query += fmt.Sprintf(" ORDER BY date DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock ins: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockIn
	for rows.Next() {
		var m entity.StockIn
		var supplier, notes *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Quantity, &supplier, &notes, &m.Date, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock in: %w", err)
		}
		if supplier != nil {
			m.Supplier = *supplier
		}
		if notes != nil {
			m.Notes = *notes
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Count cuenta entradas en el rango.
func (r *StockInRepo) Count(ctx context.Context, from, to *time.Time) (int, error) {
	query := `SELECT count(*) FROM stock_ins`
	where, args := dateRangeClause(from, to)
	var n int
	if err := r.q.QueryRow(ctx, query+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stock ins: %w", err)
	}
	return n, nil
}

// CountByProduct cuenta entradas que referencian al producto.
func (r *StockInRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM stock_ins WHERE product_id = $1`, productID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count stock ins by product: %w", err)
	}
	return n, nil
}

// SumByProduct suma las cantidades registradas para el producto.
func (r *StockInRepo) SumByProduct(ctx context.Context, productID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT coalesce(sum(quantity), 0) FROM stock_ins WHERE product_id = $1`, productID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sum stock ins by product: %w", err)
	}
	return n, nil
}

// dateRangeClause arma el WHERE de rango de fechas compartido por los repos de movimientos.
func dateRangeClause(from, to *time.Time) (string, []any) {
	clause := ""
	args := []any{}
	add := func(cond string, v any) {
		if clause == "" {
			clause = " WHERE "
		} else {
			clause += " AND "
		}
		args = append(args, v)
		clause += fmt.Sprintf(cond, len(args))
	}
	if from != nil {
		add("date >= $%d", *from)
	}
	if to != nil {
		add("date <= $%d", *to)
	}
	return clause, args
}

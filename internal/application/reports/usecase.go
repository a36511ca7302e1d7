// Package reports contiene los casos de uso de reportería: lecturas puras sobre
// catálogo y log de movimientos. Nunca mutan estado y con la tienda vacía
// devuelven agregados en cero, no errores.
package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Periodos de agrupación del reporte de ventas.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

const defaultTopLimit = 10

// UseCase genera los reportes del negocio.
type UseCase struct {
	productRepo  repository.ProductRepository
	stockInRepo  repository.StockInRepository
	stockOutRepo repository.StockOutRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	productRepo repository.ProductRepository,
	stockInRepo repository.StockInRepository,
	stockOutRepo repository.StockOutRepository,
) *UseCase {
	return &UseCase{productRepo: productRepo, stockInRepo: stockInRepo, stockOutRepo: stockOutRepo}
}

// DashboardStats arma el resumen del dashboard. Las consultas se lanzan en
// paralelo; "hoy" es el día calendario en la zona horaria del servidor.
// No se garantiza consistencia punto-en-el-tiempo entre campos.
func (uc *UseCase) DashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	type countResult struct {
		n   int
		err error
	}
	type valueResult struct {
		value decimal.Decimal
		err   error
	}

	totalCh := make(chan countResult, 1)
	lowCh := make(chan countResult, 1)
	salesCh := make(chan countResult, 1)
	insCh := make(chan countResult, 1)
	valueCh := make(chan valueResult, 1)

	go func() {
		n, err := uc.productRepo.Count(ctx)
		totalCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.productRepo.CountLowStock(ctx)
		lowCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.stockOutRepo.Count(ctx, &todayStart, nil)
		salesCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.stockInRepo.Count(ctx, &todayStart, nil)
		insCh <- countResult{n, err}
	}()
	go func() {
		products, err := uc.productRepo.List(ctx, repository.ProductFilter{})
		if err != nil {
			valueCh <- valueResult{decimal.Zero, err}
			return
		}
		total := decimal.Zero
		for _, p := range products {
			total = total.Add(p.StockValue())
		}
		valueCh <- valueResult{total, err}
	}()

	total := <-totalCh
	low := <-lowCh
	sales := <-salesCh
	ins := <-insCh
	value := <-valueCh

	if total.err != nil {
		return nil, fmt.Errorf("dashboard: total de productos: %w", total.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: productos con stock bajo: %w", low.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", sales.err)
	}
	if ins.err != nil {
		return nil, fmt.Errorf("dashboard: entradas de hoy: %w", ins.err)
	}
	if value.err != nil {
		return nil, fmt.Errorf("dashboard: valor del inventario: %w", value.err)
	}

	return &dto.DashboardStatsResponse{
		TotalProducts:     total.n,
		LowStockCount:     low.n,
		TodaySalesCount:   sales.n,
		TodayStockInCount: ins.n,
		TotalStockValue:   value.value,
	}, nil
}

// SalesReport agrupa las ventas del rango por periodo calendario, ordenado
// descendente por bucket. El revenue usa el precio de venta ACTUAL del producto,
// no el del momento de la venta (limitación conocida: no se guarda snapshot de precio).
func (uc *UseCase) SalesReport(ctx context.Context, from, to *time.Time, period string) ([]dto.SalesReportBucket, error) {
	if period == "" {
		period = PeriodDaily
	}
	if period != PeriodDaily && period != PeriodWeekly && period != PeriodMonthly {
		return nil, (&domain.ValidationError{}).Add("period", "debe ser daily, weekly o monthly")
	}
	sales, err := uc.stockOutRepo.ListInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	prices, err := uc.sellingPrices(ctx, sales)
	if err != nil {
		return nil, err
	}

	buckets := map[string]*dto.SalesReportBucket{}
	for _, s := range sales {
		key := bucketKey(s.Date, period)
		b, ok := buckets[key]
		if !ok {
			b = &dto.SalesReportBucket{Period: key, TotalRevenue: decimal.Zero}
			buckets[key] = b
		}
		b.TotalQuantity += s.Quantity
		b.TotalSalesCount++
		b.TotalRevenue = b.TotalRevenue.Add(prices[s.ProductID].Mul(decimal.NewFromInt(int64(s.Quantity))))
	}

	out := make([]dto.SalesReportBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period > out[j].Period })
	return out, nil
}

// TopSellingProducts devuelve los productos más vendidos del rango por cantidad
// total descendente; empates se resuelven por orden de primera venta.
func (uc *UseCase) TopSellingProducts(ctx context.Context, from, to *time.Time, limit int) ([]dto.TopSellingProduct, error) {
	if limit <= 0 {
		limit = defaultTopLimit
	}
	sales, err := uc.stockOutRepo.ListInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	type acc struct {
		row   dto.TopSellingProduct
		order int
	}
	byProduct := map[string]*acc{}
	order := 0
	for _, s := range sales {
		a, ok := byProduct[s.ProductID]
		if !ok {
			a = &acc{row: dto.TopSellingProduct{ProductID: s.ProductID, Revenue: decimal.Zero}, order: order}
			byProduct[s.ProductID] = a
			order++
		}
		a.row.TotalQuantity += s.Quantity
		a.row.TotalSalesCount++
	}

	rows := make([]*acc, 0, len(byProduct))
	for _, a := range byProduct {
		rows = append(rows, a)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].row.TotalQuantity != rows[j].row.TotalQuantity {
			return rows[i].row.TotalQuantity > rows[j].row.TotalQuantity
		}
		return rows[i].order < rows[j].order
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}

	out := make([]dto.TopSellingProduct, 0, len(rows))
	for _, a := range rows {
		p, err := uc.productRepo.GetByID(ctx, a.row.ProductID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			a.row.ProductName = p.Name
			a.row.Category = p.Category
			a.row.Revenue = p.SellingPrice.Mul(decimal.NewFromInt(int64(a.row.TotalQuantity)))
		}
		out = append(out, a.row)
	}
	return out, nil
}

// InventoryReport lista el inventario (opcionalmente por categoría) con valor de
// stock y marca de stock bajo por producto, más totales.
func (uc *UseCase) InventoryReport(ctx context.Context, category string) (*dto.InventoryReportResponse, error) {
	products, err := uc.productRepo.List(ctx, repository.ProductFilter{Category: category, SortBy: "name"})
	if err != nil {
		return nil, err
	}

	res := &dto.InventoryReportResponse{
		Products: make([]dto.InventoryReportRow, 0, len(products)),
		Summary:  dto.InventoryReportSummary{TotalStockValue: decimal.Zero},
	}
	for _, p := range products {
		value := p.StockValue()
		res.Products = append(res.Products, dto.InventoryReportRow{
			ProductID:         p.ID,
			Name:              p.Name,
			Category:          p.Category,
			CurrentStock:      p.CurrentStock,
			LowStockThreshold: p.LowStockThreshold,
			BuyingPrice:       p.BuyingPrice,
			SellingPrice:      p.SellingPrice,
			StockValue:        value,
			IsLowStock:        p.IsLowStock(),
		})
		res.Summary.TotalProducts++
		res.Summary.TotalStockValue = res.Summary.TotalStockValue.Add(value)
		if p.IsLowStock() {
			res.Summary.LowStockItemCount++
		}
	}
	return res, nil
}

// sellingPrices resuelve el precio de venta actual de cada producto referenciado.
func (uc *UseCase) sellingPrices(ctx context.Context, sales []*entity.StockOut) (map[string]decimal.Decimal, error) {
	prices := map[string]decimal.Decimal{}
	for _, s := range sales {
		if _, ok := prices[s.ProductID]; ok {
			continue
		}
		p, err := uc.productRepo.GetByID(ctx, s.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			prices[s.ProductID] = decimal.Zero
			continue
		}
		prices[s.ProductID] = p.SellingPrice
	}
	return prices, nil
}

// bucketKey arma la clave calendario del periodo: día (2006-01-02),
// semana ISO (2006-W02) o mes (2006-01). Las claves ordenan lexicográficamente
// igual que cronológicamente dentro de cada periodo.
func bucketKey(t time.Time, period string) string {
	switch period {
	case PeriodWeekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case PeriodMonthly:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

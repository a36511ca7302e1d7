package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/reports"
)

// ReportHandler maneja las peticiones HTTP de reportes (protegido, solo lectura).
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Estadísticas del dashboard
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.DashboardStats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Sales godoc
// @Summary      Reporte de ventas por periodo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        startDate  query  string  false  "ISO-8601"
// @Param        endDate    query  string  false  "ISO-8601"
// @Param        period     query  string  false  "daily | weekly | monthly"  default(daily)
// @Success      200  {array}  dto.SalesReportBucket
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	from, err := parseDateQuery(c, "startDate")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	to, err := parseDateQuery(c, "endDate")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.SalesReport(c.Context(), from, to, c.Query("period"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TopSelling godoc
// @Summary      Productos más vendidos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        startDate  query  string  false  "ISO-8601"
// @Param        endDate    query  string  false  "ISO-8601"
// @Param        limit      query  int     false  "Máximo de filas"  default(10)
// @Success      200  {array}  dto.TopSellingProduct
// @Router       /api/reports/top-selling [get]
func (h *ReportHandler) TopSelling(c *fiber.Ctx) error {
	from, err := parseDateQuery(c, "startDate")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	to, err := parseDateQuery(c, "endDate")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.TopSellingProducts(c.Context(), from, to, c.QueryInt("limit", 10))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Inventory godoc
// @Summary      Reporte de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "Filtrar por categoría"
// @Success      200  {object}  dto.InventoryReportResponse
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	out, err := h.uc.InventoryReport(c.Context(), c.Query("category"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// parseDateQuery lee un parámetro de fecha ISO-8601 (con o sin hora).
func parseDateQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, nil
	}
	return nil, fmt.Errorf("%s debe ser una fecha ISO-8601", key)
}

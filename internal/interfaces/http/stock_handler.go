package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
)

// StockHandler maneja las peticiones HTTP de movimientos de stock (protegido).
type StockHandler struct {
	uc *ledger.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *ledger.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// CreateStockIn godoc
// @Summary      Registrar entrada de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockInRequest  true  "product, quantity, supplier?, notes?, date?"
// @Success      201   {object}  dto.StockInResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-in [post]
func (h *StockHandler) CreateStockIn(c *fiber.Ctx) error {
	var in dto.CreateStockInRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RecordStockIn(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateStockOut godoc
// @Summary      Registrar venta (salida de stock)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockOutRequest  true  "product, quantity, saleType?, notes?, date?"
// @Success      201   {object}  dto.StockOutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-out [post]
func (h *StockHandler) CreateStockOut(c *fiber.Ctx) error {
	var in dto.CreateStockOutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RecordStockOut(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateBatchStockOut godoc
// @Summary      Registrar lote de ventas (best-effort por ítem)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BatchStockOutRequest  true  "date?, sales[]"
// @Success      201   {object}  dto.BatchStockOutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock-out/batch [post]
func (h *StockHandler) CreateBatchStockOut(c *fiber.Ctx) error {
	var in dto.BatchStockOutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Sales) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sales no puede ser vacío"})
	}
	out, err := h.uc.RecordBatchStockOut(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListStockIns godoc
// @Summary      Listar entradas de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        page       query  int     false  "Página"  default(1)
// @Param        limit      query  int     false  "Límite"  default(50)
// @Param        startDate  query  string  false  "ISO-8601"
// @Param        endDate    query  string  false  "ISO-8601"
// @Success      200  {object}  dto.StockInListResponse
// @Router       /api/stock-in [get]
func (h *StockHandler) ListStockIns(c *fiber.Ctx) error {
	page, limit, from, to, err := parseListQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.ListStockIns(c.Context(), page, limit, from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListStockOuts godoc
// @Summary      Listar salidas de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        page       query  int     false  "Página"  default(1)
// @Param        limit      query  int     false  "Límite"  default(50)
// @Param        startDate  query  string  false  "ISO-8601"
// @Param        endDate    query  string  false  "ISO-8601"
// @Success      200  {object}  dto.StockOutListResponse
// @Router       /api/stock-out [get]
func (h *StockHandler) ListStockOuts(c *fiber.Ctx) error {
	page, limit, from, to, err := parseListQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.ListStockOuts(c.Context(), page, limit, from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// parseListQuery extrae paginación y rango de fechas de la query string.
func parseListQuery(c *fiber.Ctx) (page, limit int, from, to *time.Time, err error) {
	page = c.QueryInt("page", 1)
	limit = c.QueryInt("limit", 50)
	from, err = parseDateQuery(c, "startDate")
	if err != nil {
		return 0, 0, nil, nil, err
	}
	to, err = parseDateQuery(c, "endDate")
	if err != nil {
		return 0, 0, nil, nil, err
	}
	return page, limit, from, to, nil
}

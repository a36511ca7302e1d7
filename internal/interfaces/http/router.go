package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger-api/internal/application/auth"
	"github.com/jhoicas/stock-ledger-api/internal/application/catalog"
	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/application/reports"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC  *ledger.UseCase
	CatalogUC *catalog.UseCase
	ReportsUC *reports.UseCase
	AuthUC    *auth.UseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido; borrado y rebuild solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC, deps.LedgerUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)
	products.Post("/:id/rebuild-stock", RequireRole(entity.RoleAdmin), productHandler.RebuildStock)

	// Movimientos de stock (protegido)
	stockHandler := NewStockHandler(deps.LedgerUC)
	protected.Post("/stock-in", stockHandler.CreateStockIn)
	protected.Get("/stock-in", stockHandler.ListStockIns)
	protected.Post("/stock-out", stockHandler.CreateStockOut)
	protected.Get("/stock-out", stockHandler.ListStockOuts)
	protected.Post("/stock-out/batch", stockHandler.CreateBatchStockOut)

	// Reportes (protegido, solo lectura)
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportsUC)
	reportsGroup.Get("/dashboard", reportHandler.Dashboard)
	reportsGroup.Get("/sales", reportHandler.Sales)
	reportsGroup.Get("/top-selling", reportHandler.TopSelling)
	reportsGroup.Get("/inventory", reportHandler.Inventory)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-analyzer-api/internal/application/analytics"
	"github.com/jhoicas/stock-analyzer-api/internal/application/budget"
	"github.com/jhoicas/stock-analyzer-api/internal/application/inventory"
	"github.com/jhoicas/stock-analyzer-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC   *usecase.CategoryUseCase
	SupplierUC   *usecase.SupplierUseCase
	ProductUC    *usecase.ProductUseCase
	PostMovement *inventory.PostMovementUseCase
	MovementQ    *inventory.QueryUseCase
	BudgetUC     *budget.UseCase
	BudgetPDFUC  *budget.PDFUseCase
	DashboardUC  *analytics.DashboardUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Categories
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Suppliers
	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Stock movements (libro append-only)
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.PostMovement, deps.MovementQ)
	movements.Post("/", movementHandler.Post)
	movements.Get("/", movementHandler.List)

	// Budget requests
	budgetHandler := NewBudgetHandler(deps.BudgetUC, deps.BudgetPDFUC)
	budgetRequests := api.Group("/budget-requests")
	budgetRequests.Post("/", budgetHandler.Create)
	budgetRequests.Get("/", budgetHandler.List)
	budgetRequests.Get("/:id", budgetHandler.GetByID)
	budgetRequests.Put("/:id/status", budgetHandler.UpdateStatus)
	budgetRequests.Get("/:id/pdf", budgetHandler.GetPDF)

	// Approvals
	approvals := api.Group("/approvals")
	approvalHandler := NewApprovalHandler(deps.BudgetUC)
	approvals.Post("/", approvalHandler.Create)
	approvals.Get("/", approvalHandler.List)

	// Account codes (catálogo de rubros)
	api.Get("/account-codes", budgetHandler.ListAccountCodes)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/stats", dashboardHandler.GetStats)
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/stock-analyzer-api/internal/application/analytics"
	"github.com/jhoicas/stock-analyzer-api/internal/application/budget"
	"github.com/jhoicas/stock-analyzer-api/internal/application/inventory"
	"github.com/jhoicas/stock-analyzer-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/stock-analyzer-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-analyzer-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stock-analyzer-api/internal/interfaces/http"
	"github.com/jhoicas/stock-analyzer-api/pkg/config"
	"github.com/jhoicas/stock-analyzer-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repos atados al pool (lecturas y CRUD fuera de transacción).
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	accountCodeRepo := postgres.NewAccountCodeRepository(pool)
	requestRepo := postgres.NewBudgetRequestRepository(pool)
	approvalRepo := postgres.NewApprovalRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Casos de uso.
	postMovementUC := inventory.NewPostMovementUseCase(txRunner)
	movementQueryUC := inventory.NewQueryUseCase(movementRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, postMovementUC)
	budgetUC := budget.NewUseCase(txRunner, requestRepo, approvalRepo, accountCodeRepo)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	budgetPDFUC := budget.NewPDFUseCase(requestRepo, approvalRepo, pdfGenerator)
	dashboardUC := analytics.NewDashboardUseCase(statsRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Analyzer API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC:   categoryUC,
		SupplierUC:   supplierUC,
		ProductUC:    productUC,
		PostMovement: postMovementUC,
		MovementQ:    movementQueryUC,
		BudgetUC:     budgetUC,
		BudgetPDFUC:  budgetPDFUC,
		DashboardUC:  dashboardUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

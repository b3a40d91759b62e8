package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-analyzer-api/internal/application/analytics"
	"github.com/jhoicas/stock-analyzer-api/internal/application/dto"
)

// DashboardHandler maneja las peticiones HTTP del dashboard.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats godoc
// @Summary      Resumen del inventario
// @Description  Agregados (total de productos, valor, bajos de stock,
// @Description  agotados, movimientos recientes) más la lista de productos
// @Description  en o bajo su stock mínimo.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	out, err := h.uc.GetStats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-analyzer-api/internal/application/dto"
	"github.com/jhoicas/stock-analyzer-api/internal/application/inventory"
	"github.com/jhoicas/stock-analyzer-api/internal/domain"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/entity"
)

// MovementHandler maneja las peticiones HTTP del libro de movimientos.
type MovementHandler struct {
	poster *inventory.PostMovementUseCase
	query  *inventory.QueryUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(poster *inventory.PostMovementUseCase, query *inventory.QueryUseCase) *MovementHandler {
	return &MovementHandler{poster: poster, query: query}
}

// Post godoc
// @Summary      Registrar movimiento de stock
// @Description  Asiento transaccional: bloquea el producto, inserta el
// @Description  movimiento y ajusta el saldo. Una salida mayor al saldo
// @Description  disponible se rechaza con 409 sin efecto alguno.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PostMovementRequest  true  "product_id, type (in|out), quantity, reason"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Post(c *fiber.Ctx) error {
	var in dto.PostMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.poster.PostMovement(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id, type (in|out), quantity > 0 y reason son requeridos"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movements
// @Produce      json
// @Param        limit       query  int     false  "Límite"   default(20)
// @Param        offset      query  int     false  "Offset"   default(0)
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	productID := c.Query("product_id")

	var (
		movs []*entity.Movement
		err  error
	)
	if productID != "" {
		movs, err = h.query.ListByProduct(productID, limit, offset)
	} else {
		movs, err = h.query.List(limit, offset)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	items := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		items = append(items, *toMovementResponse(m))
	}
	return c.JSON(dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	})
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		ProductSKU:  m.ProductSKU,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Reason:      m.Reason,
		Reference:   m.Reference,
		Notes:       m.Notes,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}

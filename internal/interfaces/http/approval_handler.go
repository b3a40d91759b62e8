package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-analyzer-api/internal/application/budget"
	"github.com/jhoicas/stock-analyzer-api/internal/application/dto"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/entity"
)

// ApprovalHandler maneja las peticiones HTTP de decisiones sobre solicitudes.
type ApprovalHandler struct {
	uc *budget.UseCase
}

// NewApprovalHandler construye el handler.
func NewApprovalHandler(uc *budget.UseCase) *ApprovalHandler {
	return &ApprovalHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar decisión sobre una solicitud
// @Description  Equivalente a PUT /api/budget-requests/{id}/status: misma
// @Description  transición transaccional de la máquina de estados.
// @Tags         approvals
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateApprovalRequest  true  "request_id, decision, approver_name, remark"
// @Success      201   {object}  dto.ApprovalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/approvals [post]
func (h *ApprovalHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateApprovalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	_, approval, err := h.uc.Decide(c.Context(), in.RequestID, in.Decision, in.ApproverName, in.Remark)
	if err != nil {
		return decideError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toApprovalResponse(approval))
}

// List godoc
// @Summary      Listar decisiones
// @Tags         approvals
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {object}  dto.ApprovalListResponse
// @Router       /api/approvals [get]
func (h *ApprovalHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	approvals, err := h.uc.ListApprovals(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	items := make([]dto.ApprovalResponse, 0, len(approvals))
	for _, a := range approvals {
		items = append(items, *toApprovalResponse(a))
	}
	return c.JSON(dto.ApprovalListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	})
}

func toApprovalResponse(a *entity.Approval) *dto.ApprovalResponse {
	return &dto.ApprovalResponse{
		ID:           a.ID,
		RequestID:    a.RequestID,
		RequestNo:    a.RequestNo,
		Decision:     a.Decision,
		Remark:       a.Remark,
		ApproverName: a.ApproverName,
		CreatedAt:    a.CreatedAt,
	}
}

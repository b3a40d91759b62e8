package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-analyzer-api/internal/application/budget"
	"github.com/jhoicas/stock-analyzer-api/internal/application/dto"
	"github.com/jhoicas/stock-analyzer-api/internal/domain"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/entity"
)

// BudgetHandler maneja las peticiones HTTP del flujo de solicitudes de
// presupuesto.
type BudgetHandler struct {
	uc    *budget.UseCase
	pdfUC *budget.PDFUseCase
}

// NewBudgetHandler construye el handler.
func NewBudgetHandler(uc *budget.UseCase, pdfUC *budget.PDFUseCase) *BudgetHandler {
	return &BudgetHandler{uc: uc, pdfUC: pdfUC}
}

// Create godoc
// @Summary      Crear solicitud de presupuesto
// @Description  El número BR-<año>-<seq> lo asigna el servidor de forma
// @Description  atómica; la solicitud nace en estado PENDING.
// @Tags         budget-requests
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBudgetRequestRequest  true  "requester, account_code, amount, material_list"
// @Success      201   {object}  dto.BudgetRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/budget-requests [post]
func (h *BudgetHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBudgetRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, err := h.uc.CreateRequest(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "requester, account_code y amount > 0 son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toBudgetRequestResponse(req))
}

// GetByID godoc
// @Summary      Obtener solicitud por ID
// @Tags         budget-requests
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.BudgetRequestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/budget-requests/{id} [get]
func (h *BudgetHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	req, err := h.uc.GetRequest(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if req == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "solicitud no encontrada"})
	}
	return c.JSON(toBudgetRequestResponse(req))
}

// List godoc
// @Summary      Listar solicitudes de presupuesto
// @Tags         budget-requests
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {object}  dto.BudgetRequestListResponse
// @Router       /api/budget-requests [get]
func (h *BudgetHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	reqs, err := h.uc.ListRequests(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	items := make([]dto.BudgetRequestResponse, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, *toBudgetRequestResponse(r))
	}
	return c.JSON(dto.BudgetRequestListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	})
}

// UpdateStatus godoc
// @Summary      Decidir una solicitud (aprobar o rechazar)
// @Description  Única transición permitida: PENDING → APPROVED | REJECTED.
// @Description  Crea el registro de Approval y cambia el estado en una sola
// @Description  transacción; una solicitud ya decidida devuelve 409.
// @Tags         budget-requests
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la solicitud"
// @Param        body  body  dto.UpdateBudgetStatusRequest  true  "status, approver_name, remark"
// @Success      200   {object}  dto.BudgetRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/budget-requests/{id}/status [put]
func (h *BudgetHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateBudgetStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, _, err := h.uc.Decide(c.Context(), id, in.Status, in.ApproverName, in.Remark)
	if err != nil {
		return decideError(c, err)
	}
	return c.JSON(toBudgetRequestResponse(req))
}

// GetPDF godoc
// @Summary      PDF de la solicitud
// @Tags         budget-requests
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/budget-requests/{id}/pdf [get]
func (h *BudgetHandler) GetPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	pdfBytes, err := h.pdfUC.GetRequestPDF(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "solicitud no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="solicitud-%s.pdf"`, id))
	return c.Send(pdfBytes)
}

// ListAccountCodes godoc
// @Summary      Listar rubros presupuestales
// @Tags         account-codes
// @Produce      json
// @Success      200  {array}  dto.AccountCodeResponse
// @Router       /api/account-codes [get]
func (h *BudgetHandler) ListAccountCodes(c *fiber.Ctx) error {
	codes, err := h.uc.ListAccountCodes()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	items := make([]dto.AccountCodeResponse, 0, len(codes))
	for _, ac := range codes {
		items = append(items, dto.AccountCodeResponse{ID: ac.ID, Code: ac.Code, Name: ac.Name})
	}
	return c.JSON(items)
}

// decideError mapea los errores de la máquina de estados a HTTP.
func decideError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status (APPROVED|REJECTED) y approver_name son requeridos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "solicitud no encontrada"})
	case errors.Is(err, domain.ErrAlreadyDecided):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_DECIDED", Message: "la solicitud ya fue decidida"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func toBudgetRequestResponse(r *entity.BudgetRequest) *dto.BudgetRequestResponse {
	return &dto.BudgetRequestResponse{
		ID:           r.ID,
		RequestNo:    r.RequestNo,
		Requester:    r.Requester,
		RequestDate:  r.RequestDate,
		AccountCode:  r.AccountCode,
		AccountName:  r.AccountName,
		Amount:       r.Amount,
		Note:         r.Note,
		MaterialList: r.MaterialList,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
	}
}

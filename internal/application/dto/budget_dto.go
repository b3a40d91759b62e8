package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/entity"
)

// CreateBudgetRequestRequest entrada para crear una solicitud de presupuesto.
// El número de solicitud lo asigna el servidor; no se acepta del cliente.
type CreateBudgetRequestRequest struct {
	Requester    string                `json:"requester" validate:"required"`
	RequestDate  *time.Time            `json:"request_date,omitempty"`
	AccountCode  string                `json:"account_code" validate:"required"`
	AccountName  string                `json:"account_name"`
	Amount       decimal.Decimal       `json:"amount"`
	Note         string                `json:"note,omitempty"`
	MaterialList []entity.MaterialItem `json:"material_list"`
}

// UpdateBudgetStatusRequest body para PUT /api/budget-requests/:id/status.
// La transición exige identidad del aprobador (crea el registro de Approval).
type UpdateBudgetStatusRequest struct {
	Status       string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
	ApproverName string `json:"approver_name" validate:"required"`
	Remark       string `json:"remark,omitempty"`
}

// CreateApprovalRequest body para POST /api/approvals.
type CreateApprovalRequest struct {
	RequestID    string `json:"request_id" validate:"required"`
	Decision     string `json:"decision" validate:"required,oneof=APPROVED REJECTED"`
	Remark       string `json:"remark,omitempty"`
	ApproverName string `json:"approver_name" validate:"required"`
}

// BudgetRequestResponse salida de una solicitud de presupuesto.
type BudgetRequestResponse struct {
	ID           string                `json:"id"`
	RequestNo    string                `json:"request_no"`
	Requester    string                `json:"requester"`
	RequestDate  time.Time             `json:"request_date"`
	AccountCode  string                `json:"account_code"`
	AccountName  string                `json:"account_name"`
	Amount       decimal.Decimal       `json:"amount"`
	Note         string                `json:"note,omitempty"`
	MaterialList []entity.MaterialItem `json:"material_list"`
	Status       string                `json:"status"`
	CreatedAt    time.Time             `json:"created_at"`
}

// ApprovalResponse salida de una decisión.
type ApprovalResponse struct {
	ID           string    `json:"id"`
	RequestID    string    `json:"request_id"`
	RequestNo    string    `json:"request_no,omitempty"`
	Decision     string    `json:"decision"`
	Remark       string    `json:"remark,omitempty"`
	ApproverName string    `json:"approver_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// AccountCodeResponse salida de un rubro presupuestal.
type AccountCodeResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// BudgetRequestListResponse lista paginada de solicitudes.
type BudgetRequestListResponse struct {
	Items []BudgetRequestResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// ApprovalListResponse lista paginada de decisiones.
type ApprovalListResponse struct {
	Items []ApprovalResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

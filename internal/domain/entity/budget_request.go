package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una solicitud de presupuesto.
// PENDING es el estado inicial; APPROVED y REJECTED son terminales: no existe
// transición de vuelta ni entre ellos.
const (
	BudgetStatusPending  = "PENDING"
	BudgetStatusApproved = "APPROVED"
	BudgetStatusRejected = "REJECTED"
)

// MaterialItem es una línea de la lista de materiales solicitados.
type MaterialItem struct {
	Item     string `json:"item"`
	Quantity string `json:"quantity"`
}

// BudgetRequest representa una solicitud de fondos que requiere aprobación
// antes de la compra de materiales.
type BudgetRequest struct {
	ID           string
	RequestNo    string // formato BR-<año>-<secuencia>, la secuencia reinicia cada año
	Requester    string
	RequestDate  time.Time
	AccountCode  string
	AccountName  string
	Amount       decimal.Decimal
	Note         string
	MaterialList []MaterialItem
	Status       string
	CreatedAt    time.Time
}

// IsPending indica si la solicitud aún admite una decisión.
func (r *BudgetRequest) IsPending() bool {
	return r.Status == BudgetStatusPending
}

// CanTransitionTo valida la máquina de estados: solo PENDING → APPROVED o
// PENDING → REJECTED. Cualquier otra transición se rechaza.
func (r *BudgetRequest) CanTransitionTo(status string) bool {
	if !r.IsPending() {
		return false
	}
	return status == BudgetStatusApproved || status == BudgetStatusRejected
}

// FormatRequestNo construye el número legible BR-<año>-<secuencia> con la
// secuencia en tres dígitos (BR-2025-007).
func FormatRequestNo(year int, seq int64) string {
	return fmt.Sprintf("BR-%d-%03d", year, seq)
}

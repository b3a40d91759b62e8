package entity

import "time"

// Decisiones posibles sobre una solicitud de presupuesto.
const (
	DecisionApproved = "APPROVED"
	DecisionRejected = "REJECTED"
)

// Approval es el registro inmutable de la decisión sobre una solicitud.
// Se crea exactamente una vez, en el momento en que la solicitud sale de
// PENDING; nunca se sobrescribe.
type Approval struct {
	ID           string
	RequestID    string
	Decision     string // APPROVED, REJECTED
	Remark       string
	ApproverName string
	CreatedAt    time.Time

	// Campo de solo lectura cargado por JOIN en los listados.
	RequestNo string
}

package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIn  = "in"  // entrada
	MovementTypeOut = "out" // salida
)

// Movement representa un asiento del libro de movimientos de stock.
// El libro es append-only: una vez creado, el movimiento nunca se modifica ni
// se elimina.
type Movement struct {
	ID        string
	ProductID string
	Type      string // in, out
	Quantity  int64  // siempre positivo; el signo lo da Type
	Reason    string
	Reference string
	Notes     string
	CreatedBy string
	CreatedAt time.Time

	// Campos de solo lectura cargados por JOIN en los listados.
	ProductName string
	ProductSKU  string
}

// Delta devuelve el efecto del movimiento sobre el saldo del producto.
func (m *Movement) Delta() int64 {
	if m.Type == MovementTypeOut {
		return -m.Quantity
	}
	return m.Quantity
}

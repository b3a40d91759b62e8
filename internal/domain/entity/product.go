package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario.
// CurrentStock es el saldo denormalizado: debe coincidir con la suma neta de
// movimientos del producto y solo se modifica vía el registro de movimientos
// (una transacción que bloquea la fila del producto).
type Product struct {
	ID           string
	SKU          string // único
	Name         string
	Description  string
	CategoryID   string
	SupplierID   string
	UnitPrice    decimal.Decimal
	CurrentStock int64
	MinStock     int64
	MaxStock     *int64
	Unit         string
	Location     string
	Barcode      string
	ExpiryDate   *time.Time // obligatorio si la categoría es medicamento
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Campos de solo lectura cargados por JOIN en los listados.
	CategoryName string
	SupplierName string
}

package dto

import "time"

// PostMovementRequest body para POST /api/movements.
type PostMovementRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=in out"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
	Reason    string `json:"reason" validate:"required"`
	Reference string `json:"reference,omitempty"`
	Notes     string `json:"notes,omitempty"`
	CreatedBy string `json:"created_by,omitempty"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	ProductSKU  string    `json:"sku,omitempty"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"`
	Reason      string    `json:"reason"`
	Reference   string    `json:"reference,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

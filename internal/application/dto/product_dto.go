package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// CurrentStock solo se acepta como saldo inicial de apertura; después de la
// creación el saldo cambia únicamente vía movimientos.
type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	SKU          string          `json:"sku" validate:"required,min=1,max=100"`
	Description  string          `json:"description"`
	CategoryID   string          `json:"category_id"`
	SupplierID   string          `json:"supplier_id"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CurrentStock int64           `json:"current_stock"`
	MinStock     int64           `json:"min_stock"`
	MaxStock     *int64          `json:"max_stock,omitempty"`
	Unit         string          `json:"unit"`
	Location     string          `json:"location"`
	Barcode      string          `json:"barcode"`
	ExpiryDate   *time.Time      `json:"expiry_date,omitempty"`
}

// UpdateProductRequest entrada para actualizar un producto (parcial, sin
// current_stock: el saldo se maneja vía movimientos).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	SKU         *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	Description *string          `json:"description"`
	CategoryID  *string          `json:"category_id"`
	SupplierID  *string          `json:"supplier_id"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	MinStock    *int64           `json:"min_stock"`
	MaxStock    *int64           `json:"max_stock"`
	Unit        *string          `json:"unit"`
	Location    *string          `json:"location"`
	Barcode     *string          `json:"barcode"`
	ExpiryDate  *time.Time       `json:"expiry_date"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	CategoryID   string          `json:"category_id,omitempty"`
	SupplierID   string          `json:"supplier_id,omitempty"`
	CategoryName string          `json:"category_name,omitempty"`
	SupplierName string          `json:"supplier_name,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CurrentStock int64           `json:"current_stock"`
	MinStock     int64           `json:"min_stock"`
	MaxStock     *int64          `json:"max_stock,omitempty"`
	Unit         string          `json:"unit"`
	Location     string          `json:"location"`
	Barcode      string          `json:"barcode"`
	ExpiryDate   *time.Time      `json:"expiry_date,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description"`
	IsMedicine  bool   `json:"is_medicine"`
}

// UpdateCategoryRequest entrada para actualizar una categoría (parcial).
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	IsMedicine  *bool   `json:"is_medicine"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsMedicine  bool      `json:"is_medicine"`
	CreatedAt   time.Time `json:"created_at"`
}

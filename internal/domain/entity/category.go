package entity

import "time"

// Category representa una categoría de productos.
// IsMedicine obliga a que los productos de la categoría tengan fecha de vencimiento.
type Category struct {
	ID          string
	Name        string
	Description string
	IsMedicine  bool
	CreatedAt   time.Time
}

package entity

import "time"

// Produit representa una entrada del catálogo. EAN es nil cuando el producto no tiene código de barras.
type Produit struct {
	ID          string
	EAN         *string
	Name        string
	Brand       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

package entity

import "time"

// Article es una unidad de stock: una cantidad de un Produit en un Emplacement.
type Article struct {
	ID            string
	Code          string // único, siempre en mayúsculas
	ProduitID     string
	EmplacementID string
	Quantity      int
	ExpiresAt     *time.Time
	Comment       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

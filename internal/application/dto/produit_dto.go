package dto

import "time"

// CreateProduitRequest entrada para crear un producto del catálogo.
type CreateProduitRequest struct {
	EAN         *string `json:"ean"`
	Name        string  `json:"nom"`
	Brand       string  `json:"marque"`
	Description string  `json:"description"`
}

// UpdateProduitRequest entrada parcial: solo se aplican los campos presentes.
type UpdateProduitRequest struct {
	EAN         *string `json:"ean"`
	Name        *string `json:"nom"`
	Brand       *string `json:"marque"`
	Description *string `json:"description"`
}

// ProduitResponse salida de un producto.
type ProduitResponse struct {
	ID          string    `json:"id"`
	EAN         *string   `json:"ean"`
	Name        string    `json:"nom"`
	Brand       string    `json:"marque"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProduitListResponse lista paginada de productos.
type ProduitListResponse struct {
	Items []ProduitResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

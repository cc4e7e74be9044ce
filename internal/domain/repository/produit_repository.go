package repository

import (
	"context"

	"github.com/jhoicas/ddb-stock/internal/domain/entity"
)

// ProduitRepository define el puerto de persistencia para Produit (DIP).
// Los Get devuelven (nil, nil) cuando la fila no existe.
type ProduitRepository interface {
	Create(ctx context.Context, produit *entity.Produit) error
	GetByID(ctx context.Context, id string) (*entity.Produit, error)
	GetByEAN(ctx context.Context, ean string) (*entity.Produit, error)
	Update(ctx context.Context, produit *entity.Produit) error
	List(ctx context.Context, limit, offset int) ([]*entity.Produit, error)
	Delete(ctx context.Context, id string) error
}

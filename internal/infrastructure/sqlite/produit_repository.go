package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/ddb-stock/internal/domain/entity"
	"github.com/jhoicas/ddb-stock/internal/domain/repository"
)

var _ repository.ProduitRepository = (*ProduitRepo)(nil)

// ProduitRepo implementación del puerto ProduitRepository sobre SQLite (gorm).
type ProduitRepo struct {
	db *gorm.DB
}

// NewProduitRepository construye el adaptador.
func NewProduitRepository(db *gorm.DB) *ProduitRepo {
	return &ProduitRepo{db: db}
}

// Create persiste un nuevo producto.
func (r *ProduitRepo) Create(ctx context.Context, p *entity.Produit) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(newProduitModel(p)).Error; err != nil {
		return mapWriteError("insert produit", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProduitRepo) GetByID(ctx context.Context, id string) (*entity.Produit, error) {
	return r.getBy(ctx, "id = ?", id)
}

// GetByEAN obtiene un producto por EAN.
func (r *ProduitRepo) GetByEAN(ctx context.Context, ean string) (*entity.Produit, error) {
	return r.getBy(ctx, "ean = ?", ean)
}

func (r *ProduitRepo) getBy(ctx context.Context, where string, arg any) (*entity.Produit, error) {
	var m produitModel
	if err := r.db.WithContext(ctx).Where(where, arg).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produit: %w", err)
	}
	return m.toEntity(), nil
}

// Update actualiza un producto existente.
func (r *ProduitRepo) Update(ctx context.Context, p *entity.Produit) error {
	res := r.db.WithContext(ctx).Model(&produitModel{}).Where("id = ?", p.ID).Updates(map[string]any{
		"ean":         p.EAN,
		"nom":         p.Name,
		"marque":      p.Brand,
		"description": p.Description,
		"updated_at":  p.UpdatedAt.UTC(),
	})
	return affected(res, "update produit", mapWriteError)
}

// List lista productos en orden de inserción.
func (r *ProduitRepo) List(ctx context.Context, limit, offset int) ([]*entity.Produit, error) {
	var models []produitModel
	if err := r.db.WithContext(ctx).Order("id").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list produits: %w", err)
	}
	out := make([]*entity.Produit, 0, len(models))
	for i := range models {
		out = append(out, models[i].toEntity())
	}
	return out, nil
}

// Delete elimina un producto.
func (r *ProduitRepo) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&produitModel{}), "delete produit", mapDeleteError)
}

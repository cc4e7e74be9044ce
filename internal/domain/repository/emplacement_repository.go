package repository

import (
	"context"

	"github.com/jhoicas/ddb-stock/internal/domain/entity"
)

// EmplacementRepository define el puerto de persistencia para Emplacement (DIP).
// Los listados respetan el orden de inserción.
type EmplacementRepository interface {
	Create(ctx context.Context, emplacement *entity.Emplacement) error
	GetByID(ctx context.Context, id string) (*entity.Emplacement, error)
	GetByCode(ctx context.Context, code string) (*entity.Emplacement, error)
	Update(ctx context.Context, emplacement *entity.Emplacement) error
	List(ctx context.Context, limit, offset int) ([]*entity.Emplacement, error)
	ListByLevel(ctx context.Context, level int) ([]*entity.Emplacement, error)
	ListChildren(ctx context.Context, parentID string) ([]*entity.Emplacement, error)
	CountChildren(ctx context.Context, parentID string) (int, error)
	Delete(ctx context.Context, id string) error
}

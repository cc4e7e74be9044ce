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

var _ repository.EmplacementRepository = (*EmplacementRepo)(nil)

// EmplacementRepo implementación del puerto EmplacementRepository sobre SQLite (gorm).
type EmplacementRepo struct {
	db *gorm.DB
}

// NewEmplacementRepository construye el adaptador (db o tx).
func NewEmplacementRepository(db *gorm.DB) *EmplacementRepo {
	return &EmplacementRepo{db: db}
}

// Create persiste un nuevo emplacement.
func (r *EmplacementRepo) Create(ctx context.Context, e *entity.Emplacement) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(newEmplacementModel(e)).Error; err != nil {
		return mapWriteError("insert emplacement", err)
	}
	return nil
}

// GetByID obtiene un emplacement por ID.
func (r *EmplacementRepo) GetByID(ctx context.Context, id string) (*entity.Emplacement, error) {
	return r.getBy(ctx, "id = ?", id)
}

// GetByCode obtiene un emplacement por código (ya normalizado).
func (r *EmplacementRepo) GetByCode(ctx context.Context, code string) (*entity.Emplacement, error) {
	return r.getBy(ctx, "code_emplacement = ?", code)
}

func (r *EmplacementRepo) getBy(ctx context.Context, where string, arg any) (*entity.Emplacement, error) {
	var m emplacementModel
	if err := r.db.WithContext(ctx).Where(where, arg).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get emplacement: %w", err)
	}
	return m.toEntity(), nil
}

// Update actualiza un emplacement existente (incluido padre y nivel).
func (r *EmplacementRepo) Update(ctx context.Context, e *entity.Emplacement) error {
	res := r.db.WithContext(ctx).Model(&emplacementModel{}).Where("id = ?", e.ID).Updates(map[string]any{
		"code_emplacement": e.Code,
		"nom":              e.Name,
		"parent_id":        e.ParentID,
		"niveau":           e.Level,
		"description":      e.Description,
		"updated_at":       e.UpdatedAt.UTC(),
	})
	return affected(res, "update emplacement", mapWriteError)
}

// List lista emplacements en orden de inserción.
func (r *EmplacementRepo) List(ctx context.Context, limit, offset int) ([]*entity.Emplacement, error) {
	return r.find(r.db.WithContext(ctx).Limit(limit).Offset(offset), "list emplacements")
}

// ListByLevel lista los emplacements de un nivel.
func (r *EmplacementRepo) ListByLevel(ctx context.Context, level int) ([]*entity.Emplacement, error) {
	return r.find(r.db.WithContext(ctx).Where("niveau = ?", level), "list emplacements by level")
}

// ListChildren lista los hijos directos de un emplacement.
func (r *EmplacementRepo) ListChildren(ctx context.Context, parentID string) ([]*entity.Emplacement, error) {
	return r.find(r.db.WithContext(ctx).Where("parent_id = ?", parentID), "list children")
}

// CountChildren cuenta los hijos directos.
func (r *EmplacementRepo) CountChildren(ctx context.Context, parentID string) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&emplacementModel{}).Where("parent_id = ?", parentID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count children: %w", err)
	}
	return int(n), nil
}

// Delete elimina un emplacement.
func (r *EmplacementRepo) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&emplacementModel{}), "delete emplacement", mapDeleteError)
}

func (r *EmplacementRepo) find(q *gorm.DB, op string) ([]*entity.Emplacement, error) {
	var models []emplacementModel
	if err := q.Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make([]*entity.Emplacement, 0, len(models))
	for i := range models {
		out = append(out, models[i].toEntity())
	}
	return out, nil
}

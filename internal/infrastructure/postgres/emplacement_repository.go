package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/jhoicas/ddb-stock/internal/domain/entity"
	"github.com/jhoicas/ddb-stock/internal/domain/repository"
)

var _ repository.EmplacementRepository = (*EmplacementRepo)(nil)

var emplacementColumns = []string{"id", "code_emplacement", "nom", "parent_id", "niveau", "description", "created_at", "updated_at"}

type emplacementRow struct {
	ID          string    `db:"id"`
	Code        string    `db:"code_emplacement"`
	Nom         string    `db:"nom"`
	ParentID    *string   `db:"parent_id"`
	Niveau      int       `db:"niveau"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r emplacementRow) toEntity() *entity.Emplacement {
	return &entity.Emplacement{
		ID:          r.ID,
		Code:        r.Code,
		Name:        r.Nom,
		ParentID:    r.ParentID,
		Level:       r.Niveau,
		Description: r.Description,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

func toEmplacements(rows []emplacementRow) []*entity.Emplacement {
	out := make([]*entity.Emplacement, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out
}

// EmplacementRepo implementación del puerto EmplacementRepository sobre PostgreSQL.
type EmplacementRepo struct {
	q Querier
}

// NewEmplacementRepository construye el adaptador (pool o tx).
func NewEmplacementRepository(q Querier) *EmplacementRepo {
	return &EmplacementRepo{q: q}
}

// Create persiste un nuevo emplacement.
func (r *EmplacementRepo) Create(ctx context.Context, e *entity.Emplacement) error {
	b := psql.Insert(emplacementsTable).
		Columns(emplacementColumns...).
		Values(e.ID, e.Code, e.Name, e.ParentID, e.Level, e.Description, e.CreatedAt, e.UpdatedAt)
	return exec(ctx, r.q, b, "insert emplacement", mapWriteError)
}

// GetByID obtiene un emplacement por ID.
func (r *EmplacementRepo) GetByID(ctx context.Context, id string) (*entity.Emplacement, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

// GetByCode obtiene un emplacement por código (ya normalizado).
func (r *EmplacementRepo) GetByCode(ctx context.Context, code string) (*entity.Emplacement, error) {
	return r.getBy(ctx, squirrel.Eq{"code_emplacement": code})
}

func (r *EmplacementRepo) getBy(ctx context.Context, where squirrel.Eq) (*entity.Emplacement, error) {
	row, err := getOne[emplacementRow](ctx, r.q, r.selectBase().Where(where), "get emplacement")
	if err != nil || row == nil {
		return nil, err
	}
	return row.toEntity(), nil
}

// Update actualiza un emplacement existente (incluido padre y nivel).
func (r *EmplacementRepo) Update(ctx context.Context, e *entity.Emplacement) error {
	b := psql.Update(emplacementsTable).
		Set("code_emplacement", e.Code).
		Set("nom", e.Name).
		Set("parent_id", e.ParentID).
		Set("niveau", e.Level).
		Set("description", e.Description).
		Set("updated_at", e.UpdatedAt).
		Where(squirrel.Eq{"id": e.ID})
	return exec(ctx, r.q, b, "update emplacement", mapWriteError)
}

// List lista emplacements en orden de inserción.
func (r *EmplacementRepo) List(ctx context.Context, limit, offset int) ([]*entity.Emplacement, error) {
	b := r.selectBase().Limit(uint64(limit)).Offset(uint64(offset))
	rows, err := selectAll[emplacementRow](ctx, r.q, b, "list emplacements")
	if err != nil {
		return nil, err
	}
	return toEmplacements(rows), nil
}

// ListByLevel lista los emplacements de un nivel.
func (r *EmplacementRepo) ListByLevel(ctx context.Context, level int) ([]*entity.Emplacement, error) {
	rows, err := selectAll[emplacementRow](ctx, r.q, r.selectBase().Where(squirrel.Eq{"niveau": level}), "list emplacements by level")
	if err != nil {
		return nil, err
	}
	return toEmplacements(rows), nil
}

// ListChildren lista los hijos directos de un emplacement.
func (r *EmplacementRepo) ListChildren(ctx context.Context, parentID string) ([]*entity.Emplacement, error) {
	rows, err := selectAll[emplacementRow](ctx, r.q, r.selectBase().Where(squirrel.Eq{"parent_id": parentID}), "list children")
	if err != nil {
		return nil, err
	}
	return toEmplacements(rows), nil
}

// CountChildren cuenta los hijos directos.
func (r *EmplacementRepo) CountChildren(ctx context.Context, parentID string) (int, error) {
	b := psql.Select("COUNT(*)").From(emplacementsTable).Where(squirrel.Eq{"parent_id": parentID})
	return count(ctx, r.q, b, "count children")
}

// Delete elimina un emplacement; la FK impide borrar uno con hijos o artículos.
func (r *EmplacementRepo) Delete(ctx context.Context, id string) error {
	return exec(ctx, r.q, psql.Delete(emplacementsTable).Where(squirrel.Eq{"id": id}), "delete emplacement", mapDeleteError)
}

func (r *EmplacementRepo) selectBase() squirrel.SelectBuilder {
	return psql.Select(emplacementColumns...).From(emplacementsTable).OrderBy("id")
}

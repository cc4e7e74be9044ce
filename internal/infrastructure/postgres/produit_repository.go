package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/jhoicas/ddb-stock/internal/domain/entity"
	"github.com/jhoicas/ddb-stock/internal/domain/repository"
)

var _ repository.ProduitRepository = (*ProduitRepo)(nil)

var produitColumns = []string{"id", "ean", "nom", "marque", "description", "created_at", "updated_at"}

type produitRow struct {
	ID          string    `db:"id"`
	EAN         *string   `db:"ean"`
	Nom         string    `db:"nom"`
	Marque      string    `db:"marque"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r produitRow) toEntity() *entity.Produit {
	return &entity.Produit{
		ID:          r.ID,
		EAN:         r.EAN,
		Name:        r.Nom,
		Brand:       r.Marque,
		Description: r.Description,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

// ProduitRepo implementación del puerto ProduitRepository sobre PostgreSQL.
type ProduitRepo struct {
	q Querier
}

// NewProduitRepository construye el adaptador (pool o tx).
func NewProduitRepository(q Querier) *ProduitRepo {
	return &ProduitRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProduitRepo) Create(ctx context.Context, p *entity.Produit) error {
	b := psql.Insert(produitsTable).
		Columns(produitColumns...).
		Values(p.ID, p.EAN, p.Name, p.Brand, p.Description, p.CreatedAt, p.UpdatedAt)
	return exec(ctx, r.q, b, "insert produit", mapWriteError)
}

// GetByID obtiene un producto por ID.
func (r *ProduitRepo) GetByID(ctx context.Context, id string) (*entity.Produit, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

// GetByEAN obtiene un producto por EAN.
func (r *ProduitRepo) GetByEAN(ctx context.Context, ean string) (*entity.Produit, error) {
	return r.getBy(ctx, squirrel.Eq{"ean": ean})
}

func (r *ProduitRepo) getBy(ctx context.Context, where squirrel.Eq) (*entity.Produit, error) {
	row, err := getOne[produitRow](ctx, r.q, psql.Select(produitColumns...).From(produitsTable).Where(where), "get produit")
	if err != nil || row == nil {
		return nil, err
	}
	return row.toEntity(), nil
}

// Update actualiza un producto existente.
func (r *ProduitRepo) Update(ctx context.Context, p *entity.Produit) error {
	b := psql.Update(produitsTable).
		Set("ean", p.EAN).
		Set("nom", p.Name).
		Set("marque", p.Brand).
		Set("description", p.Description).
		Set("updated_at", p.UpdatedAt).
		Where(squirrel.Eq{"id": p.ID})
	return exec(ctx, r.q, b, "update produit", mapWriteError)
}

// List lista productos en orden de inserción.
func (r *ProduitRepo) List(ctx context.Context, limit, offset int) ([]*entity.Produit, error) {
	b := psql.Select(produitColumns...).From(produitsTable).
		OrderBy("id").
		Limit(uint64(limit)).Offset(uint64(offset))
	rows, err := selectAll[produitRow](ctx, r.q, b, "list produits")
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Produit, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

// Delete elimina un producto; falla con ErrInUse si aún tiene artículos.
func (r *ProduitRepo) Delete(ctx context.Context, id string) error {
	return exec(ctx, r.q, psql.Delete(produitsTable).Where(squirrel.Eq{"id": id}), "delete produit", mapDeleteError)
}

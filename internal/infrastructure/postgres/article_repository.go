package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/jhoicas/ddb-stock/internal/domain/entity"
	"github.com/jhoicas/ddb-stock/internal/domain/repository"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

var articleColumns = []string{
	"id", "code_article", "produit_id", "emplacement_id", "quantite",
	"date_peremption", "commentaire", "created_at", "updated_at",
}

type articleRow struct {
	ID             string     `db:"id"`
	Code           string     `db:"code_article"`
	ProduitID      string     `db:"produit_id"`
	EmplacementID  string     `db:"emplacement_id"`
	Quantite       int        `db:"quantite"`
	DatePeremption *time.Time `db:"date_peremption"`
	Commentaire    string     `db:"commentaire"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

func (r articleRow) toEntity() *entity.Article {
	a := &entity.Article{
		ID:            r.ID,
		Code:          r.Code,
		ProduitID:     r.ProduitID,
		EmplacementID: r.EmplacementID,
		Quantity:      r.Quantite,
		Comment:       r.Commentaire,
		CreatedAt:     r.CreatedAt.UTC(),
		UpdatedAt:     r.UpdatedAt.UTC(),
	}
	if r.DatePeremption != nil {
		t := r.DatePeremption.UTC()
		a.ExpiresAt = &t
	}
	return a
}

func toArticles(rows []articleRow) []*entity.Article {
	out := make([]*entity.Article, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out
}

// ArticleRepo implementación del puerto ArticleRepository sobre PostgreSQL.
type ArticleRepo struct {
	q Querier
}

// NewArticleRepository construye el adaptador (pool o tx).
func NewArticleRepository(q Querier) *ArticleRepo {
	return &ArticleRepo{q: q}
}

// Create persiste un nuevo artículo.
func (r *ArticleRepo) Create(ctx context.Context, a *entity.Article) error {
	b := psql.Insert(articlesTable).
		Columns(articleColumns...).
		Values(a.ID, a.Code, a.ProduitID, a.EmplacementID, a.Quantity, a.ExpiresAt, a.Comment, a.CreatedAt, a.UpdatedAt)
	return exec(ctx, r.q, b, "insert article", mapWriteError)
}

// GetByID obtiene un artículo por ID.
func (r *ArticleRepo) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

// GetByCode obtiene un artículo por código (ya normalizado).
func (r *ArticleRepo) GetByCode(ctx context.Context, code string) (*entity.Article, error) {
	return r.getBy(ctx, squirrel.Eq{"code_article": code})
}

func (r *ArticleRepo) getBy(ctx context.Context, where squirrel.Eq) (*entity.Article, error) {
	row, err := getOne[articleRow](ctx, r.q, selectArticles().Where(where), "get article")
	if err != nil || row == nil {
		return nil, err
	}
	return row.toEntity(), nil
}

// Update actualiza un artículo existente.
func (r *ArticleRepo) Update(ctx context.Context, a *entity.Article) error {
	b := psql.Update(articlesTable).
		Set("code_article", a.Code).
		Set("produit_id", a.ProduitID).
		Set("emplacement_id", a.EmplacementID).
		Set("quantite", a.Quantity).
		Set("date_peremption", a.ExpiresAt).
		Set("commentaire", a.Comment).
		Set("updated_at", a.UpdatedAt).
		Where(squirrel.Eq{"id": a.ID})
	return exec(ctx, r.q, b, "update article", mapWriteError)
}

// List lista artículos con filtros conjuntivos.
func (r *ArticleRepo) List(ctx context.Context, filter repository.ArticleFilter, limit, offset int) ([]*entity.Article, error) {
	rows, err := selectAll[articleRow](ctx, r.q, listArticlesQuery(filter, limit, offset), "list articles")
	if err != nil {
		return nil, err
	}
	return toArticles(rows), nil
}

// ListExpiringBefore artículos con fecha de caducidad <= until, ordenados por fecha.
func (r *ArticleRepo) ListExpiringBefore(ctx context.Context, until time.Time) ([]*entity.Article, error) {
	rows, err := selectAll[articleRow](ctx, r.q, expiringArticlesQuery(until), "list expiring articles")
	if err != nil {
		return nil, err
	}
	return toArticles(rows), nil
}

// CountByProduit cuenta los artículos de un producto.
func (r *ArticleRepo) CountByProduit(ctx context.Context, produitID string) (int, error) {
	b := psql.Select("COUNT(*)").From(articlesTable).Where(squirrel.Eq{"produit_id": produitID})
	return count(ctx, r.q, b, "count articles by produit")
}

// CountByEmplacement cuenta los artículos de un emplacement.
func (r *ArticleRepo) CountByEmplacement(ctx context.Context, emplacementID string) (int, error) {
	b := psql.Select("COUNT(*)").From(articlesTable).Where(squirrel.Eq{"emplacement_id": emplacementID})
	return count(ctx, r.q, b, "count articles by emplacement")
}

// Delete elimina un artículo.
func (r *ArticleRepo) Delete(ctx context.Context, id string) error {
	return exec(ctx, r.q, psql.Delete(articlesTable).Where(squirrel.Eq{"id": id}), "delete article", mapDeleteError)
}

func selectArticles() squirrel.SelectBuilder {
	return psql.Select(articleColumns...).From(articlesTable)
}

func listArticlesQuery(filter repository.ArticleFilter, limit, offset int) squirrel.SelectBuilder {
	b := selectArticles()
	if filter.ProduitID != "" {
		b = b.Where(squirrel.Eq{"produit_id": filter.ProduitID})
	}
	if filter.EmplacementID != "" {
		b = b.Where(squirrel.Eq{"emplacement_id": filter.EmplacementID})
	}
	return b.OrderBy("id").Limit(uint64(limit)).Offset(uint64(offset))
}

func expiringArticlesQuery(until time.Time) squirrel.SelectBuilder {
	return selectArticles().
		Where(squirrel.NotEq{"date_peremption": nil}).
		Where(squirrel.LtOrEq{"date_peremption": until}).
		OrderBy("date_peremption", "id")
}

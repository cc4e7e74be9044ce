package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/ddb-stock/internal/domain/entity"
	"github.com/jhoicas/ddb-stock/internal/domain/repository"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

// ArticleRepo implementación del puerto ArticleRepository sobre SQLite (gorm).
type ArticleRepo struct {
	db *gorm.DB
}

// NewArticleRepository construye el adaptador.
func NewArticleRepository(db *gorm.DB) *ArticleRepo {
	return &ArticleRepo{db: db}
}

// Create persiste un nuevo artículo.
func (r *ArticleRepo) Create(ctx context.Context, a *entity.Article) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(newArticleModel(a)).Error; err != nil {
		return mapWriteError("insert article", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *ArticleRepo) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	return r.getBy(ctx, "id = ?", id)
}

// GetByCode obtiene un artículo por código (ya normalizado).
func (r *ArticleRepo) GetByCode(ctx context.Context, code string) (*entity.Article, error) {
	return r.getBy(ctx, "code_article = ?", code)
}

func (r *ArticleRepo) getBy(ctx context.Context, where string, arg any) (*entity.Article, error) {
	var m articleModel
	if err := r.db.WithContext(ctx).Where(where, arg).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	return m.toEntity(), nil
}

// Update actualiza un artículo existente.
func (r *ArticleRepo) Update(ctx context.Context, a *entity.Article) error {
	res := r.db.WithContext(ctx).Model(&articleModel{}).Where("id = ?", a.ID).Updates(map[string]any{
		"code_article":    a.Code,
		"produit_id":      a.ProduitID,
		"emplacement_id":  a.EmplacementID,
		"quantite":        a.Quantity,
		"date_peremption": utcPtr(a.ExpiresAt),
		"commentaire":     a.Comment,
		"updated_at":      a.UpdatedAt.UTC(),
	})
	return affected(res, "update article", mapWriteError)
}

// List lista artículos con filtros conjuntivos.
func (r *ArticleRepo) List(ctx context.Context, filter repository.ArticleFilter, limit, offset int) ([]*entity.Article, error) {
	q := r.db.WithContext(ctx)
	if filter.ProduitID != "" {
		q = q.Where("produit_id = ?", filter.ProduitID)
	}
	if filter.EmplacementID != "" {
		q = q.Where("emplacement_id = ?", filter.EmplacementID)
	}
	return find(q.Order("id").Limit(limit).Offset(offset), "list articles")
}

// ListExpiringBefore artículos con fecha de caducidad <= until, ordenados por fecha.
func (r *ArticleRepo) ListExpiringBefore(ctx context.Context, until time.Time) ([]*entity.Article, error) {
	q := r.db.WithContext(ctx).
		Where("date_peremption IS NOT NULL").
		Where("date_peremption <= ?", until.UTC()).
		Order("date_peremption").Order("id")
	return find(q, "list expiring articles")
}

// CountByProduit cuenta los artículos de un producto.
func (r *ArticleRepo) CountByProduit(ctx context.Context, produitID string) (int, error) {
	return r.count(ctx, "produit_id = ?", produitID)
}

// CountByEmplacement cuenta los artículos de un emplacement.
func (r *ArticleRepo) CountByEmplacement(ctx context.Context, emplacementID string) (int, error) {
	return r.count(ctx, "emplacement_id = ?", emplacementID)
}

// Delete elimina un artículo.
func (r *ArticleRepo) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&articleModel{}), "delete article", mapDeleteError)
}

func (r *ArticleRepo) count(ctx context.Context, where string, arg any) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&articleModel{}).Where(where, arg).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return int(n), nil
}

func find(q *gorm.DB, op string) ([]*entity.Article, error) {
	var models []articleModel
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make([]*entity.Article, 0, len(models))
	for i := range models {
		out = append(out, models[i].toEntity())
	}
	return out, nil
}

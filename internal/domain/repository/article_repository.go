package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ddb-stock/internal/domain/entity"
)

// ArticleFilter filtros conjuntivos para listar artículos; vacío = sin filtro.
type ArticleFilter struct {
	ProduitID     string
	EmplacementID string
}

// ArticleRepository define el puerto de persistencia para Article (DIP).
type ArticleRepository interface {
	Create(ctx context.Context, article *entity.Article) error
	GetByID(ctx context.Context, id string) (*entity.Article, error)
	GetByCode(ctx context.Context, code string) (*entity.Article, error)
	Update(ctx context.Context, article *entity.Article) error
	List(ctx context.Context, filter ArticleFilter, limit, offset int) ([]*entity.Article, error)
	// ListExpiringBefore devuelve los artículos con fecha de caducidad no nula y <= until.
	ListExpiringBefore(ctx context.Context, until time.Time) ([]*entity.Article, error)
	CountByProduit(ctx context.Context, produitID string) (int, error)
	CountByEmplacement(ctx context.Context, emplacementID string) (int, error)
	Delete(ctx context.Context, id string) error
}

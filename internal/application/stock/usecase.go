package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ddb-stock/internal/application/dto"
	"github.com/jhoicas/ddb-stock/internal/domain"
	"github.com/jhoicas/ddb-stock/internal/domain/entity"
	"github.com/jhoicas/ddb-stock/internal/domain/inventory"
	"github.com/jhoicas/ddb-stock/internal/domain/repository"
)

// DefaultQuantity cantidad de un artículo creado sin cantidad explícita.
const DefaultQuantity = 1

// UseCase libro de stock: ciclo de vida de los artículos.
type UseCase struct {
	repo         repository.ArticleRepository
	produits     repository.ProduitRepository
	emplacements repository.EmplacementRepository
	now          func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	repo repository.ArticleRepository,
	produits repository.ProduitRepository,
	emplacements repository.EmplacementRepository,
) *UseCase {
	return &UseCase{
		repo:         repo,
		produits:     produits,
		emplacements: emplacements,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithClock reemplaza el reloj (tests de caducidad).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Create valida producto, emplacement y unicidad del código antes de escribir nada.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateArticleRequest) (*dto.ArticleResponse, error) {
	code := inventory.NormalizeCode(in.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: code_article es requerido", domain.ErrInvalidInput)
	}
	quantity := DefaultQuantity
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	if quantity < 0 {
		return nil, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
	}

	if err := uc.ensureProduit(ctx, in.ProduitID); err != nil {
		return nil, err
	}
	if err := uc.ensureEmplacement(ctx, in.EmplacementID); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: code article %s ya existe", domain.ErrDuplicate, code)
	}

	now := uc.now()
	article := &entity.Article{
		ID:            uuid.Must(uuid.NewV7()).String(),
		Code:          code,
		ProduitID:     in.ProduitID,
		EmplacementID: in.EmplacementID,
		Quantity:      quantity,
		ExpiresAt:     utc(in.ExpiresAt),
		Comment:       in.Comment,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, article); err != nil {
		return nil, err
	}
	return toArticleResponse(article), nil
}

// GetByID obtiene un artículo por ID.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ArticleResponse, error) {
	article, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toArticleResponse(article), nil
}

// GetByCode obtiene un artículo por código; la búsqueda no distingue mayúsculas.
func (uc *UseCase) GetByCode(ctx context.Context, code string) (*dto.ArticleResponse, error) {
	normalized := inventory.NormalizeCode(code)
	article, err := uc.repo.GetByCode(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, fmt.Errorf("%w: article %s", domain.ErrNotFound, normalized)
	}
	return toArticleResponse(article), nil
}

// Update aplica un parche parcial; producto y emplacement se revalidan solo si cambian.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateArticleRequest) (*dto.ArticleResponse, error) {
	article, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return nil, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
	}
	if in.ProduitID != nil && *in.ProduitID != article.ProduitID {
		if err := uc.ensureProduit(ctx, *in.ProduitID); err != nil {
			return nil, err
		}
		article.ProduitID = *in.ProduitID
	}
	if in.EmplacementID != nil && *in.EmplacementID != article.EmplacementID {
		if err := uc.ensureEmplacement(ctx, *in.EmplacementID); err != nil {
			return nil, err
		}
		article.EmplacementID = *in.EmplacementID
	}
	if in.Code != nil {
		code := inventory.NormalizeCode(*in.Code)
		if code == "" {
			return nil, fmt.Errorf("%w: code_article no puede estar vacío", domain.ErrInvalidInput)
		}
		existing, err := uc.repo.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != article.ID {
			return nil, fmt.Errorf("%w: code article %s ya existe", domain.ErrDuplicate, code)
		}
		article.Code = code
	}
	if in.Quantity != nil {
		article.Quantity = *in.Quantity
	}
	if in.ExpiresAt != nil {
		article.ExpiresAt = utc(in.ExpiresAt)
	}
	if in.Comment != nil {
		article.Comment = *in.Comment
	}
	article.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, article); err != nil {
		return nil, err
	}
	return toArticleResponse(article), nil
}

// SetQuantity sobrescribe la cantidad (valor absoluto, no incremento).
func (uc *UseCase) SetQuantity(ctx context.Context, id string, quantity int) (*dto.ArticleResponse, error) {
	article, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
	}
	article.Quantity = quantity
	article.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, article); err != nil {
		return nil, err
	}
	return toArticleResponse(article), nil
}

// RemoveOrDecrement consume unidades de un artículo.
// Sin amount, o con amount >= cantidad actual, el registro se elimina y su código queda libre.
// En otro caso amount debe ser > 0 y se descuenta de la cantidad.
func (uc *UseCase) RemoveOrDecrement(ctx context.Context, id string, amount *int) (*dto.RemovalOutcome, error) {
	article, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if amount == nil || *amount >= article.Quantity {
		if err := uc.repo.Delete(ctx, article.ID); err != nil {
			return nil, err
		}
		return &dto.RemovalOutcome{Removed: true, Remaining: 0}, nil
	}
	if *amount <= 0 {
		return nil, fmt.Errorf("%w: la cantidad a retirar debe ser positiva", domain.ErrInvalidInput)
	}
	article.Quantity -= *amount
	article.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, article); err != nil {
		return nil, err
	}
	return &dto.RemovalOutcome{
		Removed:   false,
		Remaining: article.Quantity,
		Article:   toArticleResponse(article),
	}, nil
}

// List lista artículos; los filtros por producto y emplacement se combinan con AND.
func (uc *UseCase) List(ctx context.Context, filter repository.ArticleFilter, page dto.PageRequest) (*dto.ArticleListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ArticleResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toArticleResponse(a))
	}
	return &dto.ArticleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ClassifyByExpiry separa los artículos con fecha de caducidad en próximos (now..now+horizonte,
// ambos inclusive) y caducados (< now). Los artículos sin fecha no aparecen.
func (uc *UseCase) ClassifyByExpiry(ctx context.Context, horizonDays int) (*dto.ExpiryReport, error) {
	if horizonDays < 0 {
		return nil, fmt.Errorf("%w: el horizonte no puede ser negativo", domain.ErrInvalidInput)
	}
	now := uc.now()
	horizon := inventory.HorizonDays(horizonDays)
	list, err := uc.repo.ListExpiringBefore(ctx, now.Add(horizon))
	if err != nil {
		return nil, err
	}

	report := &dto.ExpiryReport{
		HorizonDays: horizonDays,
		Upcoming:    []dto.ExpiringArticle{},
		Expired:     []dto.ExpiringArticle{},
	}
	for _, a := range list {
		status := inventory.ClassifyExpiry(now, a.ExpiresAt, horizon)
		if status == inventory.ExpiryNone {
			continue
		}
		item := dto.ExpiringArticle{
			ArticleResponse: *toArticleResponse(a),
			Days:            inventory.DaysUntil(now, *a.ExpiresAt),
		}
		if status == inventory.ExpiryExpired {
			report.Expired = append(report.Expired, item)
		} else {
			report.Upcoming = append(report.Upcoming, item)
		}
	}
	return report, nil
}

// Delete elimina un artículo sin importar su cantidad.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *UseCase) get(ctx context.Context, id string) (*entity.Article, error) {
	article, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, fmt.Errorf("%w: article %s", domain.ErrNotFound, id)
	}
	return article, nil
}

func (uc *UseCase) ensureProduit(ctx context.Context, id string) error {
	p, err := uc.produits.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("%w: produit %s", domain.ErrNotFound, id)
	}
	return nil
}

func (uc *UseCase) ensureEmplacement(ctx context.Context, id string) error {
	e, err := uc.emplacements.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("%w: emplacement %s", domain.ErrNotFound, id)
	}
	return nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

func toArticleResponse(a *entity.Article) *dto.ArticleResponse {
	if a == nil {
		return nil
	}
	return &dto.ArticleResponse{
		ID:            a.ID,
		Code:          a.Code,
		ProduitID:     a.ProduitID,
		EmplacementID: a.EmplacementID,
		Quantity:      a.Quantity,
		ExpiresAt:     a.ExpiresAt,
		Comment:       a.Comment,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

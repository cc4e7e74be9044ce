package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ddb-stock/internal/application/dto"
	"github.com/jhoicas/ddb-stock/internal/domain"
	"github.com/jhoicas/ddb-stock/internal/domain/entity"
	"github.com/jhoicas/ddb-stock/internal/domain/inventory"
	"github.com/jhoicas/ddb-stock/internal/domain/repository"
)

// ProduitUseCase casos de uso del catálogo de productos.
// Un producto no se puede borrar mientras algún artículo lo referencie.
type ProduitUseCase struct {
	repo     repository.ProduitRepository
	articles repository.ArticleRepository
}

// NewProduitUseCase construye el caso de uso.
func NewProduitUseCase(repo repository.ProduitRepository, articles repository.ArticleRepository) *ProduitUseCase {
	return &ProduitUseCase{repo: repo, articles: articles}
}

// Create crea un nuevo producto. El EAN, si viene, debe ser único.
func (uc *ProduitUseCase) Create(ctx context.Context, in dto.CreateProduitRequest) (*dto.ProduitResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nom es requerido", domain.ErrInvalidInput)
	}
	ean := inventory.NormalizeEAN(in.EAN)
	if ean != nil {
		existing, err := uc.repo.GetByEAN(ctx, *ean)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: EAN %s ya existe", domain.ErrDuplicate, *ean)
		}
	}
	now := time.Now().UTC()
	produit := &entity.Produit{
		ID:          uuid.Must(uuid.NewV7()).String(),
		EAN:         ean,
		Name:        name,
		Brand:       in.Brand,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, produit); err != nil {
		return nil, err
	}
	return toProduitResponse(produit), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProduitUseCase) GetByID(ctx context.Context, id string) (*dto.ProduitResponse, error) {
	produit, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProduitResponse(produit), nil
}

// GetByEAN obtiene un producto por código de barras.
func (uc *ProduitUseCase) GetByEAN(ctx context.Context, ean string) (*dto.ProduitResponse, error) {
	produit, err := uc.repo.GetByEAN(ctx, strings.TrimSpace(ean))
	if err != nil {
		return nil, err
	}
	if produit == nil {
		return nil, fmt.Errorf("%w: produit con EAN %s", domain.ErrNotFound, ean)
	}
	return toProduitResponse(produit), nil
}

// Update aplica un parche parcial. Un EAN vacío lo elimina; uno nuevo se valida como único.
func (uc *ProduitUseCase) Update(ctx context.Context, id string, in dto.UpdateProduitRequest) (*dto.ProduitResponse, error) {
	produit, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: nom no puede estar vacío", domain.ErrInvalidInput)
		}
		produit.Name = name
	}
	if in.EAN != nil {
		ean := inventory.NormalizeEAN(in.EAN)
		if ean != nil {
			existing, err := uc.repo.GetByEAN(ctx, *ean)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != produit.ID {
				return nil, fmt.Errorf("%w: EAN %s ya existe", domain.ErrDuplicate, *ean)
			}
		}
		produit.EAN = ean
	}
	if in.Brand != nil {
		produit.Brand = *in.Brand
	}
	if in.Description != nil {
		produit.Description = *in.Description
	}
	produit.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, produit); err != nil {
		return nil, err
	}
	return toProduitResponse(produit), nil
}

// List lista productos con paginación.
func (uc *ProduitUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProduitListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProduitResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProduitResponse(p))
	}
	return &dto.ProduitListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un producto si ningún artículo lo referencia.
func (uc *ProduitUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	n, err := uc.articles.CountByProduit(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: %d article(s) referencian este produit", domain.ErrInUse, n)
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ProduitUseCase) get(ctx context.Context, id string) (*entity.Produit, error) {
	produit, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if produit == nil {
		return nil, fmt.Errorf("%w: produit %s", domain.ErrNotFound, id)
	}
	return produit, nil
}

func toProduitResponse(p *entity.Produit) *dto.ProduitResponse {
	if p == nil {
		return nil
	}
	return &dto.ProduitResponse{
		ID:          p.ID,
		EAN:         p.EAN,
		Name:        p.Name,
		Brand:       p.Brand,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

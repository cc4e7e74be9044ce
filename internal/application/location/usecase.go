package location

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

// UseCase gestiona el árbol de emplacements.
// Invariante: tras cada escritura, nivel(nodo) == nivel(padre)+1, o 1 si no tiene padre.
type UseCase struct {
	repo     repository.EmplacementRepository
	articles repository.ArticleRepository
	txRunner TxRunner
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.EmplacementRepository, articles repository.ArticleRepository, txRunner TxRunner) *UseCase {
	return &UseCase{
		repo:     repo,
		articles: articles,
		txRunner: txRunner,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create crea un emplacement como raíz o bajo un padre existente.
// No hace falta comprobar ciclos: un nodo nuevo no puede tener descendientes.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateEmplacementRequest) (*dto.EmplacementResponse, error) {
	code := inventory.NormalizeCode(in.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: code_emplacement es requerido", domain.ErrInvalidInput)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nom es requerido", domain.ErrInvalidInput)
	}

	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: code emplacement %s ya existe", domain.ErrDuplicate, code)
	}

	var parent *entity.Emplacement
	if in.ParentID != nil && strings.TrimSpace(*in.ParentID) != "" {
		parent, err = getEmplacement(ctx, uc.repo, strings.TrimSpace(*in.ParentID))
		if err != nil {
			return nil, err
		}
	}

	now := uc.now()
	e := &entity.Emplacement{
		ID:          uuid.Must(uuid.NewV7()).String(),
		Code:        code,
		Name:        name,
		Level:       inventory.LevelUnder(parent),
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if parent != nil {
		e.ParentID = &parent.ID
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return toEmplacementResponse(e), nil
}

// Update aplica un parche parcial. Si cambia el padre se valida que exista y que no sea
// el propio nodo ni un descendiente, y se recalcula el nivel de todo el subárbol.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateEmplacementRequest) (*dto.EmplacementResponse, error) {
	var out *entity.Emplacement
	err := uc.txRunner.RunHierarchy(ctx, func(repo repository.EmplacementRepository) error {
		node, err := getEmplacement(ctx, repo, id)
		if err != nil {
			return err
		}
		now := uc.now()

		if in.Code != nil {
			code := inventory.NormalizeCode(*in.Code)
			if code == "" {
				return fmt.Errorf("%w: code_emplacement no puede estar vacío", domain.ErrInvalidInput)
			}
			existing, err := repo.GetByCode(ctx, code)
			if err != nil {
				return err
			}
			if existing != nil && existing.ID != node.ID {
				return fmt.Errorf("%w: code emplacement %s ya existe", domain.ErrDuplicate, code)
			}
			node.Code = code
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return fmt.Errorf("%w: nom no puede estar vacío", domain.ErrInvalidInput)
			}
			node.Name = name
		}
		if in.Description != nil {
			node.Description = *in.Description
		}

		levelChanged := false
		if in.ParentID.Set {
			var parent *entity.Emplacement
			parentID := ""
			if in.ParentID.Value != nil {
				parentID = strings.TrimSpace(*in.ParentID.Value)
			}
			if parentID != "" {
				parent, err = getEmplacement(ctx, repo, parentID)
				if err != nil {
					return err
				}
				if err := ensureNotDescendant(ctx, repo, node.ID, parent); err != nil {
					return err
				}
				node.ParentID = &parent.ID
			} else {
				node.ParentID = nil
			}
			if level := inventory.LevelUnder(parent); level != node.Level {
				node.Level = level
				levelChanged = true
			}
		}

		node.UpdatedAt = now
		if err := repo.Update(ctx, node); err != nil {
			return err
		}
		if levelChanged {
			if err := propagateLevels(ctx, repo, node, now); err != nil {
				return err
			}
		}
		out = node
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toEmplacementResponse(out), nil
}

// Delete elimina un emplacement vacío: sin artículos y sin hijos.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if _, err := getEmplacement(ctx, uc.repo, id); err != nil {
		return err
	}
	articles, err := uc.articles.CountByEmplacement(ctx, id)
	if err != nil {
		return err
	}
	if articles > 0 {
		return fmt.Errorf("%w: %d article(s) en este emplacement", domain.ErrInUse, articles)
	}
	children, err := uc.repo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return fmt.Errorf("%w: %d emplacement(s) enfant(s)", domain.ErrInUse, children)
	}
	return uc.repo.Delete(ctx, id)
}

// GetByID obtiene un emplacement por ID.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.EmplacementResponse, error) {
	e, err := getEmplacement(ctx, uc.repo, id)
	if err != nil {
		return nil, err
	}
	return toEmplacementResponse(e), nil
}

// GetByCode obtiene un emplacement por código; la búsqueda no distingue mayúsculas.
func (uc *UseCase) GetByCode(ctx context.Context, code string) (*dto.EmplacementResponse, error) {
	normalized := inventory.NormalizeCode(code)
	e, err := uc.repo.GetByCode(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%w: emplacement %s", domain.ErrNotFound, normalized)
	}
	return toEmplacementResponse(e), nil
}

// List lista emplacements con paginación.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) (*dto.EmplacementListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.EmplacementListResponse{
		Items: toEmplacementResponses(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListByLevel lista los emplacements de un nivel jerárquico.
func (uc *UseCase) ListByLevel(ctx context.Context, level int) ([]dto.EmplacementResponse, error) {
	if level < inventory.RootLevel {
		return nil, fmt.Errorf("%w: niveau debe ser >= 1", domain.ErrInvalidInput)
	}
	list, err := uc.repo.ListByLevel(ctx, level)
	if err != nil {
		return nil, err
	}
	return toEmplacementResponses(list), nil
}

// ListChildren devuelve solo los hijos directos, en orden de inserción.
func (uc *UseCase) ListChildren(ctx context.Context, parentID string) ([]dto.EmplacementResponse, error) {
	list, err := uc.repo.ListChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return toEmplacementResponses(list), nil
}

// ResolveAncestry devuelve el camino desde la raíz hasta el nodo (incluido).
func (uc *UseCase) ResolveAncestry(ctx context.Context, id string) ([]dto.EmplacementResponse, error) {
	node, err := getEmplacement(ctx, uc.repo, id)
	if err != nil {
		return nil, err
	}
	path := []*entity.Emplacement{node}
	seen := map[string]bool{node.ID: true}
	for cur := node; cur.ParentID != nil; {
		parent, err := uc.repo.GetByID(ctx, *cur.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, fmt.Errorf("emplacement %s: padre %s inexistente", cur.ID, *cur.ParentID)
		}
		if seen[parent.ID] {
			return nil, fmt.Errorf("emplacement %s: %w", parent.ID, domain.ErrCycle)
		}
		seen[parent.ID] = true
		path = append(path, parent)
		cur = parent
	}
	// path va de la hoja a la raíz
	out := make([]dto.EmplacementResponse, len(path))
	for i, e := range path {
		out[len(path)-1-i] = *toEmplacementResponse(e)
	}
	return out, nil
}

// ResolveDescendants devuelve el subárbol completo con raíz en id.
func (uc *UseCase) ResolveDescendants(ctx context.Context, id string) (*dto.EmplacementTree, error) {
	root, err := getEmplacement(ctx, uc.repo, id)
	if err != nil {
		return nil, err
	}
	return uc.buildTree(ctx, root, map[string]bool{})
}

func (uc *UseCase) buildTree(ctx context.Context, node *entity.Emplacement, seen map[string]bool) (*dto.EmplacementTree, error) {
	if seen[node.ID] {
		return nil, fmt.Errorf("emplacement %s: %w", node.ID, domain.ErrCycle)
	}
	seen[node.ID] = true

	children, err := uc.repo.ListChildren(ctx, node.ID)
	if err != nil {
		return nil, err
	}
	tree := &dto.EmplacementTree{
		EmplacementResponse: *toEmplacementResponse(node),
		Children:            make([]*dto.EmplacementTree, 0, len(children)),
	}
	for _, child := range children {
		sub, err := uc.buildTree(ctx, child, seen)
		if err != nil {
			return nil, err
		}
		tree.Children = append(tree.Children, sub)
	}
	return tree, nil
}

// ensureNotDescendant recorre los ancestros de candidate; si aparece nodeID, el cambio crearía un ciclo.
func ensureNotDescendant(ctx context.Context, repo repository.EmplacementRepository, nodeID string, candidate *entity.Emplacement) error {
	seen := map[string]bool{}
	for cur := candidate; cur != nil; {
		if cur.ID == nodeID {
			return fmt.Errorf("%w: %s es el propio nodo o un descendiente", domain.ErrCycle, candidate.Code)
		}
		if seen[cur.ID] || cur.ParentID == nil {
			return nil
		}
		seen[cur.ID] = true
		next, err := repo.GetByID(ctx, *cur.ParentID)
		if err != nil {
			return err
		}
		cur = next
	}
	return nil
}

// propagateLevels reescribe el nivel de los descendientes de node (BFS).
func propagateLevels(ctx context.Context, repo repository.EmplacementRepository, node *entity.Emplacement, now time.Time) error {
	queue := []*entity.Emplacement{node}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		children, err := repo.ListChildren(ctx, cur.ID)
		if err != nil {
			return err
		}
		for _, child := range children {
			want := inventory.LevelUnder(cur)
			if child.Level == want {
				continue
			}
			child.Level = want
			child.UpdatedAt = now
			if err := repo.Update(ctx, child); err != nil {
				return err
			}
			queue = append(queue, child)
		}
	}
	return nil
}

func getEmplacement(ctx context.Context, repo repository.EmplacementRepository, id string) (*entity.Emplacement, error) {
	e, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%w: emplacement %s", domain.ErrNotFound, id)
	}
	return e, nil
}

func toEmplacementResponses(list []*entity.Emplacement) []dto.EmplacementResponse {
	items := make([]dto.EmplacementResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEmplacementResponse(e))
	}
	return items
}

func toEmplacementResponse(e *entity.Emplacement) *dto.EmplacementResponse {
	if e == nil {
		return nil
	}
	return &dto.EmplacementResponse{
		ID:          e.ID,
		Code:        e.Code,
		Name:        e.Name,
		ParentID:    e.ParentID,
		Level:       e.Level,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

package location_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jhoicas/ddb-stock/internal/application/dto"
	"github.com/jhoicas/ddb-stock/internal/application/location"
	"github.com/jhoicas/ddb-stock/internal/domain"
	"github.com/jhoicas/ddb-stock/internal/domain/entity"
	"github.com/jhoicas/ddb-stock/internal/domain/repository"
	"github.com/jhoicas/ddb-stock/internal/infrastructure/sqlite"
)

type fixture struct {
	db *gorm.DB
	uc *location.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := sqlite.OpenMemory(strings.ReplaceAll(t.Name(), "/", "_"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	uc := location.NewUseCase(
		sqlite.NewEmplacementRepository(db),
		sqlite.NewArticleRepository(db),
		sqlite.NewTxRunner(db),
	)
	return &fixture{db: db, uc: uc}
}

func (f *fixture) create(t *testing.T, code string, parent *dto.EmplacementResponse) *dto.EmplacementResponse {
	t.Helper()
	in := dto.CreateEmplacementRequest{Code: code, Name: "Emplacement " + code}
	if parent != nil {
		in.ParentID = &parent.ID
	}
	e, err := f.uc.Create(context.Background(), in)
	require.NoError(t, err)
	return e
}

func strPtr(s string) *string { return &s }

func TestCreate_NivelSegunPadre(t *testing.T) {
	f := newFixture(t)
	maison := f.create(t, "maison", nil)
	cuisine := f.create(t, "cuisine", maison)
	frigo := f.create(t, "frigo", cuisine)

	assert.Equal(t, 1, maison.Level)
	assert.Nil(t, maison.ParentID)
	assert.Equal(t, 2, cuisine.Level)
	assert.Equal(t, 3, frigo.Level)
	assert.Equal(t, "FRIGO", frigo.Code)
	require.NotNil(t, frigo.ParentID)
	assert.Equal(t, cuisine.ID, *frigo.ParentID)
}

func TestCreate_CodigoDuplicadoSinDistinguirMayusculas(t *testing.T) {
	f := newFixture(t)
	f.create(t, "FRIGO", nil)

	_, err := f.uc.Create(context.Background(), dto.CreateEmplacementRequest{Code: "  frigo ", Name: "Autre"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, dto.CreateEmplacementRequest{Code: "  ", Name: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(ctx, dto.CreateEmplacementRequest{Code: "A", Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(ctx, dto.CreateEmplacementRequest{Code: "A", Name: "x", ParentID: strPtr("inexistant")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := f.uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestUpdate_MoverSubarbolRecalculaNiveles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	maison := f.create(t, "MAISON", nil)
	garage := f.create(t, "GARAGE", nil)
	cuisine := f.create(t, "CUISINE", maison)
	frigo := f.create(t, "FRIGO", cuisine)
	bac := f.create(t, "BAC", frigo)

	// FRIGO pasa a colgar directamente de la raíz GARAGE
	moved, err := f.uc.Update(ctx, frigo.ID, dto.UpdateEmplacementRequest{ParentID: dto.SetID(garage.ID)})
	require.NoError(t, err)
	assert.Equal(t, 2, moved.Level)

	got, err := f.uc.GetByID(ctx, bac.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Level)

	// desenganchar: FRIGO queda como raíz
	root, err := f.uc.Update(ctx, frigo.ID, dto.UpdateEmplacementRequest{ParentID: dto.ClearID()})
	require.NoError(t, err)
	assert.Equal(t, 1, root.Level)
	assert.Nil(t, root.ParentID)

	got, err = f.uc.GetByID(ctx, bac.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Level)

	assertLevelsConsistent(t, f)
}

func TestUpdate_RechazaCiclos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.create(t, "A", nil)
	b := f.create(t, "B", a)
	c := f.create(t, "C", b)

	_, err := f.uc.Update(ctx, a.ID, dto.UpdateEmplacementRequest{ParentID: dto.SetID(c.ID)})
	assert.ErrorIs(t, err, domain.ErrCycle)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.uc.Update(ctx, b.ID, dto.UpdateEmplacementRequest{ParentID: dto.SetID(b.ID)})
	assert.ErrorIs(t, err, domain.ErrCycle)

	// nada cambió
	got, err := f.uc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)
	assert.Equal(t, 1, got.Level)
}

func TestUpdate_CodigoYNombre(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.create(t, "A", nil)
	f.create(t, "B", nil)

	_, err := f.uc.Update(ctx, a.ID, dto.UpdateEmplacementRequest{Code: strPtr("b")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := f.uc.Update(ctx, a.ID, dto.UpdateEmplacementRequest{Code: strPtr("cave"), Name: strPtr("Cave")})
	require.NoError(t, err)
	assert.Equal(t, "CAVE", got.Code)
	assert.Equal(t, "Cave", got.Name)

	_, err = f.uc.Update(ctx, "inexistant", dto.UpdateEmplacementRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_Guardas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	maison := f.create(t, "MAISON", nil)
	frigo := f.create(t, "FRIGO", maison)

	err := f.uc.Delete(ctx, maison.ID)
	assert.ErrorIs(t, err, domain.ErrInUse)

	produits := sqlite.NewProduitRepository(f.db)
	articles := sqlite.NewArticleRepository(f.db)
	require.NoError(t, produits.Create(ctx, &entity.Produit{ID: "p1", Name: "Lait"}))
	require.NoError(t, articles.Create(ctx, &entity.Article{ID: "a1", Code: "A1", ProduitID: "p1", EmplacementID: frigo.ID, Quantity: 1}))

	err = f.uc.Delete(ctx, frigo.ID)
	assert.ErrorIs(t, err, domain.ErrInUse)

	require.NoError(t, articles.Delete(ctx, "a1"))
	require.NoError(t, f.uc.Delete(ctx, frigo.ID))
	require.NoError(t, f.uc.Delete(ctx, maison.ID))

	err = f.uc.Delete(ctx, maison.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// articlesSinConteo simula un artículo insertado entre el conteo y el DELETE.
type articlesSinConteo struct {
	repository.ArticleRepository
}

func (articlesSinConteo) CountByEmplacement(context.Context, string) (int, error) { return 0, nil }

func TestDelete_ElAlmacenRechazaSiElConteoLlegaTarde(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	frigo := f.create(t, "FRIGO", nil)

	articles := sqlite.NewArticleRepository(f.db)
	require.NoError(t, sqlite.NewProduitRepository(f.db).Create(ctx, &entity.Produit{ID: "p1", Name: "Lait"}))
	require.NoError(t, articles.Create(ctx, &entity.Article{ID: "a1", Code: "A1", ProduitID: "p1", EmplacementID: frigo.ID, Quantity: 1}))

	uc := location.NewUseCase(sqlite.NewEmplacementRepository(f.db), articlesSinConteo{articles}, sqlite.NewTxRunner(f.db))
	err := uc.Delete(ctx, frigo.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorIs(t, err, domain.ErrInUse)

	still, err := uc.GetByID(ctx, frigo.ID)
	require.NoError(t, err)
	assert.Equal(t, "FRIGO", still.Code)
}

func TestResolveAncestry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	root := f.create(t, "ROOT", nil)
	a := f.create(t, "A", root)
	b := f.create(t, "B", a)
	c := f.create(t, "C", b)

	path, err := f.uc.ResolveAncestry(ctx, c.ID)
	require.NoError(t, err)
	codes := make([]string, 0, len(path))
	for _, e := range path {
		codes = append(codes, e.Code)
	}
	assert.Equal(t, []string{"ROOT", "A", "B", "C"}, codes)

	path, err = f.uc.ResolveAncestry(ctx, root.ID)
	require.NoError(t, err)
	assert.Len(t, path, 1)

	_, err = f.uc.ResolveAncestry(ctx, "inexistant")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolveDescendantsYListados(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	maison := f.create(t, "MAISON", nil)
	cuisine := f.create(t, "CUISINE", maison)
	salon := f.create(t, "SALON", maison)
	f.create(t, "FRIGO", cuisine)
	f.create(t, "PLACARD", cuisine)

	tree, err := f.uc.ResolveDescendants(ctx, maison.ID)
	require.NoError(t, err)
	require.Len(t, tree.Children, 2)
	assert.Equal(t, "CUISINE", tree.Children[0].Code)
	assert.Equal(t, "SALON", tree.Children[1].Code)
	require.Len(t, tree.Children[0].Children, 2)
	assert.Equal(t, "FRIGO", tree.Children[0].Children[0].Code)
	assert.Empty(t, tree.Children[1].Children)

	children, err := f.uc.ListChildren(ctx, maison.ID)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, cuisine.ID, children[0].ID)
	assert.Equal(t, salon.ID, children[1].ID)

	level3, err := f.uc.ListByLevel(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, level3, 2)

	_, err = f.uc.ListByLevel(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.uc.GetByCode(ctx, "cuisine")
	require.NoError(t, err)
	assert.Equal(t, cuisine.ID, got.ID)

	page, err := f.uc.List(ctx, dto.PageRequest{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "CUISINE", page.Items[0].Code)
}

func assertLevelsConsistent(t *testing.T, f *fixture) {
	t.Helper()
	list, err := f.uc.List(context.Background(), dto.PageRequest{Limit: dto.MaxLimit})
	require.NoError(t, err)
	byID := map[string]dto.EmplacementResponse{}
	for _, e := range list.Items {
		byID[e.ID] = e
	}
	for _, e := range list.Items {
		if e.ParentID == nil {
			assert.Equal(t, 1, e.Level, e.Code)
			continue
		}
		assert.Equal(t, byID[*e.ParentID].Level+1, e.Level, e.Code)
	}
}

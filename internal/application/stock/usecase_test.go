package stock_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ddb-stock/internal/application/dto"
	"github.com/jhoicas/ddb-stock/internal/application/stock"
	"github.com/jhoicas/ddb-stock/internal/domain"
	"github.com/jhoicas/ddb-stock/internal/domain/entity"
	"github.com/jhoicas/ddb-stock/internal/domain/repository"
	"github.com/jhoicas/ddb-stock/internal/infrastructure/sqlite"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	uc          *stock.UseCase
	produit     string
	emplacement string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := sqlite.OpenMemory(strings.ReplaceAll(t.Name(), "/", "_"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	ctx := context.Background()
	produits := sqlite.NewProduitRepository(db)
	emplacements := sqlite.NewEmplacementRepository(db)
	require.NoError(t, produits.Create(ctx, &entity.Produit{ID: "p-lait", Name: "Lait", CreatedAt: fixedNow, UpdatedAt: fixedNow}))
	require.NoError(t, produits.Create(ctx, &entity.Produit{ID: "p-beurre", Name: "Beurre", CreatedAt: fixedNow, UpdatedAt: fixedNow}))
	require.NoError(t, emplacements.Create(ctx, &entity.Emplacement{ID: "e-frigo", Code: "FRIGO", Name: "Frigo", Level: 1, CreatedAt: fixedNow, UpdatedAt: fixedNow}))
	require.NoError(t, emplacements.Create(ctx, &entity.Emplacement{ID: "e-cave", Code: "CAVE", Name: "Cave", Level: 1, CreatedAt: fixedNow, UpdatedAt: fixedNow}))

	uc := stock.NewUseCase(sqlite.NewArticleRepository(db), produits, emplacements).
		WithClock(func() time.Time { return fixedNow })
	return &fixture{uc: uc, produit: "p-lait", emplacement: "e-frigo"}
}

func (f *fixture) create(t *testing.T, code string, qty *int, expires *time.Time) *dto.ArticleResponse {
	t.Helper()
	a, err := f.uc.Create(context.Background(), dto.CreateArticleRequest{
		Code:          code,
		ProduitID:     f.produit,
		EmplacementID: f.emplacement,
		Quantity:      qty,
		ExpiresAt:     expires,
	})
	require.NoError(t, err)
	return a
}

func intPtr(n int) *int { return &n }

func daysFromNow(d int) *time.Time {
	t := fixedNow.AddDate(0, 0, d)
	return &t
}

func TestCreate_CantidadPorDefectoYCodigoNormalizado(t *testing.T) {
	f := newFixture(t)
	a := f.create(t, " lait-001 ", nil, nil)

	assert.Equal(t, "LAIT-001", a.Code)
	assert.Equal(t, 1, a.Quantity)
	assert.Nil(t, a.ExpiresAt)
	assert.Equal(t, fixedNow, a.CreatedAt)
}

func TestCreate_OrdenDeValidacionSinEscrituras(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, "A1", nil, nil)

	tests := []struct {
		name    string
		in      dto.CreateArticleRequest
		wantErr error
	}{
		{"producto inexistente gana", dto.CreateArticleRequest{Code: "a1", ProduitID: "nope", EmplacementID: "nope"}, domain.ErrNotFound},
		{"emplacement inexistente", dto.CreateArticleRequest{Code: "a1", ProduitID: "p-lait", EmplacementID: "nope"}, domain.ErrNotFound},
		{"código duplicado", dto.CreateArticleRequest{Code: "a1", ProduitID: "p-lait", EmplacementID: "e-frigo"}, domain.ErrConflict},
		{"código vacío", dto.CreateArticleRequest{Code: " ", ProduitID: "p-lait", EmplacementID: "e-frigo"}, domain.ErrInvalidInput},
		{"cantidad negativa", dto.CreateArticleRequest{Code: "B1", ProduitID: "p-lait", EmplacementID: "e-frigo", Quantity: intPtr(-1)}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Create(ctx, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	list, err := f.uc.List(ctx, repository.ArticleFilter{}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

func TestCreate_CantidadCeroPermitida(t *testing.T) {
	f := newFixture(t)
	a := f.create(t, "VIDE", intPtr(0), nil)
	assert.Equal(t, 0, a.Quantity)

	got, err := f.uc.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)
}

func TestRemoveOrDecrement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.create(t, "LAIT", intPtr(5), nil)

	out, err := f.uc.RemoveOrDecrement(ctx, a.ID, intPtr(2))
	require.NoError(t, err)
	assert.False(t, out.Removed)
	assert.Equal(t, 3, out.Remaining)
	require.NotNil(t, out.Article)
	assert.Equal(t, 3, out.Article.Quantity)

	_, err = f.uc.RemoveOrDecrement(ctx, a.ID, intPtr(0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.RemoveOrDecrement(ctx, a.ID, intPtr(-3))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err = f.uc.RemoveOrDecrement(ctx, a.ID, intPtr(10))
	require.NoError(t, err)
	assert.True(t, out.Removed)
	assert.Equal(t, 0, out.Remaining)
	assert.Nil(t, out.Article)

	_, err = f.uc.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// el código queda libre
	f.create(t, "lait", nil, nil)
}

func TestRemoveOrDecrement_SinCantidadElimina(t *testing.T) {
	f := newFixture(t)
	a := f.create(t, "X", intPtr(7), nil)

	out, err := f.uc.RemoveOrDecrement(context.Background(), a.ID, nil)
	require.NoError(t, err)
	assert.True(t, out.Removed)

	_, err = f.uc.RemoveOrDecrement(context.Background(), a.ID, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.create(t, "X", intPtr(4), nil)

	got, err := f.uc.SetQuantity(ctx, a.ID, 9)
	require.NoError(t, err)
	assert.Equal(t, 9, got.Quantity)

	got, err = f.uc.SetQuantity(ctx, a.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)

	_, err = f.uc.SetQuantity(ctx, a.ID, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.SetQuantity(ctx, "nope", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClassifyByExpiry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	past := f.create(t, "PAST", nil, daysFromNow(-1))
	soon := f.create(t, "SOON", nil, daysFromNow(5))
	f.create(t, "LATER", nil, daysFromNow(40))
	f.create(t, "NONE", nil, nil)
	edge := f.create(t, "EDGE", nil, daysFromNow(30))

	report, err := f.uc.ClassifyByExpiry(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, 30, report.HorizonDays)

	require.Len(t, report.Expired, 1)
	assert.Equal(t, past.ID, report.Expired[0].ID)
	assert.Equal(t, -1, report.Expired[0].Days)

	require.Len(t, report.Upcoming, 2)
	assert.Equal(t, soon.ID, report.Upcoming[0].ID)
	assert.Equal(t, 5, report.Upcoming[0].Days)
	assert.Equal(t, edge.ID, report.Upcoming[1].ID)
	assert.Equal(t, 30, report.Upcoming[1].Days)

	_, err = f.uc.ClassifyByExpiry(ctx, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	report, err = f.uc.ClassifyByExpiry(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, report.Upcoming)
	assert.Len(t, report.Expired, 1)
}

func TestUpdateYList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.create(t, "A", nil, nil)
	f.create(t, "B", nil, nil)

	cave := "e-cave"
	beurre := "p-beurre"
	comment := "entamé"
	got, err := f.uc.Update(ctx, a.ID, dto.UpdateArticleRequest{EmplacementID: &cave, ProduitID: &beurre, Comment: &comment})
	require.NoError(t, err)
	assert.Equal(t, "e-cave", got.EmplacementID)
	assert.Equal(t, "p-beurre", got.ProduitID)
	assert.Equal(t, "entamé", got.Comment)

	nope := "nope"
	_, err = f.uc.Update(ctx, a.ID, dto.UpdateArticleRequest{EmplacementID: &nope})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	dup := "b"
	_, err = f.uc.Update(ctx, a.ID, dto.UpdateArticleRequest{Code: &dup})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	list, err := f.uc.List(ctx, repository.ArticleFilter{EmplacementID: "e-cave"}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, a.ID, list.Items[0].ID)

	list, err = f.uc.List(ctx, repository.ArticleFilter{ProduitID: "p-beurre", EmplacementID: "e-frigo"}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	byCode, err := f.uc.GetByCode(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, a.ID, byCode.ID)

	require.NoError(t, f.uc.Delete(ctx, a.ID))
	assert.ErrorIs(t, f.uc.Delete(ctx, a.ID), domain.ErrNotFound)
}

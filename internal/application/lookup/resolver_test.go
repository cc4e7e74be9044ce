package lookup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ddb-stock/internal/application/dto"
	"github.com/jhoicas/ddb-stock/internal/domain"
)

type fakeProvider struct {
	name  string
	res   *dto.LookupResult
	err   error
	block bool
	calls int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Lookup(ctx context.Context, _ string) (*dto.LookupResult, error) {
	f.calls++
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.res == nil {
		return nil, f.err
	}
	copied := *f.res
	return &copied, f.err
}

func TestResolve_PrimerProveedorTimeoutUsaSegundo(t *testing.T) {
	slow := &fakeProvider{name: "OpenFoodFacts", block: true}
	fast := &fakeProvider{name: "Barcodelookup", res: &dto.LookupResult{Name: "Lait demi-écrémé", Brand: "Lactel"}}
	r := NewResolver(20*time.Millisecond, nil, slow, fast)

	start := time.Now()
	res, err := r.Resolve(context.Background(), "3428274930019")
	require.NoError(t, err)
	assert.Equal(t, "Barcodelookup", res.Source)
	assert.Equal(t, "Lait demi-écrémé", res.Name)
	assert.Equal(t, "Lactel", res.Brand)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, 1, slow.calls)
}

func TestResolve_PrimerResultadoGana(t *testing.T) {
	first := &fakeProvider{name: "A", res: &dto.LookupResult{Name: "Pâtes"}}
	second := &fakeProvider{name: "B", res: &dto.LookupResult{Name: "Riz"}}
	r := NewResolver(time.Second, nil, first, second)

	res, err := r.Resolve(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "A", res.Source)
	assert.Equal(t, 0, second.calls)
}

func TestResolve_FallosYResultadosVaciosSeSaltan(t *testing.T) {
	broken := &fakeProvider{name: "A", err: errors.New("HTTP 500")}
	empty := &fakeProvider{name: "B", res: &dto.LookupResult{Name: "  "}}
	unknown := &fakeProvider{name: "C"}
	ok := &fakeProvider{name: "D", res: &dto.LookupResult{Name: "Café"}}
	r := NewResolver(time.Second, nil, broken, empty, unknown, ok)

	res, err := r.Resolve(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "D", res.Source)
}

func TestResolve_Agotado(t *testing.T) {
	r := NewResolver(time.Second, nil, &fakeProvider{name: "A"}, &fakeProvider{name: "B", err: errors.New("boom")})

	_, err := r.Resolve(context.Background(), "123")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolve_EANVacio(t *testing.T) {
	p := &fakeProvider{name: "A", res: &dto.LookupResult{Name: "x"}}
	r := NewResolver(time.Second, nil, p)

	_, err := r.Resolve(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, p.calls)
}

func TestResolve_ContextoCancelado(t *testing.T) {
	p := &fakeProvider{name: "A", res: &dto.LookupResult{Name: "x"}}
	r := NewResolver(time.Second, nil, p)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Resolve(ctx, "123")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, p.calls)
}

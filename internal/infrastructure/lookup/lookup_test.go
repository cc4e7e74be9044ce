package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenFoodFacts_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v0/product/3017620422003.json":
			_, _ = w.Write([]byte(`{"status":1,"product":{"product_name":"Nutella","brands":"Ferrero","categories":"Pâtes à tartiner"}}`))
		case "/api/v0/product/000.json":
			_, _ = w.Write([]byte(`{"status":0,"status_verbose":"product not found"}`))
		case "/api/v0/product/111.json":
			_, _ = w.Write([]byte(`{"status":1,"product":{"product_name":""}}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	p := NewOpenFoodFacts(srv.URL+"/", srv.Client())
	assert.Equal(t, OpenFoodFactsName, p.Name())

	res, err := p.Lookup(context.Background(), "3017620422003")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "Nutella", res.Name)
	assert.Equal(t, "Ferrero", res.Brand)
	assert.Equal(t, "Pâtes à tartiner", res.Description)
	assert.Equal(t, OpenFoodFactsName, res.Source)

	res, err = p.Lookup(context.Background(), "000")
	require.NoError(t, err)
	assert.Nil(t, res)

	res, err = p.Lookup(context.Background(), "111")
	require.NoError(t, err)
	assert.Nil(t, res, "sin product_name no es utilizable")

	_, err = p.Lookup(context.Background(), "999")
	assert.Error(t, err)
}

func TestOpenFoodFacts_RespetaTimeoutDelContexto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := NewOpenFoodFacts(srv.URL, srv.Client()).Lookup(ctx, "123")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBarcodeLookup_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/products", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		switch r.URL.Query().Get("barcode") {
		case "5449000000996":
			_, _ = w.Write([]byte(`{"products":[{"title":"","product_name":"Coca-Cola 33cl","brand":"","manufacturer":"The Coca-Cola Company","description":"","category":"Boissons"}]}`))
		case "222":
			_, _ = w.Write([]byte(`{"products":[{"brand":"X"}]}`))
		case "404":
			w.WriteHeader(http.StatusNotFound)
		default:
			_, _ = w.Write([]byte(`{"products":[]}`))
		}
	}))
	defer srv.Close()

	p := NewBarcodeLookup(srv.URL, "secret", srv.Client())

	res, err := p.Lookup(context.Background(), "5449000000996")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "Coca-Cola 33cl", res.Name)
	assert.Equal(t, "The Coca-Cola Company", res.Brand)
	assert.Equal(t, "Boissons", res.Description)
	assert.Equal(t, BarcodeLookupName, res.Source)

	res, err = p.Lookup(context.Background(), "222")
	require.NoError(t, err)
	assert.Equal(t, unnamedProduct, res.Name)

	res, err = p.Lookup(context.Background(), "404")
	require.NoError(t, err)
	assert.Nil(t, res)

	res, err = p.Lookup(context.Background(), "333")
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestBarcodeLookup_SinClave(t *testing.T) {
	_, err := NewBarcodeLookup("http://127.0.0.1:0", "", nil).Lookup(context.Background(), "123")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

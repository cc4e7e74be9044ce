package lookup

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/jhoicas/ddb-stock/internal/application/dto"
	"github.com/jhoicas/ddb-stock/internal/application/ports"
)

var _ ports.ProductLookup = (*BarcodeLookup)(nil)

// BarcodeLookupName nombre del proveedor en LookupResult.Source.
const BarcodeLookupName = "Barcodelookup"

// unnamedProduct nombre por defecto cuando el proveedor no trae título.
const unnamedProduct = "Produit sans nom"

// ErrNoAPIKey el proveedor necesita clave y no está configurada.
var ErrNoAPIKey = errors.New("barcodelookup: LOOKUP_BARCODELOOKUP_API_KEY no configurado")

// BarcodeLookup adaptador de api.barcodelookup.com (v3, requiere clave).
type BarcodeLookup struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewBarcodeLookup construye el adaptador. Sin apiKey las llamadas devuelven ErrNoAPIKey.
func NewBarcodeLookup(baseURL, apiKey string, httpClient *http.Client) *BarcodeLookup {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &BarcodeLookup{baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey, httpClient: httpClient}
}

type blProduct struct {
	Title        string `json:"title"`
	ProductName  string `json:"product_name"`
	Brand        string `json:"brand"`
	Manufacturer string `json:"manufacturer"`
	Description  string `json:"description"`
	Category     string `json:"category"`
}

type blResponse struct {
	Products []blProduct `json:"products"`
}

// Name implementa ports.ProductLookup.
func (s *BarcodeLookup) Name() string { return BarcodeLookupName }

// Lookup consulta /v3/products?barcode=&key= y usa el primer producto devuelto.
func (s *BarcodeLookup) Lookup(ctx context.Context, ean string) (*dto.LookupResult, error) {
	if s.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	q := url.Values{}
	q.Set("barcode", ean)
	q.Set("key", s.apiKey)
	endpoint := s.baseURL + "/v3/products?" + q.Encode()

	var body blResponse
	found, err := getJSON(ctx, s.httpClient, BarcodeLookupName, endpoint, &body)
	if err != nil || !found || len(body.Products) == 0 {
		return nil, err
	}
	p := body.Products[0]
	return &dto.LookupResult{
		Source:      BarcodeLookupName,
		Name:        firstNonEmpty(p.Title, p.ProductName, unnamedProduct),
		Brand:       firstNonEmpty(p.Brand, p.Manufacturer),
		Description: firstNonEmpty(p.Description, p.Category),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

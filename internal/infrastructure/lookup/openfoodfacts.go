package lookup

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/jhoicas/ddb-stock/internal/application/dto"
	"github.com/jhoicas/ddb-stock/internal/application/ports"
)

// Verificar en tiempo de compilación que OpenFoodFacts implementa ProductLookup.
var _ ports.ProductLookup = (*OpenFoodFacts)(nil)

// OpenFoodFactsName nombre del proveedor en LookupResult.Source.
const OpenFoodFactsName = "OpenFoodFacts"

// OpenFoodFacts adaptador de la API pública de Open Food Facts (sin clave).
type OpenFoodFacts struct {
	baseURL    string
	httpClient *http.Client
}

// NewOpenFoodFacts construye el adaptador. baseURL típico: https://world.openfoodfacts.org
func NewOpenFoodFacts(baseURL string, httpClient *http.Client) *OpenFoodFacts {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OpenFoodFacts{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

type offResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName string `json:"product_name"`
		Brands      string `json:"brands"`
		Categories  string `json:"categories"`
	} `json:"product"`
}

// Name implementa ports.ProductLookup.
func (s *OpenFoodFacts) Name() string { return OpenFoodFactsName }

// Lookup consulta /api/v0/product/{ean}.json. Solo status=1 con product_name no vacío es utilizable.
func (s *OpenFoodFacts) Lookup(ctx context.Context, ean string) (*dto.LookupResult, error) {
	endpoint := fmt.Sprintf("%s/api/v0/product/%s.json", s.baseURL, url.PathEscape(ean))

	var body offResponse
	found, err := getJSON(ctx, s.httpClient, OpenFoodFactsName, endpoint, &body)
	if err != nil || !found {
		return nil, err
	}
	name := strings.TrimSpace(body.Product.ProductName)
	if body.Status != 1 || name == "" {
		return nil, nil
	}
	return &dto.LookupResult{
		Source:      OpenFoodFactsName,
		Name:        name,
		Brand:       strings.TrimSpace(body.Product.Brands),
		Description: strings.TrimSpace(body.Product.Categories),
	}, nil
}

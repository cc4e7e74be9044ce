package ports

import (
	"context"

	"github.com/jhoicas/ddb-stock/internal/application/dto"
)

// ProductLookup puerto de salida hacia una base externa de productos por código de barras.
// Cualquier adaptador (OpenFoodFacts, Barcodelookup, mock) debe implementar esta interfaz.
// Un resultado nil sin error significa "el proveedor no conoce este EAN".
type ProductLookup interface {
	// Name identifica al proveedor; se copia en LookupResult.Source.
	Name() string
	// Lookup consulta el EAN. El contexto lleva el timeout del proveedor.
	Lookup(ctx context.Context, ean string) (*dto.LookupResult, error)
}

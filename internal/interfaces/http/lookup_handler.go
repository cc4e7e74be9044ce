package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ddb-stock/internal/application/lookup"
)

// LookupHandler expone la búsqueda de fichas de producto por EAN en proveedores externos.
// No escribe nada: el cliente decide si crea el produit con el resultado.
type LookupHandler struct {
	resolver *lookup.Resolver
}

// NewLookupHandler construye el handler.
func NewLookupHandler(resolver *lookup.Resolver) *LookupHandler {
	return &LookupHandler{resolver: resolver}
}

// Resolve godoc
// @Summary      Buscar ficha de producto por EAN
// @Tags         lookup
// @Produce      json
// @Param        ean  path  string  true  "Código de barras"
// @Success      200  {object}  dto.LookupResult
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recherche-ean/{ean} [get]
func (h *LookupHandler) Resolve(c *fiber.Ctx) error {
	out, err := h.resolver.Resolve(c.UserContext(), c.Params("ean"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

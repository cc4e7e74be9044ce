package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ddb-stock/internal/application/dto"
	"github.com/jhoicas/ddb-stock/internal/application/usecase"
)

// ProduitHandler maneja las peticiones HTTP del catálogo.
type ProduitHandler struct {
	uc *usecase.ProduitUseCase
}

// NewProduitHandler construye el handler.
func NewProduitHandler(uc *usecase.ProduitUseCase) *ProduitHandler {
	return &ProduitHandler{uc: uc}
}

// Create godoc
// @Summary      Crear produit
// @Tags         produits
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProduitRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProduitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/produits [post]
func (h *ProduitHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProduitRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener produit por ID
// @Tags         produits
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProduitResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/produits/{id} [get]
func (h *ProduitHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByEAN obtiene un producto del catálogo local por EAN (sin consultar proveedores).
func (h *ProduitHandler) GetByEAN(c *fiber.Ctx) error {
	out, err := h.uc.GetByEAN(c.UserContext(), c.Params("ean"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar produits
// @Tags         produits
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(100)
// @Param        skip   query  int  false  "Offset"  default(0)
// @Success      200    {object}  dto.ProduitListResponse
// @Router       /api/produits [get]
func (h *ProduitHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update actualización parcial de un producto.
func (h *ProduitHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProduitRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un producto sin artículos.
func (h *ProduitHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

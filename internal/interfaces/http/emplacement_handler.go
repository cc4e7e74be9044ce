package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ddb-stock/internal/application/dto"
	"github.com/jhoicas/ddb-stock/internal/application/location"
)

// EmplacementHandler maneja las peticiones HTTP del árbol de emplacements.
type EmplacementHandler struct {
	uc *location.UseCase
}

// NewEmplacementHandler construye el handler.
func NewEmplacementHandler(uc *location.UseCase) *EmplacementHandler {
	return &EmplacementHandler{uc: uc}
}

// Create godoc
// @Summary      Crear emplacement (raíz o bajo un padre)
// @Tags         emplacements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmplacementRequest  true  "Datos del emplacement"
// @Success      201   {object}  dto.EmplacementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/emplacements [post]
func (h *EmplacementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmplacementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene un emplacement.
func (h *EmplacementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByCode obtiene un emplacement por código.
func (h *EmplacementHandler) GetByCode(c *fiber.Ctx) error {
	out, err := h.uc.GetByCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List lista emplacements con paginación (?limit=&skip=).
func (h *EmplacementHandler) List(c *fiber.Ctx) error {
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

// ListByLevel lista los emplacements de un nivel.
func (h *EmplacementHandler) ListByLevel(c *fiber.Ctx) error {
	level, err := c.ParamsInt("niveau")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "niveau debe ser un entero"})
	}
	out, err := h.uc.ListByLevel(c.UserContext(), level)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update actualización parcial; parent_id null (o "") convierte el nodo en raíz.
func (h *EmplacementHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEmplacementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un emplacement vacío.
func (h *EmplacementHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Children hijos directos.
func (h *EmplacementHandler) Children(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := h.uc.GetByID(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListChildren(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Ancestry camino raíz → nodo.
func (h *EmplacementHandler) Ancestry(c *fiber.Ctx) error {
	out, err := h.uc.ResolveAncestry(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Tree subárbol completo.
func (h *EmplacementHandler) Tree(c *fiber.Ctx) error {
	out, err := h.uc.ResolveDescendants(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ddb-stock/internal/application/dto"
	"github.com/jhoicas/ddb-stock/internal/application/stock"
	"github.com/jhoicas/ddb-stock/internal/domain/repository"
)

// defaultHorizonDays horizonte de /articles/peremption sin ?jours=.
const defaultHorizonDays = 30

// ArticleHandler maneja las peticiones HTTP del libro de stock.
type ArticleHandler struct {
	uc *stock.UseCase
}

// NewArticleHandler construye el handler.
func NewArticleHandler(uc *stock.UseCase) *ArticleHandler {
	return &ArticleHandler{uc: uc}
}

type quantityRequest struct {
	Quantity *int `json:"quantite"`
}

type articleListQuery struct {
	ProduitID     string `query:"produit_id"`
	EmplacementID string `query:"emplacement_id"`
	Limit         int    `query:"limit"`
	Offset        int    `query:"skip"`
}

// Create godoc
// @Summary      Crear article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateArticleRequest  true  "Datos del artículo (quantite por defecto 1)"
// @Success      201   {object}  dto.ArticleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/articles [post]
func (h *ArticleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateArticleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene un artículo.
func (h *ArticleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByCode obtiene un artículo por código.
func (h *ArticleHandler) GetByCode(c *fiber.Ctx) error {
	out, err := h.uc.GetByCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar articles
// @Tags         articles
// @Produce      json
// @Param        produit_id      query  string  false  "Filtrar por producto"
// @Param        emplacement_id  query  string  false  "Filtrar por emplacement"
// @Param        limit           query  int     false  "Límite"  default(100)
// @Param        skip            query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ArticleListResponse
// @Router       /api/articles [get]
func (h *ArticleHandler) List(c *fiber.Ctx) error {
	var q articleListQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.List(c.UserContext(),
		repository.ArticleFilter{ProduitID: q.ProduitID, EmplacementID: q.EmplacementID},
		dto.PageRequest{Limit: q.Limit, Offset: q.Offset},
	)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update actualización parcial.
func (h *ArticleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateArticleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetQuantity fija la cantidad absoluta: {"quantite": n}.
func (h *ArticleHandler) SetQuantity(c *fiber.Ctx) error {
	var in quantityRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Quantity == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantite es requerido"})
	}
	out, err := h.uc.SetQuantity(c.UserContext(), c.Params("id"), *in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Retirar unidades (o el artículo completo)
// @Description  Sin cuerpo, o con quantite >= cantidad actual, el artículo se elimina.
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del artículo"
// @Success      200   {object}  dto.RemovalOutcome
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/articles/{id}/retirer [post]
func (h *ArticleHandler) Remove(c *fiber.Ctx) error {
	var in quantityRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	out, err := h.uc.RemoveOrDecrement(c.UserContext(), c.Params("id"), in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Expiring clasifica por caducidad (?jours=, por defecto 30).
func (h *ArticleHandler) Expiring(c *fiber.Ctx) error {
	out, err := h.uc.ClassifyByExpiry(c.UserContext(), c.QueryInt("jours", defaultHorizonDays))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un artículo.
func (h *ArticleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

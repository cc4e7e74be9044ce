package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ddb-stock/internal/application/location"
	"github.com/jhoicas/ddb-stock/internal/application/lookup"
	"github.com/jhoicas/ddb-stock/internal/application/stock"
	"github.com/jhoicas/ddb-stock/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProduitUC  *usecase.ProduitUseCase
	LocationUC *location.UseCase
	StockUC    *stock.UseCase
	Resolver   *lookup.Resolver
}

// Router registra las rutas de la API. Sin autenticación: la aplicación es de un solo hogar.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo
	produits := api.Group("/produits")
	produitHandler := NewProduitHandler(deps.ProduitUC)
	produits.Post("/", produitHandler.Create)
	produits.Get("/", produitHandler.List)
	produits.Get("/ean/:ean", produitHandler.GetByEAN)
	produits.Get("/:id", produitHandler.GetByID)
	produits.Patch("/:id", produitHandler.Update)
	produits.Delete("/:id", produitHandler.Delete)

	// Jerarquía de emplacements
	emplacements := api.Group("/emplacements")
	emplacementHandler := NewEmplacementHandler(deps.LocationUC)
	emplacements.Post("/", emplacementHandler.Create)
	emplacements.Get("/", emplacementHandler.List)
	emplacements.Get("/code/:code", emplacementHandler.GetByCode)
	emplacements.Get("/niveau/:niveau", emplacementHandler.ListByLevel)
	emplacements.Get("/:id", emplacementHandler.GetByID)
	emplacements.Patch("/:id", emplacementHandler.Update)
	emplacements.Delete("/:id", emplacementHandler.Delete)
	emplacements.Get("/:id/enfants", emplacementHandler.Children)
	emplacements.Get("/:id/ancetres", emplacementHandler.Ancestry)
	emplacements.Get("/:id/arbre", emplacementHandler.Tree)

	// Libro de stock
	articles := api.Group("/articles")
	articleHandler := NewArticleHandler(deps.StockUC)
	articles.Post("/", articleHandler.Create)
	articles.Get("/", articleHandler.List)
	articles.Get("/peremption", articleHandler.Expiring)
	articles.Get("/code/:code", articleHandler.GetByCode)
	articles.Get("/:id", articleHandler.GetByID)
	articles.Patch("/:id", articleHandler.Update)
	articles.Delete("/:id", articleHandler.Delete)
	articles.Patch("/:id/quantite", articleHandler.SetQuantity)
	articles.Post("/:id/retirer", articleHandler.Remove)

	// Búsqueda externa por EAN
	lookupHandler := NewLookupHandler(deps.Resolver)
	api.Get("/recherche-ean/:ean", lookupHandler.Resolve)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/valve-catalog/internal/application/catalog"
	"github.com/jhoicas/valve-catalog/internal/application/usecase"
	"github.com/jhoicas/valve-catalog/pkg/i18n"
	"github.com/jhoicas/valve-catalog/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC *usecase.CategoryUseCase
	ProductUC  *usecase.ProductUseCase
	DocumentUC *usecase.DocumentUseCase
	Labels     *i18n.Labels
	Log        *logger.Logger

	// APIQuery y ListingQuery valores por defecto de la API y del listado; vacíos usan los del catálogo.
	APIQuery     catalog.QueryDefaults
	ListingQuery catalog.QueryDefaults

	JWTSecret            string
	DownloadRequiresAuth bool
}

// Router registra las rutas: API de solo lectura, descargas, medios y presentación.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	if deps.Labels == nil {
		deps.Labels = i18n.New("en")
	}
	if deps.APIQuery == (catalog.QueryDefaults{}) {
		deps.APIQuery = catalog.APIDefaults
	}
	if deps.ListingQuery == (catalog.QueryDefaults{}) {
		deps.ListingQuery = catalog.ListingDefaults
	}

	app.Use(OptionalAuth(deps.JWTSecret))

	api := app.Group("/api")

	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.Log)
	categories.Get("/", categoryHandler.List)
	categories.Get("/tree", categoryHandler.Tree)
	categories.Get("/:id", categoryHandler.Get)
	categories.Get("/:id/path", categoryHandler.Path)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Labels, deps.APIQuery, deps.Log)
	products.Get("/", productHandler.List)
	products.Get("/search_autocomplete", productHandler.Autocomplete)
	products.Get("/:model_code", productHandler.Get)
	products.Get("/:model_code/datasheet.pdf", productHandler.Datasheet)

	documentHandler := NewDocumentHandler(deps.DocumentUC, deps.Log)
	app.Get("/documents/:id/download", RequireAuth(deps.DownloadRequiresAuth), documentHandler.Download)
	app.Get("/media/*", documentHandler.Media)

	pages := NewPageHandler(deps.CategoryUC, deps.ProductUC, deps.Labels, deps.ListingQuery, deps.Log)
	app.Get("/", pages.Home)
	app.Get("/products", pages.Listing)
	app.Get("/products/:model_code", pages.Detail)
}

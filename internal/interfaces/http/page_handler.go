package http

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"

	"github.com/jhoicas/valve-catalog/internal/application/catalog"
	"github.com/jhoicas/valve-catalog/internal/application/dto"
	"github.com/jhoicas/valve-catalog/internal/application/usecase"
	"github.com/jhoicas/valve-catalog/pkg/i18n"
	"github.com/jhoicas/valve-catalog/pkg/logger"
)

// Plantillas de la capa de presentación.
const (
	TemplateHome        = "home"
	TemplateProductList = "products/product_list"
	TemplateProductGrid = "products/components/product_grid"
	TemplateProductPage = "products/product_detail"

	// HeaderHXRequest cabecera de las peticiones parciales (htmx).
	HeaderHXRequest = "HX-Request"

	homeFeatured = 6
	homeRecent   = 8
)

// PageHandler capa de presentación: elige plantilla y arma su contexto.
// Las categorías raíz se pasan explícitamente en cada contexto.
type PageHandler struct {
	categories *usecase.CategoryUseCase
	products   *usecase.ProductUseCase
	labels     *i18n.Labels
	defaults   catalog.QueryDefaults
	log        *logger.Logger
}

// NewPageHandler construye el handler.
func NewPageHandler(
	categories *usecase.CategoryUseCase,
	products *usecase.ProductUseCase,
	labels *i18n.Labels,
	defaults catalog.QueryDefaults,
	log *logger.Logger,
) *PageHandler {
	return &PageHandler{categories: categories, products: products, labels: labels, defaults: defaults, log: log}
}

// Home portada: categorías destacadas y productos recientes.
func (h *PageHandler) Home(c *fiber.Ctx) error {
	ctx := c.UserContext()
	locale := h.locale(c)
	featured, err := h.categories.Featured(ctx, homeFeatured)
	if err != nil {
		return writeError(c, h.log, err)
	}
	recent, err := h.products.Recent(ctx, homeRecent, locale)
	if err != nil {
		return writeError(c, h.log, err)
	}
	roots, err := h.categories.Roots(ctx)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return h.render(c, TemplateHome, dto.RenderPage, locale, dto.HomeContext{
		FeaturedCategories: featured,
		RecentProducts:     recent,
		RootCategories:     roots,
	})
}

// Listing listado de productos. Con HX-Request devuelve solo el fragmento de la grilla,
// con el mismo contexto que la página completa.
func (h *PageHandler) Listing(c *fiber.Ctx) error {
	ctx := c.UserContext()
	locale := h.locale(c)
	q := catalog.ParseProductQuery(c.Queries(), h.defaults)
	logIgnored(h.log, c, q)

	list, err := h.products.List(ctx, q, locale)
	if err != nil {
		return writeError(c, h.log, err)
	}
	roots, err := h.categories.Roots(ctx)
	if err != nil {
		return writeError(c, h.log, err)
	}
	view := dto.ListingContext{
		Products:        list.Response.Items,
		Page:            list.Response.Page,
		RootCategories:  roots,
		CurrentCategory: q.Category,
		SearchQuery:     q.Filter.Search,
		Ordering:        q.Sort.String(),
	}
	if IsPartial(c) {
		return h.render(c, TemplateProductGrid, dto.RenderFragment, locale, view)
	}
	return h.render(c, TemplateProductList, dto.RenderPage, locale, view)
}

// Detail ficha del producto con documentos, curvas y miga de pan.
func (h *PageHandler) Detail(c *fiber.Ctx) error {
	ctx := c.UserContext()
	locale := h.locale(c)
	detail, err := h.products.Get(ctx, c.Params("model_code"), locale)
	if err != nil {
		return writeError(c, h.log, err)
	}
	roots, err := h.categories.Roots(ctx)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return h.render(c, TemplateProductPage, dto.RenderPage, locale, dto.DetailContext{
		Product:        detail.Product,
		Breadcrumb:     detail.Breadcrumb,
		RootCategories: roots,
	})
}

// IsPartial indica si la petición pide un fragmento (HX-Request: true).
func IsPartial(c *fiber.Ctx) bool {
	return c.Get(HeaderHXRequest) == "true"
}

func (h *PageHandler) locale(c *fiber.Ctx) language.Tag {
	return h.labels.Match(c.Get(fiber.HeaderAcceptLanguage))
}

func (h *PageHandler) render(c *fiber.Ctx, template, mode string, locale language.Tag, view any) error {
	c.Vary(HeaderHXRequest, fiber.HeaderAcceptLanguage)
	return c.JSON(dto.ViewResponse{
		Template: template,
		Mode:     mode,
		Locale:   locale.String(),
		Labels:   h.labels.Table(locale),
		Context:  view,
	})
}

package http

import (
	"mime"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/valve-catalog/internal/application/catalog"
	"github.com/jhoicas/valve-catalog/internal/application/usecase"
	"github.com/jhoicas/valve-catalog/pkg/i18n"
	"github.com/jhoicas/valve-catalog/pkg/logger"
)

// ProductHandler API de solo lectura de productos.
type ProductHandler struct {
	uc       *usecase.ProductUseCase
	labels   *i18n.Labels
	defaults catalog.QueryDefaults
	log      *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, labels *i18n.Labels, defaults catalog.QueryDefaults, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, labels: labels, defaults: defaults, log: log}
}

// List godoc
// @Summary      Listar productos (filtros, búsqueda, orden y paginación)
// @Tags         products
// @Produce      json
// @Param        category          query  string  false  "ID o slug de categoría"
// @Param        series            query  string  false  "Serie"
// @Param        material          query  string  false  "Material"
// @Param        cavity            query  string  false  "Cavidad"
// @Param        is_active         query  bool    false  "Activo"
// @Param        search            query  string  false  "Búsqueda libre"
// @Param        max_pressure_min  query  number  false  "Presión mínima"
// @Param        max_flow_min      query  number  false  "Caudal mínimo"
// @Param        ordering          query  string  false  "model_code | -model_code | created_at | -created_at"
// @Param        page              query  int     false  "Página (1..n)"
// @Param        page_size         query  int     false  "Tamaño de página"
// @Success      200  {object}  dto.ProductListResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	q := catalog.ParseProductQuery(c.Queries(), h.defaults)
	logIgnored(h.log, c, q)
	out, err := h.uc.List(c.UserContext(), q, h.labels.Match(c.Get(fiber.HeaderAcceptLanguage)))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out.Response)
}

// Get godoc
// @Summary      Obtener producto por model_code
// @Tags         products
// @Produce      json
// @Param        model_code  path  string  true  "Código de modelo"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{model_code} [get]
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("model_code"), h.labels.Match(c.Get(fiber.HeaderAcceptLanguage)))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out.Product)
}

// Autocomplete godoc
// @Summary      Autocompletado por model_code
// @Tags         products
// @Produce      json
// @Param        q    query  string  true  "Texto (mínimo 2 caracteres)"
// @Success      200  {array}  dto.Suggestion
// @Router       /api/products/search_autocomplete [get]
func (h *ProductHandler) Autocomplete(c *fiber.Ctx) error {
	out, err := h.uc.Suggest(c.UserContext(), c.Query("q"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Datasheet godoc
// @Summary      Ficha técnica en PDF
// @Tags         products
// @Produce      application/pdf
// @Param        model_code  path  string  true  "Código de modelo"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{model_code}/datasheet.pdf [get]
func (h *ProductHandler) Datasheet(c *fiber.Ctx) error {
	name, pdf, err := h.uc.Datasheet(c.UserContext(), c.Params("model_code"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Type("pdf")
	c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType("inline", map[string]string{"filename": name}))
	return c.Send(pdf)
}

// logIgnored registra en debug los parámetros descartados; nunca se devuelven al cliente.
func logIgnored(log *logger.Logger, c *fiber.Ctx, q catalog.ProductQuery) {
	if len(q.Ignored) == 0 {
		return
	}
	log.Debug().
		Str("request_id", requestID(c)).
		Strs("ignored", q.Ignored).
		Msg("parámetros de filtro mal formados descartados")
}

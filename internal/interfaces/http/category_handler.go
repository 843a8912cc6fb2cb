package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/valve-catalog/internal/application/usecase"
	"github.com/jhoicas/valve-catalog/internal/domain"
	"github.com/jhoicas/valve-catalog/pkg/logger"
)

// CategoryHandler API de solo lectura de categorías.
type CategoryHandler struct {
	uc  *usecase.CategoryUseCase
	log *logger.Logger
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Produce      json
// @Param        search  query  string  false  "Subcadena del nombre"
// @Success      200  {array}   dto.CategoryResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("search"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Tree godoc
// @Summary      Raíces con hijos directos
// @Tags         categories
// @Produce      json
// @Success      200  {array}  dto.CategoryTreeResponse
// @Router       /api/categories/tree [get]
func (h *CategoryHandler) Tree(c *fiber.Ctx) error {
	out, err := h.uc.Roots(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener categoría por id o slug
// @Tags         categories
// @Produce      json
// @Param        id   path  string  true  "ID o slug"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Path godoc
// @Summary      Cadena raíz → categoría
// @Tags         categories
// @Produce      json
// @Param        id   path  string  true  "ID o slug"
// @Success      200  {object}  dto.CategoryPathResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/path [get]
func (h *CategoryHandler) Path(c *fiber.Ctx) error {
	out, err := h.uc.Path(c.UserContext(), c.Params("id"))
	if errors.Is(err, domain.ErrCategoryCycle) {
		h.log.Warn().Err(err).Str("request_id", requestID(c)).Msg("ciclo en la jerarquía de categorías")
		return c.JSON(out)
	}
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

package http

import (
	"mime"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/valve-catalog/internal/application/usecase"
	"github.com/jhoicas/valve-catalog/pkg/logger"
)

// DocumentHandler descarga de documentos y archivos de medios.
type DocumentHandler struct {
	uc  *usecase.DocumentUseCase
	log *logger.Logger
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *usecase.DocumentUseCase, log *logger.Logger) *DocumentHandler {
	return &DocumentHandler{uc: uc, log: log}
}

// Download godoc
// @Summary      Descargar documento técnico
// @Tags         documents
// @Security     Bearer
// @Produce      octet-stream
// @Param        id   path  string  true  "ID del documento"
// @Success      200
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /documents/{id}/download [get]
func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	dl, err := h.uc.Download(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Attachment(dl.Filename)
	if ext := extendedFilename(dl.Filename); ext != "" {
		c.Set(fiber.HeaderContentDisposition, string(c.Response().Header.Peek(fiber.HeaderContentDisposition))+"; "+ext)
	}
	return c.SendStream(dl.Body)
}

// Media sirve imágenes y archivos referenciados por el catálogo.
func (h *DocumentHandler) Media(c *fiber.Ctx) error {
	ref := c.Params("*")
	body, err := h.uc.Media(c.UserContext(), ref)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Type(path.Ext(ref))
	return c.SendStream(body)
}

// extendedFilename parámetro filename* (RFC 6266) para nombres no ASCII; "" si no hace falta.
func extendedFilename(name string) string {
	for i := 0; i < len(name); i++ {
		if name[i] >= utf8.RuneSelf {
			v := mime.FormatMediaType("attachment", map[string]string{"filename": name})
			return strings.TrimPrefix(v, "attachment; ")
		}
	}
	return ""
}

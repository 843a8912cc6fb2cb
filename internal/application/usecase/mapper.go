package usecase

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/jhoicas/valve-catalog/internal/application/dto"
	"github.com/jhoicas/valve-catalog/internal/domain/entity"
	"github.com/jhoicas/valve-catalog/pkg/i18n"
)

// Mapper convierte entidades en DTOs: URLs de medios, enlaces de descarga y etiquetas por idioma.
type Mapper struct {
	mediaBaseURL string
	labels       *i18n.Labels
}

// NewMapper construye el mapper. mediaBaseURL es el prefijo público del blob store (ej. /media/).
func NewMapper(mediaBaseURL string, labels *i18n.Labels) *Mapper {
	if labels == nil {
		labels = i18n.New("en")
	}
	return &Mapper{mediaBaseURL: mediaBaseURL, labels: labels}
}

// Labels tabla de etiquetas usada por el mapper.
func (m *Mapper) Labels() *i18n.Labels { return m.labels }

// MediaURL URL pública de una referencia del blob store; vacío si no hay referencia.
func (m *Mapper) MediaURL(ref string) string {
	if ref == "" {
		return ""
	}
	return strings.TrimSuffix(m.mediaBaseURL, "/") + "/" + strings.TrimPrefix(ref, "/")
}

// Category DTO plano de una categoría.
func (m *Mapper) Category(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	out := &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Image:       m.MediaURL(c.Image),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.ParentID != "" {
		parent := c.ParentID
		out.Parent = &parent
	}
	return out
}

// Categories DTOs planos en el mismo orden.
func (m *Mapper) Categories(list []*entity.Category) []dto.CategoryResponse {
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *m.Category(c))
	}
	return out
}

// Document DTO de un documento con la etiqueta de tipo en el idioma pedido.
func (m *Mapper) Document(d *entity.Document, locale language.Tag) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:          d.ID,
		Title:       d.Title,
		File:        d.Filename(),
		FileType:    string(d.FileType),
		TypeDisplay: m.labels.FileType(string(d.FileType), locale),
		Version:     d.Version,
		UploadedAt:  d.UploadedAt,
		DownloadURL: "/documents/" + d.ID + "/download",
	}
}

// Curve DTO de una curva.
func (m *Mapper) Curve(c *entity.PerformanceCurve) dto.PerformanceCurveResponse {
	return dto.PerformanceCurveResponse{ID: c.ID, CurveType: c.CurveType, DataPoints: c.DataPoints}
}

// Product DTO del grafo completo del producto.
func (m *Mapper) Product(
	p *entity.Product,
	category *entity.Category,
	docs []*entity.Document,
	curves []*entity.PerformanceCurve,
	locale language.Tag,
) dto.ProductResponse {
	out := dto.ProductResponse{
		ModelCode:         p.ModelCode,
		Series:            p.Series,
		Category:          m.Category(category),
		Description:       p.Description,
		Application:       p.Application,
		Cavity:            p.Cavity,
		Material:          p.Material,
		SchematicImage:    m.MediaURL(p.SchematicImage),
		ProductImage:      m.MediaURL(p.ProductImage),
		Specifications:    p.Specifications,
		MaxPressure:       numberOrNil(p.MaxPressure),
		MaxFlow:           numberOrNil(p.MaxFlow),
		IsActive:          p.IsActive,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
		Attachments:       make([]dto.DocumentResponse, 0, len(docs)),
		PerformanceCurves: make([]dto.PerformanceCurveResponse, 0, len(curves)),
	}
	for _, d := range docs {
		out.Attachments = append(out.Attachments, m.Document(d, locale))
	}
	for _, c := range curves {
		out.PerformanceCurves = append(out.PerformanceCurves, m.Curve(c))
	}
	return out
}

func numberOrNil(d decimal.NullDecimal) *json.Number {
	if !d.Valid {
		return nil
	}
	n := json.Number(d.Decimal.String())
	return &n
}

// Package pdf genera la ficha técnica de un producto.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Model code + serie  │  Categoría (miga de pan)     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Descripción / Aplicación                                   │
//	│  TABLA: parámetros tipados + specifications en orden        │
//	│  CURVAS: una tabla x | y por curva                          │
//	│  DOCUMENTOS: título, tipo, versión                          │
//	│  FOOTER: QR a la ficha web (opcional)                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/jhoicas/valve-catalog/internal/application/ports"
	"github.com/jhoicas/valve-catalog/internal/domain/entity"
	"github.com/jhoicas/valve-catalog/pkg/i18n"
)

var _ ports.DatasheetGenerator = (*MarotoDatasheetGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorBand    = &props.Color{Red: 230, Green: 236, Blue: 242}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoDatasheetGenerator implementa ports.DatasheetGenerator usando Maroto v2.
// La fuente helvetica solo cubre Latin-1, así que la ficha usa las etiquetas en inglés.
type MarotoDatasheetGenerator struct {
	labels    *i18n.Labels
	publicURL string // base pública del sitio para el QR; vacío = sin QR
}

// NewMarotoDatasheetGenerator construye el generador.
func NewMarotoDatasheetGenerator(labels *i18n.Labels, publicURL string) *MarotoDatasheetGenerator {
	if labels == nil {
		labels = i18n.New("en")
	}
	return &MarotoDatasheetGenerator{labels: labels, publicURL: strings.TrimSuffix(publicURL, "/")}
}

// GenerateDatasheet genera el PDF y devuelve sus bytes.
func (g *MarotoDatasheetGenerator) GenerateDatasheet(ctx context.Context, in ports.DatasheetInput) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := in.Product
	if p == nil {
		return nil, fmt.Errorf("pdf: producto vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(p.ModelCode+" datasheet", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(p, in.Breadcrumb))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.descriptionRows(p)...)

	m.AddRows(sectionRow(g.label("specifications")))
	m.AddRows(g.specRows(p)...)

	for _, c := range in.Curves {
		m.AddRows(sectionRow(fmt.Sprintf("%s: %s", g.label("curve_type"), c.CurveType)))
		m.AddRows(curveRows(c)...)
	}

	if len(in.Documents) > 0 {
		m.AddRows(sectionRow(g.label("document.title")))
		for _, d := range in.Documents {
			m.AddRows(kvRow(d.Title, strings.TrimSpace(g.fileType(d.FileType)+" "+d.Version), false))
		}
	}

	if g.publicURL != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(qrRow(g.publicURL + "/products/" + p.ModelCode))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ficha: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoDatasheetGenerator) label(field string) string {
	return g.labels.Label(field, language.English)
}

func (g *MarotoDatasheetGenerator) fileType(t entity.FileType) string {
	return g.labels.FileType(string(t), language.English)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: model code + serie (izq) y categoría (der).
func headerRow(p *entity.Product, breadcrumb string) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New(p.ModelCode, props.Text{
				Style: fontstyle.Bold, Size: 16, Color: colorPrimary, Top: 1,
			}),
			text.New(p.Series, props.Text{Size: 9, Top: 10, Color: colorGray}),
		),
		col.New(6).Add(
			text.New(breadcrumb, props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func (g *MarotoDatasheetGenerator) descriptionRows(p *entity.Product) []core.Row {
	var rows []core.Row
	if p.Description != "" {
		rows = append(rows, text.NewRow(10, p.Description, props.Text{Size: 9, Top: 2}))
	}
	if p.Application != "" {
		rows = append(rows, text.NewRow(8, g.label("application")+": "+p.Application,
			props.Text{Size: 8, Top: 1, Color: colorGray}))
	}
	return rows
}

// specRows: columnas tipadas primero, luego specifications en su orden original.
func (g *MarotoDatasheetGenerator) specRows(p *entity.Product) []core.Row {
	rows := []core.Row{
		kvRow(g.label("cavity"), p.Cavity, true),
		kvRow(g.label("material"), p.Material, false),
		kvRow(g.label("max_pressure"), nullable(p.MaxPressure), true),
		kvRow(g.label("max_flow"), nullable(p.MaxFlow), false),
	}
	for i, e := range p.Specifications.Entries() {
		rows = append(rows, kvRow(e.Key, e.Value.String(), i%2 == 0))
	}
	return rows
}

// curveRows: tabla x | y de una curva.
func curveRows(c *entity.PerformanceCurve) []core.Row {
	rows := []core.Row{
		row.New(6).Add(
			col.New(6).Add(text.New("x", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New("y", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1})),
		),
	}
	for _, pt := range c.DataPoints {
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(pt.X.String(), props.Text{Size: 8, Align: align.Center})),
			col.New(6).Add(text.New(pt.Y.String(), props.Text{Size: 8, Align: align.Center})),
		))
	}
	return rows
}

func sectionRow(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 3}),
	))
}

func kvRow(key, value string, banded bool) core.Row {
	r := row.New(6).Add(
		col.New(5).Add(text.New(key, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Left: 2})),
		col.New(7).Add(text.New(nonEmpty(value, "-"), props.Text{Size: 8, Top: 1})),
	)
	if banded {
		r.WithStyle(&props.Cell{BackgroundColor: colorBand})
	}
	return r
}

func qrRow(url string) core.Row {
	return row.New(35).Add(
		col.New(3).Add(code.NewQr(url, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(text.New(url, props.Text{Size: 8, Top: 14, Left: 3, Color: colorGray})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nullable(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

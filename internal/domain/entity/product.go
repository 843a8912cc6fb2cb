package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMaterial material asignado cuando no se informa uno.
const DefaultMaterial = "Steel"

// Product representa una válvula de cartucho del catálogo. ModelCode es la identidad (ej. CBEG-LJN).
// MaxPressure y MaxFlow son columnas numéricas tipadas; el resto de parámetros técnicos
// va en Specifications.
type Product struct {
	ModelCode      string
	Series         string
	CategoryID     string
	Description    string
	Application    string
	Cavity         string // ej. T-10A
	Material       string
	SchematicImage string
	ProductImage   string
	Specifications Specifications
	MaxPressure    decimal.NullDecimal
	MaxFlow        decimal.NullDecimal
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Label texto corto para autocompletado: "<model_code> - <series>".
func (p *Product) Label() string {
	return p.ModelCode + " - " + p.Series
}

// Touch marca la mutación; todo guardado debe pasar por aquí para mantener UpdatedAt.
func (p *Product) Touch(now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

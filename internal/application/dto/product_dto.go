package dto

import (
	"encoding/json"
	"time"

	"github.com/jhoicas/valve-catalog/internal/domain/entity"
)

// DocumentResponse documento técnico asociado a un producto.
type DocumentResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	File        string    `json:"file"` // solo el nombre; el contenido sale por DownloadURL
	FileType    string    `json:"file_type"`
	TypeDisplay string    `json:"type_display"`
	Version     string    `json:"version"`
	UploadedAt  time.Time `json:"uploaded_at"`
	DownloadURL string    `json:"download_url"`
}

// PerformanceCurveResponse curva con sus puntos (números JSON, sin pérdida).
type PerformanceCurveResponse struct {
	ID         string            `json:"id"`
	CurveType  string            `json:"curve_type"`
	DataPoints entity.DataPoints `json:"data_points"`
}

// ProductResponse producto con categoría embebida, documentos y curvas.
type ProductResponse struct {
	ModelCode         string                     `json:"model_code"`
	Series            string                     `json:"series"`
	Category          *CategoryResponse          `json:"category"`
	Description       string                     `json:"description"`
	Application       string                     `json:"application"`
	Cavity            string                     `json:"cavity"`
	Material          string                     `json:"material"`
	SchematicImage    string                     `json:"schematic_image"`
	ProductImage      string                     `json:"product_image"`
	Specifications    entity.Specifications      `json:"specifications"`
	MaxPressure       *json.Number               `json:"max_pressure"`
	MaxFlow           *json.Number               `json:"max_flow"`
	IsActive          bool                       `json:"is_active"`
	CreatedAt         time.Time                  `json:"created_at"`
	UpdatedAt         time.Time                  `json:"updated_at"`
	Attachments       []DocumentResponse         `json:"attachments"`
	PerformanceCurves []PerformanceCurveResponse `json:"performance_curves"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// Suggestion resultado mínimo de autocompletado.
type Suggestion struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/valve-catalog/internal/application/catalog"
	"github.com/jhoicas/valve-catalog/internal/domain"
	"github.com/jhoicas/valve-catalog/internal/domain/entity"
	"github.com/jhoicas/valve-catalog/internal/domain/repository"
)

// CatalogFile formato JSON de carga masiva del catálogo.
type CatalogFile struct {
	Categories []CategoryRecord `json:"categories"`
	Products   []ProductRecord  `json:"products"`
	Documents  []DocumentRecord `json:"documents"`
	Curves     []CurveRecord    `json:"curves"`
}

// CategoryRecord categoría a importar. Parent es el id o slug del padre.
type CategoryRecord struct {
	ID          string `json:"id"`
	Parent      string `json:"parent"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// ProductRecord producto a importar. Category es el id o slug de la categoría.
type ProductRecord struct {
	ModelCode      string                `json:"model_code"`
	Series         string                `json:"series"`
	Category       string                `json:"category"`
	Description    string                `json:"description"`
	Application    string                `json:"application"`
	Cavity         string                `json:"cavity"`
	Material       string                `json:"material"`
	SchematicImage string                `json:"schematic_image"`
	ProductImage   string                `json:"product_image"`
	Specifications entity.Specifications `json:"specifications"`
	MaxPressure    decimal.NullDecimal   `json:"max_pressure"`
	MaxFlow        decimal.NullDecimal   `json:"max_flow"`
	IsActive       *bool                 `json:"is_active"`
	CreatedAt      *time.Time            `json:"created_at"`
}

// DocumentRecord documento a importar con los productos a los que se vincula.
type DocumentRecord struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	File     string   `json:"file"`
	FileType string   `json:"file_type"`
	Version  string   `json:"version"`
	Products []string `json:"products"`
}

// CurveRecord curva de rendimiento a importar.
type CurveRecord struct {
	ID         string            `json:"id"`
	ModelCode  string            `json:"model_code"`
	CurveType  string            `json:"curve_type"`
	DataPoints entity.DataPoints `json:"data_points"`
}

// ImportResult conteo de registros creados.
type ImportResult struct {
	Categories int `json:"categories"`
	Products   int `json:"products"`
	Documents  int `json:"documents"`
	Curves     int `json:"curves"`
}

// ImportUseCase carga masiva del catálogo desde un archivo JSON.
type ImportUseCase struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	documents  repository.DocumentRepository
	curves     repository.PerformanceCurveRepository
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(
	categories repository.CategoryRepository,
	products repository.ProductRepository,
	documents repository.DocumentRepository,
	curves repository.PerformanceCurveRepository,
) *ImportUseCase {
	return &ImportUseCase{categories: categories, products: products, documents: documents, curves: curves}
}

// DecodeCatalogFile lee el JSON de carga.
func DecodeCatalogFile(r io.Reader) (*CatalogFile, error) {
	var f CatalogFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: archivo de catálogo: %v", domain.ErrInvalidInput, err)
	}
	return &f, nil
}

// Import crea categorías (padres antes que hijos), productos, documentos y curvas.
// Se detiene en el primer error; lo ya creado queda persistido.
func (uc *ImportUseCase) Import(ctx context.Context, f *CatalogFile) (*ImportResult, error) {
	res := &ImportResult{}
	if err := uc.importCategories(ctx, f.Categories, res); err != nil {
		return res, err
	}
	for _, rec := range f.Products {
		if rec.ModelCode == "" {
			return res, fmt.Errorf("%w: producto sin model_code", domain.ErrInvalidInput)
		}
		cat, err := catalog.ResolveCategory(ctx, uc.categories, rec.Category)
		if err != nil {
			return res, err
		}
		if cat == nil {
			return res, fmt.Errorf("%w: categoría %q del producto %s", domain.ErrInvalidInput, rec.Category, rec.ModelCode)
		}
		p := &entity.Product{
			ModelCode:      rec.ModelCode,
			Series:         rec.Series,
			CategoryID:     cat.ID,
			Description:    rec.Description,
			Application:    rec.Application,
			Cavity:         rec.Cavity,
			Material:       rec.Material,
			SchematicImage: rec.SchematicImage,
			ProductImage:   rec.ProductImage,
			Specifications: rec.Specifications,
			MaxPressure:    rec.MaxPressure,
			MaxFlow:        rec.MaxFlow,
			IsActive:       rec.IsActive == nil || *rec.IsActive,
		}
		if rec.CreatedAt != nil {
			p.CreatedAt = *rec.CreatedAt
		}
		if err := uc.products.Create(ctx, p); err != nil {
			return res, fmt.Errorf("producto %s: %w", rec.ModelCode, err)
		}
		res.Products++
	}
	for _, rec := range f.Documents {
		doc := &entity.Document{
			ID:       rec.ID,
			Title:    rec.Title,
			File:     rec.File,
			FileType: entity.FileType(rec.FileType),
			Version:  rec.Version,
		}
		if doc.ID == "" {
			doc.ID = uuid.New().String()
		}
		if doc.FileType == "" {
			doc.FileType = entity.FileTypeDatasheet
		}
		if !doc.FileType.Valid() {
			return res, fmt.Errorf("%w: tipo de archivo %q", domain.ErrInvalidInput, rec.FileType)
		}
		if err := uc.documents.Create(ctx, doc); err != nil {
			return res, fmt.Errorf("documento %s: %w", doc.ID, err)
		}
		for _, code := range rec.Products {
			if err := uc.documents.Link(ctx, code, doc.ID); err != nil {
				return res, err
			}
		}
		res.Documents++
	}
	for _, rec := range f.Curves {
		curve := &entity.PerformanceCurve{
			ID:         rec.ID,
			ModelCode:  rec.ModelCode,
			CurveType:  rec.CurveType,
			DataPoints: rec.DataPoints,
		}
		if curve.ID == "" {
			curve.ID = uuid.New().String()
		}
		if err := uc.curves.Create(ctx, curve); err != nil {
			return res, fmt.Errorf("curva %s: %w", curve.ID, err)
		}
		res.Curves++
	}
	return res, nil
}

// importCategories crea en pasadas sucesivas las categorías cuyo padre ya existe.
func (uc *ImportUseCase) importCategories(ctx context.Context, recs []CategoryRecord, res *ImportResult) error {
	pending := recs
	for len(pending) > 0 {
		var next []CategoryRecord
		for _, rec := range pending {
			parentID := ""
			if rec.Parent != "" {
				parent, err := catalog.ResolveCategory(ctx, uc.categories, rec.Parent)
				if err != nil {
					return err
				}
				if parent == nil {
					next = append(next, rec)
					continue
				}
				parentID = parent.ID
			}
			c := &entity.Category{
				ID:          rec.ID,
				ParentID:    parentID,
				Name:        rec.Name,
				Slug:        rec.Slug,
				Description: rec.Description,
				Image:       rec.Image,
			}
			if c.ID == "" {
				c.ID = uuid.New().String()
			}
			if c.Slug == "" {
				return fmt.Errorf("%w: categoría %q sin slug", domain.ErrInvalidInput, rec.Name)
			}
			if err := uc.categories.Create(ctx, c); err != nil {
				return fmt.Errorf("categoría %s: %w", c.Slug, err)
			}
			res.Categories++
		}
		if len(next) == len(pending) {
			return fmt.Errorf("%w: padre inexistente para %q", domain.ErrInvalidInput, next[0].Slug)
		}
		pending = next
	}
	return nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/text/language"

	"github.com/jhoicas/valve-catalog/internal/application/catalog"
	"github.com/jhoicas/valve-catalog/internal/application/dto"
	"github.com/jhoicas/valve-catalog/internal/application/ports"
	"github.com/jhoicas/valve-catalog/internal/domain"
	"github.com/jhoicas/valve-catalog/internal/domain/entity"
	"github.com/jhoicas/valve-catalog/internal/domain/repository"
)

// ProductUseCase casos de uso de lectura de productos.
type ProductUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	documents  repository.DocumentRepository
	curves     repository.PerformanceCurveRepository
	engine     *catalog.QueryEngine
	tree       *catalog.CategoryTree
	datasheet  ports.DatasheetGenerator
	mapper     *Mapper
}

// NewProductUseCase construye el caso de uso. datasheet puede ser nil (ficha PDF deshabilitada).
func NewProductUseCase(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	documents repository.DocumentRepository,
	curves repository.PerformanceCurveRepository,
	datasheet ports.DatasheetGenerator,
	mapper *Mapper,
) *ProductUseCase {
	return &ProductUseCase{
		products:   products,
		categories: categories,
		documents:  documents,
		curves:     curves,
		engine:     catalog.NewQueryEngine(products, categories),
		tree:       catalog.NewCategoryTree(categories),
		datasheet:  datasheet,
		mapper:     mapper,
	}
}

// Engine motor de consultas subyacente.
func (uc *ProductUseCase) Engine() *catalog.QueryEngine { return uc.engine }

// ProductDetail producto con su categoría y miga de pan.
type ProductDetail struct {
	Product    dto.ProductResponse
	Breadcrumb string
}

// Get devuelve el grafo completo de un producto por model_code.
func (uc *ProductUseCase) Get(ctx context.Context, modelCode string, locale language.Tag) (*ProductDetail, error) {
	p, err := uc.products.GetByModelCode(ctx, modelCode)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	cat, err := uc.categories.GetByID(ctx, p.CategoryID)
	if err != nil {
		return nil, err
	}
	docs, err := uc.documents.ListByProduct(ctx, p.ModelCode)
	if err != nil {
		return nil, err
	}
	curves, err := uc.curves.ListByProduct(ctx, p.ModelCode)
	if err != nil {
		return nil, err
	}
	detail := &ProductDetail{Product: uc.mapper.Product(p, cat, docs, curves, locale)}
	if cat != nil {
		path, err := uc.tree.PathFrom(ctx, cat)
		if err != nil && !errors.Is(err, domain.ErrCategoryCycle) {
			return nil, err
		}
		detail.Breadcrumb = catalog.Breadcrumb(path, catalog.BreadcrumbSeparator)
	}
	return detail, nil
}

// ProductList página ya mapeada junto con la consulta normalizada.
type ProductList struct {
	Response dto.ProductListResponse
	Query    catalog.ProductQuery
	Category *entity.Category
}

// List ejecuta la consulta y carga en lote categorías, documentos y curvas de la página.
func (uc *ProductUseCase) List(ctx context.Context, q catalog.ProductQuery, locale language.Tag) (*ProductList, error) {
	page, err := uc.engine.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	items, err := uc.expand(ctx, page.Items, locale)
	if err != nil {
		return nil, err
	}
	return &ProductList{
		Response: dto.ProductListResponse{
			Items: items,
			Page: dto.PageResponse{
				Page:     page.Page,
				PageSize: page.PageSize,
				Total:    page.Total,
				NumPages: page.NumPages(),
				HasNext:  page.HasNext(),
			},
		},
		Query:    q,
		Category: page.Category,
	}, nil
}

// Recent productos activos más recientes ya mapeados.
func (uc *ProductUseCase) Recent(ctx context.Context, n int, locale language.Tag) ([]dto.ProductResponse, error) {
	list, err := uc.engine.Recent(ctx, n)
	if err != nil {
		return nil, err
	}
	return uc.expand(ctx, list, locale)
}

// Suggest autocompletado por model_code.
func (uc *ProductUseCase) Suggest(ctx context.Context, q string) ([]dto.Suggestion, error) {
	return uc.engine.Suggest(ctx, q)
}

// Datasheet genera la ficha técnica en PDF. Devuelve el nombre de archivo sugerido.
func (uc *ProductUseCase) Datasheet(ctx context.Context, modelCode string) (string, []byte, error) {
	if uc.datasheet == nil {
		return "", nil, fmt.Errorf("%w: generador de fichas no configurado", domain.ErrNotFound)
	}
	p, err := uc.products.GetByModelCode(ctx, modelCode)
	if err != nil {
		return "", nil, err
	}
	if p == nil {
		return "", nil, domain.ErrNotFound
	}
	in := ports.DatasheetInput{Product: p}
	cat, err := uc.categories.GetByID(ctx, p.CategoryID)
	if err != nil {
		return "", nil, err
	}
	if cat != nil {
		path, err := uc.tree.PathFrom(ctx, cat)
		if err != nil && !errors.Is(err, domain.ErrCategoryCycle) {
			return "", nil, err
		}
		in.Breadcrumb = catalog.Breadcrumb(path, catalog.BreadcrumbSeparator)
	}
	if in.Documents, err = uc.documents.ListByProduct(ctx, p.ModelCode); err != nil {
		return "", nil, err
	}
	if in.Curves, err = uc.curves.ListByProduct(ctx, p.ModelCode); err != nil {
		return "", nil, err
	}
	pdf, err := uc.datasheet.GenerateDatasheet(ctx, in)
	if err != nil {
		return "", nil, fmt.Errorf("generar ficha %s: %w", p.ModelCode, err)
	}
	return p.ModelCode + "-datasheet.pdf", pdf, nil
}

func (uc *ProductUseCase) expand(ctx context.Context, list []*entity.Product, locale language.Tag) ([]dto.ProductResponse, error) {
	out := make([]dto.ProductResponse, 0, len(list))
	if len(list) == 0 {
		return out, nil
	}
	codes := make([]string, 0, len(list))
	catIDs := make(map[string]struct{}, len(list))
	for _, p := range list {
		codes = append(codes, p.ModelCode)
		catIDs[p.CategoryID] = struct{}{}
	}
	cats := make(map[string]*entity.Category, len(catIDs))
	for id := range catIDs {
		c, err := uc.categories.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		cats[id] = c
	}
	docs, err := uc.documents.ListByProducts(ctx, codes)
	if err != nil {
		return nil, err
	}
	curves, err := uc.curves.ListByProducts(ctx, codes)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		out = append(out, uc.mapper.Product(p, cats[p.CategoryID], docs[p.ModelCode], curves[p.ModelCode], locale))
	}
	return out, nil
}

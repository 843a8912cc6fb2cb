package catalog

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/valve-catalog/internal/application/dto"
	"github.com/jhoicas/valve-catalog/internal/domain/entity"
	"github.com/jhoicas/valve-catalog/internal/domain/repository"
)

const (
	// MinSuggestLen por debajo de este largo no se consulta el almacén.
	MinSuggestLen = 2
	// MaxSuggestions tope de resultados del autocompletado.
	MaxSuggestions = 10
)

// ProductPage resultado paginado. Total cuenta el conjunto filtrado antes de paginar.
type ProductPage struct {
	Items    []*entity.Product
	Total    int
	Page     int
	PageSize int
	Category *entity.Category // categoría resuelta, si se filtró por una
}

// NumPages número de páginas del conjunto filtrado.
func (p *ProductPage) NumPages() int {
	if p.Total == 0 || p.PageSize <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

// HasNext indica si existe una página posterior.
func (p *ProductPage) HasNext() bool {
	return p.Page < p.NumPages()
}

// QueryEngine motor de filtrado, búsqueda y paginación sobre el almacén del catálogo.
// No mantiene estado entre peticiones ni reintenta: los errores del almacén se propagan.
type QueryEngine struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

// NewQueryEngine construye el motor.
func NewQueryEngine(products repository.ProductRepository, categories repository.CategoryRepository) *QueryEngine {
	return &QueryEngine{products: products, categories: categories}
}

// Query ejecuta la consulta. Una página posterior a la última devuelve Items vacío, no error.
// Una categoría desconocida produce un resultado vacío.
func (e *QueryEngine) Query(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	page := &ProductPage{Items: []*entity.Product{}, Page: q.Page, PageSize: q.PageSize}

	filter := q.Filter
	if q.Category != "" {
		cat, err := ResolveCategory(ctx, e.categories, q.Category)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return page, nil
		}
		filter.CategoryID = cat.ID
		page.Category = cat
	}

	total, err := e.products.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page.Total = total
	// Se compara por número de página para no desbordar el offset con páginas enormes.
	if total == 0 || q.Page-1 > (total-1)/q.PageSize {
		return page, nil
	}

	items, err := e.products.Find(ctx, filter, repository.ListOptions{
		Sort:   q.Sort,
		Limit:  q.PageSize,
		Offset: (q.Page - 1) * q.PageSize,
	})
	if err != nil {
		return nil, err
	}
	if items != nil {
		page.Items = items
	}
	return page, nil
}

// Suggest autocompletado por subcadena del model_code, ordenado por model_code.
func (e *QueryEngine) Suggest(ctx context.Context, prefix string) ([]dto.Suggestion, error) {
	term := strings.TrimSpace(prefix)
	out := []dto.Suggestion{}
	if utf8.RuneCountInString(term) < MinSuggestLen {
		return out, nil
	}
	items, err := e.products.Find(ctx,
		repository.ProductFilter{ModelCodeContains: term},
		repository.ListOptions{Sort: repository.SortModelCodeAsc, Limit: MaxSuggestions},
	)
	if err != nil {
		return nil, err
	}
	for _, p := range items {
		out = append(out, dto.Suggestion{Value: p.ModelCode, Label: p.Label()})
	}
	return out, nil
}

// Recent productos activos más recientes (portada).
func (e *QueryEngine) Recent(ctx context.Context, n int) ([]*entity.Product, error) {
	active := true
	return e.products.Find(ctx,
		repository.ProductFilter{IsActive: &active},
		repository.ListOptions{Sort: repository.SortCreatedAtDesc, Limit: n},
	)
}

// ResolveCategory busca primero por slug y luego por id. Devuelve (nil, nil) si no existe.
func ResolveCategory(ctx context.Context, repo repository.CategoryRepository, ref string) (*entity.Category, error) {
	cat, err := repo.GetBySlug(ctx, ref)
	if err != nil || cat != nil {
		return cat, err
	}
	return repo.GetByID(ctx, ref)
}

package catalog

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/valve-catalog/internal/domain/repository"
)

// DefaultPageSize tamaño de página de referencia del catálogo.
const DefaultPageSize = 12

// QueryDefaults valores por defecto según el contexto del listado.
type QueryDefaults struct {
	Sort        repository.ProductSort
	PageSize    int
	MaxPageSize int
	OnlyActive  bool // el listado público solo muestra productos activos
}

// APIDefaults: orden por identidad, tamaño de página ajustable por el cliente.
var APIDefaults = QueryDefaults{
	Sort:        repository.SortModelCodeAsc,
	PageSize:    DefaultPageSize,
	MaxPageSize: 100,
}

// ListingDefaults: más recientes primero, página fija, solo activos.
var ListingDefaults = QueryDefaults{
	Sort:        repository.SortCreatedAtDesc,
	PageSize:    DefaultPageSize,
	MaxPageSize: DefaultPageSize,
	OnlyActive:  true,
}

// ProductQuery consulta ya normalizada. Category admite id o slug y la resuelve el motor.
type ProductQuery struct {
	Filter   repository.ProductFilter
	Category string
	Sort     repository.ProductSort
	Page     int
	PageSize int
	// Ignored parámetros descartados por tener un valor mal formado.
	Ignored []string
}

// ParseProductQuery traduce los parámetros del cliente. Un valor mal formado descarta
// solo ese filtro; nunca hace fallar la consulta.
func ParseProductQuery(params map[string]string, d QueryDefaults) ProductQuery {
	q := ProductQuery{Sort: d.Sort, Page: 1, PageSize: d.PageSize}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	get := func(key string) string { return strings.TrimSpace(params[key]) }

	q.Category = get("category")
	q.Filter.Series = get("series")
	q.Filter.Material = get("material")
	q.Filter.Cavity = get("cavity")

	if v := get("is_active"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			q.Filter.IsActive = &b
		} else {
			q.Ignored = append(q.Ignored, "is_active")
		}
	}
	if d.OnlyActive {
		active := true
		q.Filter.IsActive = &active
	}

	q.Filter.Search = get("q")
	if q.Filter.Search == "" {
		q.Filter.Search = get("search")
	}

	q.Filter.MaxPressureMin = parseThreshold(get("max_pressure_min"), "max_pressure_min", &q.Ignored)
	q.Filter.MaxFlowMin = parseThreshold(get("max_flow_min"), "max_flow_min", &q.Ignored)

	if v := get("ordering"); v != "" {
		if s, ok := repository.ParseProductSort(v); ok {
			q.Sort = s
		} else {
			q.Ignored = append(q.Ignored, "ordering")
		}
	}
	if v := get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			q.Page = n
		} else {
			q.Ignored = append(q.Ignored, "page")
		}
	}
	if v := get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			q.PageSize = n
		} else {
			q.Ignored = append(q.Ignored, "page_size")
		}
	}
	if d.MaxPageSize > 0 && q.PageSize > d.MaxPageSize {
		q.PageSize = d.MaxPageSize
	}
	return q
}

func parseThreshold(v, name string, ignored *[]string) decimal.NullDecimal {
	if v == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		*ignored = append(*ignored, name)
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/valve-catalog/internal/application/catalog"
	"github.com/jhoicas/valve-catalog/internal/domain/repository"
)

func TestParseProductQuery_Defaults(t *testing.T) {
	api := catalog.ParseProductQuery(nil, catalog.APIDefaults)
	assert.Equal(t, repository.SortModelCodeAsc, api.Sort)
	assert.Equal(t, 1, api.Page)
	assert.Equal(t, catalog.DefaultPageSize, api.PageSize)
	assert.Nil(t, api.Filter.IsActive)

	listing := catalog.ParseProductQuery(nil, catalog.ListingDefaults)
	assert.Equal(t, repository.SortCreatedAtDesc, listing.Sort)
	require.NotNil(t, listing.Filter.IsActive)
	assert.True(t, *listing.Filter.IsActive)
}

func TestParseProductQuery_TodosLosFiltros(t *testing.T) {
	q := catalog.ParseProductQuery(map[string]string{
		"category":         "counterbalance",
		"series":           "Series 1",
		"material":         "Steel",
		"cavity":           "T-2A",
		"is_active":        "false",
		"search":           " valve ",
		"max_pressure_min": "350.5",
		"max_flow_min":     "60",
		"ordering":         "-model_code",
		"page":             "3",
		"page_size":        "20",
	}, catalog.APIDefaults)

	assert.Empty(t, q.Ignored)
	assert.Equal(t, "counterbalance", q.Category)
	assert.Equal(t, "Series 1", q.Filter.Series)
	assert.Equal(t, "Steel", q.Filter.Material)
	assert.Equal(t, "T-2A", q.Filter.Cavity)
	require.NotNil(t, q.Filter.IsActive)
	assert.False(t, *q.Filter.IsActive)
	assert.Equal(t, "valve", q.Filter.Search)
	assert.True(t, q.Filter.MaxPressureMin.Decimal.Equal(decimal.RequireFromString("350.5")))
	assert.True(t, q.Filter.MaxFlowMin.Valid)
	assert.Equal(t, repository.SortModelCodeDesc, q.Sort)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 20, q.PageSize)
}

func TestParseProductQuery_QTienePrioridadSobreSearch(t *testing.T) {
	q := catalog.ParseProductQuery(map[string]string{"q": "cbeg", "search": "otro"}, catalog.APIDefaults)
	assert.Equal(t, "cbeg", q.Filter.Search)
}

func TestParseProductQuery_ValoresMalFormados(t *testing.T) {
	q := catalog.ParseProductQuery(map[string]string{
		"is_active":        "quizas",
		"max_pressure_min": "mucho",
		"max_flow_min":     "1e",
		"ordering":         "price",
		"page":             "-1",
		"page_size":        "x",
	}, catalog.APIDefaults)

	assert.ElementsMatch(t, []string{"is_active", "max_pressure_min", "max_flow_min", "ordering", "page", "page_size"}, q.Ignored)
	assert.Nil(t, q.Filter.IsActive)
	assert.False(t, q.Filter.MaxPressureMin.Valid)
	assert.Equal(t, repository.SortModelCodeAsc, q.Sort)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, catalog.DefaultPageSize, q.PageSize)
}

func TestParseProductQuery_TopeDePagina(t *testing.T) {
	q := catalog.ParseProductQuery(map[string]string{"page_size": "5000"}, catalog.APIDefaults)
	assert.Equal(t, 100, q.PageSize)

	q = catalog.ParseProductQuery(map[string]string{"page_size": "50", "is_active": "false"}, catalog.ListingDefaults)
	assert.Equal(t, catalog.DefaultPageSize, q.PageSize, "el listado usa página fija")
	assert.True(t, *q.Filter.IsActive, "el listado fuerza activos")
}

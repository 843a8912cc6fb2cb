package repository_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/valve-catalog/internal/domain/entity"
	"github.com/jhoicas/valve-catalog/internal/domain/repository"
)

func nullDec(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

func TestProductFilter_Matches(t *testing.T) {
	active := true
	p := &entity.Product{
		ModelCode:   "CBEG-LJN",
		Series:      "Series 1",
		CategoryID:  "cat-1",
		Description: "Counterbalance valve",
		Application: "Mobile cranes",
		Cavity:      "T-11A",
		Material:    "Steel",
		MaxPressure: nullDec(5000),
		IsActive:    true,
	}

	cases := []struct {
		name   string
		filter repository.ProductFilter
		want   bool
	}{
		{"vacío", repository.ProductFilter{}, true},
		{"categoría exacta", repository.ProductFilter{CategoryID: "cat-1"}, true},
		{"otra categoría", repository.ProductFilter{CategoryID: "cat-2"}, false},
		{"igualdades AND", repository.ProductFilter{Series: "Series 1", Cavity: "T-11A", IsActive: &active}, true},
		{"material distinto", repository.ProductFilter{Material: "Aluminum"}, false},
		{"búsqueda en descripción", repository.ProductFilter{Search: "COUNTERBAL"}, true},
		{"búsqueda en aplicación", repository.ProductFilter{Search: "crane"}, true},
		{"búsqueda sin coincidencia", repository.ProductFilter{Search: "solenoid"}, false},
		{"búsqueda estrecha igualdad", repository.ProductFilter{Series: "Series 2", Search: "cbeg"}, false},
		{"umbral presión cumple", repository.ProductFilter{MaxPressureMin: nullDec(5000)}, true},
		{"umbral presión no cumple", repository.ProductFilter{MaxPressureMin: nullDec(5001)}, false},
		{"umbral caudal con NULL", repository.ProductFilter{MaxFlowMin: nullDec(0)}, false},
		{"autocompletado", repository.ProductFilter{ModelCodeContains: "ljn"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.filter.Matches(p))
		})
	}
}

func TestProductSort_OrdenTotal(t *testing.T) {
	now := time.Now()
	a := &entity.Product{ModelCode: "A", CreatedAt: now}
	b := &entity.Product{ModelCode: "B", CreatedAt: now}
	c := &entity.Product{ModelCode: "C", CreatedAt: now.Add(time.Minute)}

	assert.True(t, repository.SortCreatedAtDesc.Less(c, a))
	assert.True(t, repository.SortCreatedAtDesc.Less(a, b), "empate en created_at se resuelve por model_code")
	assert.False(t, repository.SortCreatedAtDesc.Less(b, a))
	assert.True(t, repository.SortModelCodeDesc.Less(b, a))
	assert.True(t, repository.SortCreatedAtAsc.Less(a, c))
}

func TestParseProductSort(t *testing.T) {
	s, ok := repository.ParseProductSort("-created_at")
	assert.True(t, ok)
	assert.Equal(t, repository.SortCreatedAtDesc, s)
	assert.Equal(t, "-created_at", s.String())

	_, ok = repository.ParseProductSort("price")
	assert.False(t, ok)
}

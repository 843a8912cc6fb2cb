package repository

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/valve-catalog/internal/domain/entity"
)

// ProductFilter predicado combinado sobre productos. Los campos vacíos no filtran.
// Igualdades y umbrales se combinan con AND; Search es un OR sobre
// model_code, description, series y application.
type ProductFilter struct {
	CategoryID        string
	Series            string
	Material          string
	Cavity            string
	IsActive          *bool
	Search            string
	ModelCodeContains string
	MaxPressureMin    decimal.NullDecimal
	MaxFlowMin        decimal.NullDecimal
}

// Matches evalúa el predicado en memoria con la misma semántica que el adaptador SQL.
func (f ProductFilter) Matches(p *entity.Product) bool {
	if f.CategoryID != "" && p.CategoryID != f.CategoryID {
		return false
	}
	if f.Series != "" && p.Series != f.Series {
		return false
	}
	if f.Material != "" && p.Material != f.Material {
		return false
	}
	if f.Cavity != "" && p.Cavity != f.Cavity {
		return false
	}
	if f.IsActive != nil && p.IsActive != *f.IsActive {
		return false
	}
	if !atLeast(p.MaxPressure, f.MaxPressureMin) || !atLeast(p.MaxFlow, f.MaxFlowMin) {
		return false
	}
	if f.ModelCodeContains != "" && !ContainsFold(p.ModelCode, f.ModelCodeContains) {
		return false
	}
	if f.Search != "" {
		return ContainsFold(p.ModelCode, f.Search) ||
			ContainsFold(p.Description, f.Search) ||
			ContainsFold(p.Series, f.Search) ||
			ContainsFold(p.Application, f.Search)
	}
	return true
}

// atLeast: un valor NULL nunca satisface un umbral.
func atLeast(v, min decimal.NullDecimal) bool {
	if !min.Valid {
		return true
	}
	return v.Valid && v.Decimal.GreaterThanOrEqual(min.Decimal)
}

// ContainsFold subcadena sin distinguir mayúsculas (case folding Unicode).
func ContainsFold(s, substr string) bool {
	fold := cases.Fold()
	return strings.Contains(fold.String(s), fold.String(substr))
}

// ProductSort orden total de listados; los empates se resuelven por model_code.
type ProductSort int

const (
	SortModelCodeAsc ProductSort = iota
	SortModelCodeDesc
	SortCreatedAtAsc
	SortCreatedAtDesc
)

// ParseProductSort interpreta el parámetro ordering (model_code, -model_code, created_at, -created_at).
func ParseProductSort(s string) (ProductSort, bool) {
	switch strings.TrimSpace(s) {
	case "model_code":
		return SortModelCodeAsc, true
	case "-model_code":
		return SortModelCodeDesc, true
	case "created_at":
		return SortCreatedAtAsc, true
	case "-created_at":
		return SortCreatedAtDesc, true
	}
	return SortModelCodeAsc, false
}

// String forma canónica del parámetro ordering.
func (s ProductSort) String() string {
	switch s {
	case SortModelCodeDesc:
		return "-model_code"
	case SortCreatedAtAsc:
		return "created_at"
	case SortCreatedAtDesc:
		return "-created_at"
	default:
		return "model_code"
	}
}

// Less comparador total coherente con el ORDER BY del adaptador SQL.
func (s ProductSort) Less(a, b *entity.Product) bool {
	switch s {
	case SortModelCodeDesc:
		return a.ModelCode > b.ModelCode
	case SortCreatedAtAsc:
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
	case SortCreatedAtDesc:
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
	}
	return a.ModelCode < b.ModelCode
}

// ListOptions orden y ventana de resultados.
type ListOptions struct {
	Sort   ProductSort
	Limit  int
	Offset int
}

package postgres

import (
	"fmt"
	"strings"

	"github.com/jhoicas/valve-catalog/internal/domain/repository"
)

// sqlArgs acumula argumentos posicionales ($1, $2, ...).
type sqlArgs []any

func (a *sqlArgs) add(v any) string {
	*a = append(*a, v)
	return fmt.Sprintf("$%d", len(*a))
}

// productWhere traduce ProductFilter a una cláusula WHERE con la misma semántica que Matches.
// Un umbral sobre una columna NULL nunca se cumple (NULL >= x es NULL).
func productWhere(f repository.ProductFilter, args *sqlArgs) string {
	var conds []string
	if f.CategoryID != "" {
		conds = append(conds, "category_id = "+args.add(f.CategoryID))
	}
	if f.Series != "" {
		conds = append(conds, "series = "+args.add(f.Series))
	}
	if f.Material != "" {
		conds = append(conds, "material = "+args.add(f.Material))
	}
	if f.Cavity != "" {
		conds = append(conds, "cavity = "+args.add(f.Cavity))
	}
	if f.IsActive != nil {
		conds = append(conds, "is_active = "+args.add(*f.IsActive))
	}
	if f.MaxPressureMin.Valid {
		conds = append(conds, "max_pressure >= "+args.add(f.MaxPressureMin.Decimal))
	}
	if f.MaxFlowMin.Valid {
		conds = append(conds, "max_flow >= "+args.add(f.MaxFlowMin.Decimal))
	}
	if f.ModelCodeContains != "" {
		conds = append(conds, `model_code ILIKE `+args.add(containsPattern(f.ModelCodeContains))+` ESCAPE '\'`)
	}
	if f.Search != "" {
		p := args.add(containsPattern(f.Search))
		conds = append(conds, fmt.Sprintf(
			`(model_code ILIKE %[1]s ESCAPE '\' OR description ILIKE %[1]s ESCAPE '\' OR series ILIKE %[1]s ESCAPE '\' OR application ILIKE %[1]s ESCAPE '\')`, p))
	}
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

// productOrderBy orden total; model_code con collation "C" para coincidir con el orden por bytes.
func productOrderBy(s repository.ProductSort) string {
	switch s {
	case repository.SortModelCodeDesc:
		return ` ORDER BY model_code COLLATE "C" DESC`
	case repository.SortCreatedAtAsc:
		return ` ORDER BY created_at ASC, model_code COLLATE "C" ASC`
	case repository.SortCreatedAtDesc:
		return ` ORDER BY created_at DESC, model_code COLLATE "C" ASC`
	default:
		return ` ORDER BY model_code COLLATE "C" ASC`
	}
}

// pageClause LIMIT/OFFSET; Limit 0 no limita.
func pageClause(opts repository.ListOptions, args *sqlArgs) string {
	var b strings.Builder
	if opts.Limit > 0 {
		b.WriteString(" LIMIT " + args.add(opts.Limit))
	}
	if opts.Offset > 0 {
		b.WriteString(" OFFSET " + args.add(opts.Offset))
	}
	return b.String()
}

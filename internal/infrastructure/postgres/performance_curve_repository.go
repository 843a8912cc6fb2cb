package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/valve-catalog/internal/domain"
	"github.com/jhoicas/valve-catalog/internal/domain/entity"
	"github.com/jhoicas/valve-catalog/internal/domain/repository"
)

var _ repository.PerformanceCurveRepository = (*CurveRepo)(nil)

// CurveRepo curvas de rendimiento; data_points es json con números sin pérdida.
type CurveRepo struct {
	q Querier
}

// NewCurveRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCurveRepository(q Querier) *CurveRepo {
	return &CurveRepo{q: q}
}

// Create persiste una curva.
func (r *CurveRepo) Create(ctx context.Context, c *entity.PerformanceCurve) error {
	points, err := json.Marshal(c.DataPoints)
	if err != nil {
		return fmt.Errorf("%w: data_points: %v", domain.ErrInvalidInput, err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO performance_curves (id, model_code, curve_type, data_points) VALUES ($1, $2, $3, $4)`,
		c.ID, c.ModelCode, c.CurveType, string(points),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto %q inexistente", domain.ErrInvalidInput, c.ModelCode)
		}
		return storeErr("insert curve", err)
	}
	return nil
}

// Delete elimina una curva.
func (r *CurveRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM performance_curves WHERE id = $1`, id); err != nil {
		return storeErr("delete curve", err)
	}
	return nil
}

// ListByProduct curvas del producto en orden de alta.
func (r *CurveRepo) ListByProduct(ctx context.Context, modelCode string) ([]*entity.PerformanceCurve, error) {
	byProduct, err := r.ListByProducts(ctx, []string{modelCode})
	if err != nil {
		return nil, err
	}
	if list := byProduct[modelCode]; list != nil {
		return list, nil
	}
	return []*entity.PerformanceCurve{}, nil
}

// ListByProducts curvas de varios productos en una consulta.
func (r *CurveRepo) ListByProducts(ctx context.Context, modelCodes []string) (map[string][]*entity.PerformanceCurve, error) {
	out := make(map[string][]*entity.PerformanceCurve, len(modelCodes))
	if len(modelCodes) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, model_code, curve_type, data_points FROM performance_curves
		WHERE model_code = ANY($1) ORDER BY model_code, seq`, modelCodes)
	if err != nil {
		return nil, storeErr("list curves", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c entity.PerformanceCurve
		var points []byte
		if err := rows.Scan(&c.ID, &c.ModelCode, &c.CurveType, &points); err != nil {
			return nil, fmt.Errorf("scan curve: %w", err)
		}
		if err := json.Unmarshal(points, &c.DataPoints); err != nil {
			return nil, fmt.Errorf("%w: data_points de %s: %v", errCorruptRow, c.ID, err)
		}
		out[c.ModelCode] = append(out[c.ModelCode], &c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list curves", err)
	}
	return out, nil
}

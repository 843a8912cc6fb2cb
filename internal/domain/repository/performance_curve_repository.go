package repository

import (
	"context"

	"github.com/jhoicas/valve-catalog/internal/domain/entity"
)

// PerformanceCurveRepository persistencia de curvas de rendimiento (1:N con Product).
type PerformanceCurveRepository interface {
	Create(ctx context.Context, curve *entity.PerformanceCurve) error
	Delete(ctx context.Context, id string) error
	ListByProduct(ctx context.Context, modelCode string) ([]*entity.PerformanceCurve, error)
	ListByProducts(ctx context.Context, modelCodes []string) (map[string][]*entity.PerformanceCurve, error)
}

package repository

import (
	"context"

	"github.com/jhoicas/valve-catalog/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	GetByModelCode(ctx context.Context, modelCode string) (*entity.Product, error)
	// Find aplica el filtro con orden total y paginación por limit/offset (limit 0 = sin límite).
	Find(ctx context.Context, filter ProductFilter, opts ListOptions) ([]*entity.Product, error)
	Count(ctx context.Context, filter ProductFilter) (int, error)
	// Delete elimina el producto, sus curvas y sus vínculos con documentos.
	Delete(ctx context.Context, modelCode string) error
}

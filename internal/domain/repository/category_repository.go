package repository

import (
	"context"

	"github.com/jhoicas/valve-catalog/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Get* devuelve (nil, nil) cuando no existe.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	Update(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	// List devuelve todas las categorías ordenadas por nombre; nameContains filtra sin distinguir mayúsculas.
	List(ctx context.Context, nameContains string) ([]*entity.Category, error)
	// ListByParent devuelve los hijos directos; parentID vacío devuelve las raíces.
	ListByParent(ctx context.Context, parentID string) ([]*entity.Category, error)
	// ListByParents devuelve los hijos directos de varios padres en una sola consulta.
	ListByParents(ctx context.Context, parentIDs []string) ([]*entity.Category, error)
	// Delete elimina la categoría, sus descendientes y los productos que las referencian.
	Delete(ctx context.Context, id string) error
}

package ports

import (
	"context"

	"github.com/jhoicas/valve-catalog/internal/domain/repository"
)

// CatalogTxRunner ejecuta fn dentro de una transacción del almacén con repositorios atados a ella.
type CatalogTxRunner interface {
	Run(ctx context.Context, fn func(
		categoryRepo repository.CategoryRepository,
		productRepo repository.ProductRepository,
	) error) error
}

package ports

import (
	"context"

	"github.com/jhoicas/valve-catalog/internal/domain/entity"
)

// DatasheetInput datos necesarios para la ficha técnica de un producto.
type DatasheetInput struct {
	Product    *entity.Product
	Breadcrumb string
	Documents  []*entity.Document
	Curves     []*entity.PerformanceCurve
}

// DatasheetGenerator genera la ficha técnica en PDF y devuelve sus bytes.
type DatasheetGenerator interface {
	GenerateDatasheet(ctx context.Context, in DatasheetInput) ([]byte, error)
}

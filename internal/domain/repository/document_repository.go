package repository

import (
	"context"

	"github.com/jhoicas/valve-catalog/internal/domain/entity"
)

// DocumentRepository persistencia de documentos técnicos y su relación N:M con productos.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	// GetByFile documento dueño de la referencia del blob store, sin distinguir mayúsculas.
	GetByFile(ctx context.Context, ref string) (*entity.Document, error)
	Delete(ctx context.Context, id string) error
	// Link agrega el documento al final de la lista del producto (idempotente).
	Link(ctx context.Context, modelCode, documentID string) error
	Unlink(ctx context.Context, modelCode, documentID string) error
	ListByProduct(ctx context.Context, modelCode string) ([]*entity.Document, error)
	ListByProducts(ctx context.Context, modelCodes []string) (map[string][]*entity.Document, error)
}

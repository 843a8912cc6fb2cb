package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/jhoicas/valve-catalog/internal/application/ports"
	"github.com/jhoicas/valve-catalog/internal/domain"
	"github.com/jhoicas/valve-catalog/internal/domain/entity"
	"github.com/jhoicas/valve-catalog/internal/domain/repository"
)

// Download archivo listo para transmitir. El llamador debe cerrar Body.
type Download struct {
	Filename string
	Body     io.ReadCloser
}

// DocumentUseCase descarga de documentos técnicos y medios desde el blob store.
type DocumentUseCase struct {
	documents repository.DocumentRepository
	blobs     ports.BlobStore
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(documents repository.DocumentRepository, blobs ports.BlobStore) *DocumentUseCase {
	return &DocumentUseCase{documents: documents, blobs: blobs}
}

// Download abre el archivo del documento. domain.ErrNotFound si el documento no existe;
// domain.ErrFileMissing si existe pero su archivo no está en el blob store.
func (uc *DocumentUseCase) Download(ctx context.Context, id string) (*Download, error) {
	doc, err := uc.documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if doc.File == "" {
		return nil, fmt.Errorf("%w: documento %s sin archivo", domain.ErrFileMissing, id)
	}
	body, err := uc.blobs.Open(ctx, doc.File)
	if err != nil {
		return nil, err
	}
	return &Download{Filename: doc.Filename(), Body: body}, nil
}

// mediaExtensions extensiones servidas por /media; los documentos solo salen por Download.
var mediaExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// Media abre una imagen del blob store (productos y categorías). Cualquier otra referencia,
// o una que pertenezca a un documento, responde domain.ErrNotFound.
func (uc *DocumentUseCase) Media(ctx context.Context, ref string) (io.ReadCloser, error) {
	name := entity.CleanRef(ref)
	if name == "" || !mediaExtensions[strings.ToLower(path.Ext(name))] {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, ref)
	}
	doc, err := uc.documents.GetByFile(ctx, name)
	if err != nil {
		return nil, err
	}
	if doc != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, ref)
	}
	body, err := uc.blobs.Open(ctx, name)
	if errors.Is(err, domain.ErrFileMissing) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, ref)
	}
	return body, err
}

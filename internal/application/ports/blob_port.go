package ports

import (
	"context"
	"io"
)

// BlobStore almacenamiento de archivos (imágenes, fichas, PDFs) direccionado por referencia.
// Open devuelve domain.ErrFileMissing si la referencia no existe.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader) (ref string, err error)
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
	Exists(ctx context.Context, ref string) (bool, error)
}

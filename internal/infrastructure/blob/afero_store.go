package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"

	"github.com/spf13/afero"

	"github.com/jhoicas/valve-catalog/internal/application/ports"
	"github.com/jhoicas/valve-catalog/internal/domain"
	"github.com/jhoicas/valve-catalog/internal/domain/entity"
)

var _ ports.BlobStore = (*AferoStore)(nil)

// AferoStore blob store sobre un afero.Fs. Las referencias son rutas relativas con "/".
type AferoStore struct {
	fs afero.Fs
}

// NewAferoStore envuelve un afero.Fs (MemMapFs en tests).
func NewAferoStore(fsys afero.Fs) *AferoStore {
	return &AferoStore{fs: fsys}
}

// NewOSStore blob store en disco confinado a root.
func NewOSStore(root string) (*AferoStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("blob store %s: %w: %w", root, domain.ErrStoreUnavailable, err)
	}
	return NewAferoStore(afero.NewBasePathFs(afero.NewOsFs(), root)), nil
}

// Put escribe el contenido bajo key y devuelve la referencia normalizada.
func (s *AferoStore) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ref, err := clean(key)
	if err != nil {
		return "", err
	}
	if dir := path.Dir(ref); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("blob put %s: %w: %w", ref, domain.ErrStoreUnavailable, err)
		}
	}
	f, err := s.fs.Create(ref)
	if err != nil {
		return "", fmt.Errorf("blob put %s: %w: %w", ref, domain.ErrStoreUnavailable, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("blob put %s: %w", ref, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("blob put %s: %w", ref, err)
	}
	return ref, nil
}

// Open abre la referencia. domain.ErrFileMissing si no existe o es un directorio.
func (s *AferoStore) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, err := clean(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrFileMissing, ref)
	}
	info, err := s.fs.Stat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileMissing, name)
		}
		return nil, fmt.Errorf("blob open %s: %w: %w", name, domain.ErrStoreUnavailable, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", domain.ErrFileMissing, name)
	}
	f, err := s.fs.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileMissing, name)
		}
		return nil, fmt.Errorf("blob open %s: %w: %w", name, domain.ErrStoreUnavailable, err)
	}
	return f, nil
}

// Exists indica si la referencia apunta a un archivo.
func (s *AferoStore) Exists(ctx context.Context, ref string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	name, err := clean(ref)
	if err != nil {
		return false, nil
	}
	info, err := s.fs.Stat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("blob stat %s: %w: %w", name, domain.ErrStoreUnavailable, err)
	}
	return !info.IsDir(), nil
}

// clean normaliza la referencia y rechaza rutas que salgan de la raíz.
func clean(ref string) (string, error) {
	p := entity.CleanRef(ref)
	if p == "" {
		return "", fmt.Errorf("%w: referencia vacía", domain.ErrInvalidInput)
	}
	return p, nil
}

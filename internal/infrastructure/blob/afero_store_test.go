package blob_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/valve-catalog/internal/domain"
	"github.com/jhoicas/valve-catalog/internal/infrastructure/blob"
)

func TestAferoStore_PutOpen(t *testing.T) {
	ctx := context.Background()
	store := blob.NewAferoStore(afero.NewMemMapFs())

	ref, err := store.Put(ctx, "docs/cbeg.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "docs/cbeg.pdf", ref)

	rc, err := store.Open(ctx, ref)
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(body))

	ok, err := store.Exists(ctx, "/docs/cbeg.pdf")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAferoStore_ArchivoFaltante(t *testing.T) {
	ctx := context.Background()
	store := blob.NewAferoStore(afero.NewMemMapFs())

	_, err := store.Open(ctx, "docs/nada.pdf")
	assert.ErrorIs(t, err, domain.ErrFileMissing)

	_, err = store.Put(ctx, "docs/a.pdf", bytes.NewReader(nil))
	require.NoError(t, err)
	_, err = store.Open(ctx, "docs")
	assert.ErrorIs(t, err, domain.ErrFileMissing, "un directorio no es un archivo")

	ok, err := store.Exists(ctx, "docs/nada.pdf")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAferoStore_RutaNoEscapaDeLaRaiz(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	store := blob.NewAferoStore(fsys)

	ref, err := store.Put(ctx, "../../etc/passwd", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "etc/passwd", ref)

	_, err = store.Put(ctx, "..", strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Package testutil arma catálogos de prueba sobre el almacén en memoria.
package testutil

import (
	"bytes"
	"context"
	_ "embed"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/valve-catalog/internal/application/usecase"
	"github.com/jhoicas/valve-catalog/internal/infrastructure/blob"
	"github.com/jhoicas/valve-catalog/internal/infrastructure/memory"
)

//go:embed catalog.json
var catalogJSON []byte

// Clock instante fijo usado como updated_at en los fixtures.
var Clock = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// DatasheetBytes contenido del blob de docs/cbeg-ljn.pdf.
var DatasheetBytes = []byte("%PDF-1.4 cbeg datasheet")

// Fixture catálogo de prueba cargado y su blob store.
type Fixture struct {
	Store *memory.Catalog
	Blobs *blob.AferoStore
}

// NewFixture carga catalog.json en un almacén nuevo. docs/missing.pdf queda sin blob a propósito.
func NewFixture(t *testing.T) *Fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewCatalog().WithClock(func() time.Time { return Clock })
	f, err := usecase.DecodeCatalogFile(bytes.NewReader(catalogJSON))
	require.NoError(t, err)
	_, err = usecase.NewImportUseCase(store.Categories(), store.Products(), store.Documents(), store.Curves()).Import(ctx, f)
	require.NoError(t, err)

	blobs := blob.NewAferoStore(afero.NewMemMapFs())
	_, err = blobs.Put(ctx, "docs/cbeg-ljn.pdf", bytes.NewReader(DatasheetBytes))
	require.NoError(t, err)
	_, err = blobs.Put(ctx, "docs/cbeg-ljn.dwg", bytes.NewReader([]byte("DWG")))
	require.NoError(t, err)
	_, err = blobs.Put(ctx, "products/cbeg-ljn.png", bytes.NewReader([]byte("PNG")))
	require.NoError(t, err)
	return &Fixture{Store: store, Blobs: blobs}
}

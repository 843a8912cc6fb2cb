package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/valve-catalog/internal/domain"
	"github.com/jhoicas/valve-catalog/internal/domain/entity"
	"github.com/jhoicas/valve-catalog/internal/domain/repository"
	"github.com/jhoicas/valve-catalog/internal/infrastructure/memory"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// seedTree crea Load Holding > Counterbalance > Standard, un producto en la hoja,
// una curva y un documento vinculado.
func seedTree(t *testing.T) *memory.Catalog {
	t.Helper()
	ctx := context.Background()
	store := memory.NewCatalog().WithClock(func() time.Time { return t0 })
	cats := store.Categories()
	require.NoError(t, cats.Create(ctx, &entity.Category{ID: "root", Name: "Load Holding", Slug: "load-holding"}))
	require.NoError(t, cats.Create(ctx, &entity.Category{ID: "mid", ParentID: "root", Name: "Counterbalance", Slug: "counterbalance"}))
	require.NoError(t, cats.Create(ctx, &entity.Category{ID: "leaf", ParentID: "mid", Name: "Standard", Slug: "standard"}))
	require.NoError(t, cats.Create(ctx, &entity.Category{ID: "other", Name: "Flow Control", Slug: "flow-control"}))

	prods := store.Products()
	require.NoError(t, prods.Create(ctx, &entity.Product{
		ModelCode: "CBEG-LJN", Series: "Series 1", CategoryID: "leaf", IsActive: true,
		MaxPressure: decimal.NewNullDecimal(decimal.NewFromInt(350)),
	}))
	require.NoError(t, prods.Create(ctx, &entity.Product{ModelCode: "FCEG-XAN", Series: "Series 2", CategoryID: "other", IsActive: true}))

	require.NoError(t, store.Curves().Create(ctx, &entity.PerformanceCurve{
		ID: "curve-1", ModelCode: "CBEG-LJN", CurveType: "pressure_drop",
		DataPoints: entity.DataPoints{entity.Point(0, 0), entity.Point(10, 12.5)},
	}))
	docs := store.Documents()
	require.NoError(t, docs.Create(ctx, &entity.Document{ID: "doc-1", Title: "CBEG datasheet", File: "docs/cbeg.pdf"}))
	require.NoError(t, docs.Link(ctx, "CBEG-LJN", "doc-1"))
	require.NoError(t, docs.Link(ctx, "FCEG-XAN", "doc-1"))
	return store
}

func TestCategoryDelete_CascadaDescendientesYProductos(t *testing.T) {
	ctx := context.Background()
	store := seedTree(t)

	require.NoError(t, store.Categories().Delete(ctx, "root"))

	for _, id := range []string{"root", "mid", "leaf"} {
		c, err := store.Categories().GetByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, c, "la categoría %s debe desaparecer", id)
	}
	p, err := store.Products().GetByModelCode(ctx, "CBEG-LJN")
	require.NoError(t, err)
	assert.Nil(t, p)

	curves, err := store.Curves().ListByProduct(ctx, "CBEG-LJN")
	require.NoError(t, err)
	assert.Empty(t, curves)

	// El documento sobrevive: solo se pierde el vínculo con el producto borrado.
	doc, err := store.Documents().GetByID(ctx, "doc-1")
	require.NoError(t, err)
	require.NotNil(t, doc)
	linked, err := store.Documents().ListByProduct(ctx, "FCEG-XAN")
	require.NoError(t, err)
	require.Len(t, linked, 1)

	other, err := store.Categories().GetByID(ctx, "other")
	require.NoError(t, err)
	assert.NotNil(t, other)
}

func TestRun_RollbackAnteError(t *testing.T) {
	ctx := context.Background()
	store := seedTree(t)
	boom := errors.New("boom")

	err := store.Run(ctx, func(categories repository.CategoryRepository, products repository.ProductRepository) error {
		require.NoError(t, categories.Delete(ctx, "root"))
		return boom
	})
	require.ErrorIs(t, err, boom)

	c, err := store.Categories().GetByID(ctx, "leaf")
	require.NoError(t, err)
	assert.NotNil(t, c)
	p, err := store.Products().GetByModelCode(ctx, "CBEG-LJN")
	require.NoError(t, err)
	assert.NotNil(t, p)
	curves, err := store.Curves().ListByProduct(ctx, "CBEG-LJN")
	require.NoError(t, err)
	assert.Len(t, curves, 1)
}

func TestRun_CommitSinError(t *testing.T) {
	ctx := context.Background()
	store := seedTree(t)

	err := store.Run(ctx, func(categories repository.CategoryRepository, products repository.ProductRepository) error {
		return products.Delete(ctx, "FCEG-XAN")
	})
	require.NoError(t, err)
	p, err := store.Products().GetByModelCode(ctx, "FCEG-XAN")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestCategoryCreate_SlugDuplicado(t *testing.T) {
	store := seedTree(t)
	err := store.Categories().Create(context.Background(), &entity.Category{ID: "x", Name: "Otra", Slug: "standard"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_MaterialPorDefectoYCategoriaRequerida(t *testing.T) {
	ctx := context.Background()
	store := seedTree(t)

	p, err := store.Products().GetByModelCode(ctx, "CBEG-LJN")
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultMaterial, p.Material)
	assert.Equal(t, t0, p.UpdatedAt)

	err = store.Products().Create(ctx, &entity.Product{ModelCode: "NOPE", CategoryID: "ghost"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_RefrescaUpdatedAt(t *testing.T) {
	ctx := context.Background()
	store := seedTree(t)
	t1 := t0.Add(time.Hour)
	store.WithClock(func() time.Time { return t1 })

	p, err := store.Products().GetByModelCode(ctx, "CBEG-LJN")
	require.NoError(t, err)
	p.Description = "nueva"
	require.NoError(t, store.Products().Update(ctx, p))

	got, err := store.Products().GetByModelCode(ctx, "CBEG-LJN")
	require.NoError(t, err)
	assert.Equal(t, "nueva", got.Description)
	assert.Equal(t, t0, got.CreatedAt)
	assert.Equal(t, t1, got.UpdatedAt)
}

func TestProductFind_OrdenYPaginacion(t *testing.T) {
	ctx := context.Background()
	store := seedTree(t)

	items, err := store.Products().Find(ctx, repository.ProductFilter{},
		repository.ListOptions{Sort: repository.SortModelCodeDesc, Limit: 1})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "FCEG-XAN", items[0].ModelCode)

	items, err = store.Products().Find(ctx, repository.ProductFilter{},
		repository.ListOptions{Sort: repository.SortModelCodeDesc, Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "CBEG-LJN", items[0].ModelCode)

	items, err = store.Products().Find(ctx, repository.ProductFilter{},
		repository.ListOptions{Sort: repository.SortModelCodeAsc, Offset: 5})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDocumentLink_IdempotenteYOrdenado(t *testing.T) {
	ctx := context.Background()
	store := seedTree(t)
	docs := store.Documents()
	require.NoError(t, docs.Create(ctx, &entity.Document{ID: "doc-2", Title: "Drawing", File: "docs/cbeg.dwg", FileType: entity.FileTypeDrawing}))
	require.NoError(t, docs.Link(ctx, "CBEG-LJN", "doc-2"))
	require.NoError(t, docs.Link(ctx, "CBEG-LJN", "doc-1"))

	list, err := docs.ListByProduct(ctx, "CBEG-LJN")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "doc-1", list[0].ID)
	assert.Equal(t, "doc-2", list[1].ID)

	require.NoError(t, docs.Unlink(ctx, "CBEG-LJN", "doc-1"))
	list, err = docs.ListByProduct(ctx, "CBEG-LJN")
	require.NoError(t, err)
	require.Len(t, list, 1)
	d, err := docs.GetByID(ctx, "doc-1")
	require.NoError(t, err)
	assert.NotNil(t, d)
}

func TestDocumentGetByFile_ReferenciaNormalizada(t *testing.T) {
	ctx := context.Background()
	store := seedTree(t)
	docs := store.Documents()
	require.NoError(t, docs.Create(ctx, &entity.Document{ID: "doc-3", Title: "Manual", File: "/docs//manual.pdf"}))
	d, err := docs.GetByID(ctx, "doc-3")
	require.NoError(t, err)
	assert.Equal(t, "docs/manual.pdf", d.File)

	for _, ref := range []string{"docs/cbeg.pdf", "/docs/cbeg.pdf", "docs/./cbeg.pdf", "DOCS/CBEG.PDF", `docs\cbeg.pdf`} {
		d, err := docs.GetByFile(ctx, ref)
		require.NoError(t, err, ref)
		require.NotNil(t, d, ref)
		assert.Equal(t, "doc-1", d.ID, ref)
	}
	d, err = docs.GetByFile(ctx, "products/cbeg.png")
	require.NoError(t, err)
	assert.Nil(t, d)
	d, err = docs.GetByFile(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, d)
}

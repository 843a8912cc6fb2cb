//go:build integration

package postgres_test

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/valve-catalog/internal/domain/entity"
	"github.com/jhoicas/valve-catalog/internal/infrastructure/postgres"
	"github.com/jhoicas/valve-catalog/pkg/config"
)

// Ejecutar con: DATABASE_URL=postgres://... go test -tags integration ./internal/infrastructure/postgres/

func openPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	_, err = postgres.Migrate(ctx, pool)
	require.NoError(t, err)
	return pool
}

// suffix evita choques entre ejecuciones sobre la misma base.
func suffix() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func TestPostgresProducto_EspecificacionesYDecimales(t *testing.T) {
	ctx := context.Background()
	pool := openPool(t)
	cats := postgres.NewCategoryRepository(pool)
	prods := postgres.NewProductRepository(pool)

	id := suffix()
	cat := &entity.Category{ID: "cat-" + id, Name: "Counterbalance " + id, Slug: "counterbalance-" + strings.ToLower(id)}
	require.NoError(t, cats.Create(ctx, cat))
	t.Cleanup(func() { _ = cats.Delete(context.Background(), cat.ID) })

	var specs entity.Specifications
	raw := `{"capacity":"60 L/min","ratio":1.50,"max_pressure":5000.0,"adjustable":true}`
	require.NoError(t, json.Unmarshal([]byte(raw), &specs))

	p := &entity.Product{
		ModelCode:      "CBEG-" + id,
		Series:         "Series 1",
		CategoryID:     cat.ID,
		Specifications: specs,
		MaxPressure:    decimal.NewNullDecimal(decimal.RequireFromString("350.5")),
		IsActive:       true,
	}
	require.NoError(t, prods.Create(ctx, p))
	assert.Equal(t, entity.DefaultMaterial, p.Material)
	assert.False(t, p.CreatedAt.IsZero())

	got, err := prods.GetByModelCode(ctx, p.ModelCode)
	require.NoError(t, err)
	require.NotNil(t, got)

	out, err := json.Marshal(got.Specifications)
	require.NoError(t, err)
	assert.Equal(t, raw, string(out), "orden de claves y literales numéricos")

	require.True(t, got.MaxPressure.Valid)
	assert.True(t, got.MaxPressure.Decimal.Equal(decimal.RequireFromString("350.5")))
	assert.False(t, got.MaxFlow.Valid, "max_flow NULL sigue siendo nulo")

	none, err := prods.GetByModelCode(ctx, "NOPE-"+id)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestPostgresCategoria_BorradoEnCascada(t *testing.T) {
	ctx := context.Background()
	pool := openPool(t)
	cats := postgres.NewCategoryRepository(pool)
	prods := postgres.NewProductRepository(pool)
	docs := postgres.NewDocumentRepository(pool)
	curves := postgres.NewCurveRepository(pool)

	id := suffix()
	lower := strings.ToLower(id)
	root := &entity.Category{ID: "root-" + id, Name: "Load Holding " + id, Slug: "load-holding-" + lower}
	leaf := &entity.Category{ID: "leaf-" + id, ParentID: root.ID, Name: "Standard " + id, Slug: "standard-" + lower}
	require.NoError(t, cats.Create(ctx, root))
	require.NoError(t, cats.Create(ctx, leaf))
	t.Cleanup(func() { _ = cats.Delete(context.Background(), root.ID) })

	p := &entity.Product{ModelCode: "CBEG-" + id, Series: "Series 1", CategoryID: leaf.ID, IsActive: true}
	require.NoError(t, prods.Create(ctx, p))

	var points entity.DataPoints
	require.NoError(t, json.Unmarshal([]byte(`[{"x":0.0,"y":0},{"x":10,"y":12.50}]`), &points))
	require.NoError(t, curves.Create(ctx, &entity.PerformanceCurve{
		ID: "curve-" + id, ModelCode: p.ModelCode, CurveType: "pressure_drop", DataPoints: points,
	}))

	ds := &entity.Document{ID: "ds-" + id, Title: "Datasheet", File: "/docs//cbeg-" + lower + ".pdf"}
	dwg := &entity.Document{ID: "dwg-" + id, Title: "Drawing", File: "docs/cbeg-" + lower + ".dwg", FileType: entity.FileTypeDrawing}
	require.NoError(t, docs.Create(ctx, ds))
	require.NoError(t, docs.Create(ctx, dwg))
	t.Cleanup(func() {
		_ = docs.Delete(context.Background(), ds.ID)
		_ = docs.Delete(context.Background(), dwg.ID)
	})
	assert.Equal(t, "docs/cbeg-"+lower+".pdf", ds.File)

	require.NoError(t, docs.Link(ctx, p.ModelCode, dwg.ID))
	require.NoError(t, docs.Link(ctx, p.ModelCode, ds.ID))
	require.NoError(t, docs.Link(ctx, p.ModelCode, dwg.ID))
	linked, err := docs.ListByProduct(ctx, p.ModelCode)
	require.NoError(t, err)
	require.Len(t, linked, 2)
	assert.Equal(t, dwg.ID, linked[0].ID)
	assert.Equal(t, ds.ID, linked[1].ID)

	byFile, err := docs.GetByFile(ctx, "DOCS/CBEG-"+id+".PDF")
	require.NoError(t, err)
	require.NotNil(t, byFile)
	assert.Equal(t, ds.ID, byFile.ID)

	list, err := curves.ListByProduct(ctx, p.ModelCode)
	require.NoError(t, err)
	require.Len(t, list, 1)
	out, err := json.Marshal(list[0].DataPoints)
	require.NoError(t, err)
	assert.Equal(t, `[{"x":0.0,"y":0},{"x":10,"y":12.50}]`, string(out))

	require.NoError(t, cats.Delete(ctx, root.ID))

	c, err := cats.GetByID(ctx, leaf.ID)
	require.NoError(t, err)
	assert.Nil(t, c, "la hija cae con la raíz")
	gone, err := prods.GetByModelCode(ctx, p.ModelCode)
	require.NoError(t, err)
	assert.Nil(t, gone, "el producto cae con su categoría")
	list, err = curves.ListByProduct(ctx, p.ModelCode)
	require.NoError(t, err)
	assert.Empty(t, list)
	linked, err = docs.ListByProduct(ctx, p.ModelCode)
	require.NoError(t, err)
	assert.Empty(t, linked)

	kept, err := docs.GetByID(ctx, ds.ID)
	require.NoError(t, err)
	assert.NotNil(t, kept, "el documento sobrevive; solo se borra el vínculo")
}

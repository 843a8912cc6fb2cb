package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/valve-catalog/internal/application/catalog"
	"github.com/jhoicas/valve-catalog/internal/domain"
	"github.com/jhoicas/valve-catalog/internal/domain/entity"
	"github.com/jhoicas/valve-catalog/internal/infrastructure/memory"
	"github.com/jhoicas/valve-catalog/internal/testutil"
)

func names(path []*entity.Category) []string {
	out := make([]string, 0, len(path))
	for _, c := range path {
		out = append(out, c.Name)
	}
	return out
}

func TestPathToRoot_TresNiveles(t *testing.T) {
	store := testutil.NewFixture(t).Store
	tree := catalog.NewCategoryTree(store.Categories())

	path, err := tree.PathToRoot(context.Background(), "cat-cb-standard")
	require.NoError(t, err)
	assert.Equal(t, []string{"Load Holding", "Counterbalance", "Standard Counterbalance"}, names(path))
	assert.Equal(t, "Load Holding -> Counterbalance -> Standard Counterbalance",
		catalog.Breadcrumb(path, catalog.BreadcrumbSeparator))
}

func TestPathToRoot_Raiz(t *testing.T) {
	store := testutil.NewFixture(t).Store
	tree := catalog.NewCategoryTree(store.Categories())

	path, err := tree.PathToRoot(context.Background(), "cat-directional")
	require.NoError(t, err)
	assert.Equal(t, []string{"Directional Control"}, names(path))
}

func TestPathToRoot_Inexistente(t *testing.T) {
	store := testutil.NewFixture(t).Store
	tree := catalog.NewCategoryTree(store.Categories())

	_, err := tree.PathToRoot(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPathToRoot_CicloTermina(t *testing.T) {
	ctx := context.Background()
	store := memory.NewCatalog()
	cats := store.Categories()
	require.NoError(t, cats.Create(ctx, &entity.Category{ID: "a", Name: "A", Slug: "a"}))
	require.NoError(t, cats.Create(ctx, &entity.Category{ID: "b", ParentID: "a", Name: "B", Slug: "b"}))
	require.NoError(t, cats.Create(ctx, &entity.Category{ID: "c", ParentID: "b", Name: "C", Slug: "c"}))
	// a -> c cierra el ciclo a -> c -> b -> a.
	require.NoError(t, cats.Update(ctx, &entity.Category{ID: "a", ParentID: "c", Name: "A", Slug: "a"}))

	tree := catalog.NewCategoryTree(cats)
	path, err := tree.PathToRoot(ctx, "c")
	require.ErrorIs(t, err, domain.ErrCategoryCycle)
	assert.Equal(t, []string{"A", "B", "C"}, names(path))
}

func TestPathToRoot_AutoReferencia(t *testing.T) {
	ctx := context.Background()
	store := memory.NewCatalog()
	require.NoError(t, store.Categories().Create(ctx, &entity.Category{ID: "a", ParentID: "a", Name: "A", Slug: "a"}))

	path, err := catalog.NewCategoryTree(store.Categories()).PathToRoot(ctx, "a")
	require.ErrorIs(t, err, domain.ErrCategoryCycle)
	assert.Equal(t, []string{"A"}, names(path))
}

func TestRoots_ConHijosDirectos(t *testing.T) {
	store := testutil.NewFixture(t).Store
	tree := catalog.NewCategoryTree(store.Categories())

	roots, err := tree.Roots(context.Background())
	require.NoError(t, err)
	require.Len(t, roots, 3)
	assert.Equal(t, "Directional Control", roots[0].Category.Name)
	assert.Empty(t, roots[0].Children)
	assert.Equal(t, "Flow Control", roots[1].Category.Name)
	assert.Equal(t, []string{"Needle Valves"}, names(roots[1].Children))
	assert.Equal(t, "Load Holding", roots[2].Category.Name)
	assert.Equal(t, []string{"Counterbalance"}, names(roots[2].Children), "solo hijos directos")
}

func TestFeatured_PrimerasRaices(t *testing.T) {
	store := testutil.NewFixture(t).Store
	tree := catalog.NewCategoryTree(store.Categories())

	got, err := tree.Featured(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Directional Control", "Flow Control"}, names(got))
}

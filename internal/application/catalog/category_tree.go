package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jhoicas/valve-catalog/internal/domain"
	"github.com/jhoicas/valve-catalog/internal/domain/entity"
	"github.com/jhoicas/valve-catalog/internal/domain/repository"
)

const (
	// MaxCategoryDepth profundidad máxima recorrida hacia la raíz.
	MaxCategoryDepth = 64
	// BreadcrumbSeparator separador de la miga de pan.
	BreadcrumbSeparator = " -> "
)

// CategoryNode categoría raíz con sus hijos directos (navegación).
type CategoryNode struct {
	Category *entity.Category
	Children []*entity.Category
}

// CategoryTree resuelve la jerarquía de categorías. El almacén no garantiza que el
// grafo de padres sea acíclico, así que todo recorrido está acotado.
type CategoryTree struct {
	repo repository.CategoryRepository
}

// NewCategoryTree construye el resolvedor.
func NewCategoryTree(repo repository.CategoryRepository) *CategoryTree {
	return &CategoryTree{repo: repo}
}

// Roots devuelve las raíces ordenadas por nombre, cada una con sus hijos directos.
func (t *CategoryTree) Roots(ctx context.Context) ([]CategoryNode, error) {
	roots, err := t.repo.ListByParent(ctx, "")
	if err != nil {
		return nil, err
	}
	nodes := make([]CategoryNode, 0, len(roots))
	if len(roots) == 0 {
		return nodes, nil
	}
	ids := make([]string, 0, len(roots))
	for _, r := range roots {
		ids = append(ids, r.ID)
	}
	children, err := t.repo.ListByParents(ctx, ids)
	if err != nil {
		return nil, err
	}
	byParent := make(map[string][]*entity.Category, len(roots))
	for _, c := range children {
		byParent[c.ParentID] = append(byParent[c.ParentID], c)
	}
	for _, r := range roots {
		nodes = append(nodes, CategoryNode{Category: r, Children: byParent[r.ID]})
	}
	return nodes, nil
}

// Featured primeras n raíces (portada).
func (t *CategoryTree) Featured(ctx context.Context, n int) ([]*entity.Category, error) {
	roots, err := t.repo.ListByParent(ctx, "")
	if err != nil {
		return nil, err
	}
	if n >= 0 && len(roots) > n {
		roots = roots[:n]
	}
	return roots, nil
}

// PathToRoot devuelve la cadena raíz → categoría. domain.ErrNotFound si la categoría no existe.
func (t *CategoryTree) PathToRoot(ctx context.Context, categoryID string) ([]*entity.Category, error) {
	cat, err := t.repo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	return t.PathFrom(ctx, cat)
}

// PathFrom sube por los padres desde cat. Ante un ciclo o al superar MaxCategoryDepth devuelve
// la cadena recorrida (raíz primero) junto con domain.ErrCategoryCycle. Un padre inexistente
// corta la cadena.
func (t *CategoryTree) PathFrom(ctx context.Context, cat *entity.Category) ([]*entity.Category, error) {
	chain := []*entity.Category{cat}
	seen := map[string]bool{cat.ID: true}
	cur := cat
	for cur.ParentID != "" {
		if seen[cur.ParentID] || len(chain) >= MaxCategoryDepth {
			slices.Reverse(chain)
			return chain, fmt.Errorf("%w: %s", domain.ErrCategoryCycle, cat.ID)
		}
		parent, err := t.repo.GetByID(ctx, cur.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			break
		}
		seen[parent.ID] = true
		chain = append(chain, parent)
		cur = parent
	}
	slices.Reverse(chain)
	return chain, nil
}

// Breadcrumb une los nombres de la cadena, raíz primero.
func Breadcrumb(path []*entity.Category, sep string) string {
	names := make([]string, 0, len(path))
	for _, c := range path {
		names = append(names, c.Name)
	}
	return strings.Join(names, sep)
}

package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/valve-catalog/internal/domain"
	"github.com/jhoicas/valve-catalog/internal/domain/entity"
	"github.com/jhoicas/valve-catalog/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo categorías en memoria.
type CategoryRepo struct {
	c    *Catalog
	inTx bool
}

// Create persiste una categoría. Slug e ID son únicos.
func (r *CategoryRepo) Create(_ context.Context, category *entity.Category) error {
	defer r.c.wlock(r.inTx)()
	st := &r.c.st
	if _, ok := st.categories[category.ID]; ok {
		return domain.ErrDuplicate
	}
	if slugTaken(st, category.Slug, "") {
		return domain.ErrDuplicate
	}
	cp := copyCategory(category)
	now := r.c.now()
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = now
	}
	cp.UpdatedAt = now
	st.categories[cp.ID] = cp
	category.CreatedAt, category.UpdatedAt = cp.CreatedAt, cp.UpdatedAt
	return nil
}

// Update reemplaza una categoría existente.
func (r *CategoryRepo) Update(_ context.Context, category *entity.Category) error {
	defer r.c.wlock(r.inTx)()
	st := &r.c.st
	prev, ok := st.categories[category.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if slugTaken(st, category.Slug, category.ID) {
		return domain.ErrDuplicate
	}
	cp := copyCategory(category)
	cp.CreatedAt = prev.CreatedAt
	cp.UpdatedAt = r.c.now()
	st.categories[cp.ID] = cp
	category.UpdatedAt = cp.UpdatedAt
	return nil
}

func slugTaken(st *state, slug, exceptID string) bool {
	for _, c := range st.categories {
		if c.Slug == slug && c.ID != exceptID {
			return true
		}
	}
	return false
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	defer r.c.rlock(r.inTx)()
	if c, ok := r.c.st.categories[id]; ok {
		return copyCategory(c), nil
	}
	return nil, nil
}

// GetBySlug obtiene una categoría por slug.
func (r *CategoryRepo) GetBySlug(_ context.Context, slug string) (*entity.Category, error) {
	defer r.c.rlock(r.inTx)()
	for _, c := range r.c.st.categories {
		if c.Slug == slug {
			return copyCategory(c), nil
		}
	}
	return nil, nil
}

// List todas las categorías por nombre, opcionalmente filtradas por subcadena del nombre.
func (r *CategoryRepo) List(_ context.Context, nameContains string) ([]*entity.Category, error) {
	defer r.c.rlock(r.inTx)()
	return r.collect(func(c *entity.Category) bool {
		return nameContains == "" || repository.ContainsFold(c.Name, nameContains)
	}), nil
}

// ListByParent hijos directos; parentID vacío devuelve las raíces.
func (r *CategoryRepo) ListByParent(_ context.Context, parentID string) ([]*entity.Category, error) {
	defer r.c.rlock(r.inTx)()
	return r.collect(func(c *entity.Category) bool { return c.ParentID == parentID }), nil
}

// ListByParents hijos directos de varios padres.
func (r *CategoryRepo) ListByParents(_ context.Context, parentIDs []string) ([]*entity.Category, error) {
	defer r.c.rlock(r.inTx)()
	set := make(map[string]bool, len(parentIDs))
	for _, id := range parentIDs {
		set[id] = true
	}
	return r.collect(func(c *entity.Category) bool { return c.ParentID != "" && set[c.ParentID] }), nil
}

func (r *CategoryRepo) collect(keep func(*entity.Category) bool) []*entity.Category {
	out := []*entity.Category{}
	for _, c := range r.c.st.categories {
		if keep(c) {
			out = append(out, copyCategory(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Delete elimina la categoría, sus descendientes y los productos que las referencian.
func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	defer r.c.wlock(r.inTx)()
	st := &r.c.st
	if _, ok := st.categories[id]; !ok {
		return nil
	}
	doomed := map[string]bool{id: true}
	queue := []string{id}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		for cid, c := range st.categories {
			if c.ParentID == parent && !doomed[cid] {
				doomed[cid] = true
				queue = append(queue, cid)
			}
		}
	}
	for code, p := range st.products {
		if doomed[p.CategoryID] {
			st.deleteProduct(code)
		}
	}
	for cid := range doomed {
		delete(st.categories, cid)
	}
	return nil
}

package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/valve-catalog/internal/domain"
	"github.com/jhoicas/valve-catalog/internal/domain/entity"
	"github.com/jhoicas/valve-catalog/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct {
	c    *Catalog
	inTx bool
}

// Create persiste un producto. model_code es único y la categoría debe existir.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	defer r.c.wlock(r.inTx)()
	st := &r.c.st
	if _, ok := st.products[product.ModelCode]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := st.categories[product.CategoryID]; !ok {
		return fmt.Errorf("%w: categoría %q inexistente", domain.ErrInvalidInput, product.CategoryID)
	}
	cp := copyProduct(product)
	if cp.Material == "" {
		cp.Material = entity.DefaultMaterial
	}
	cp.Touch(r.c.now())
	st.products[cp.ModelCode] = cp
	product.Material, product.CreatedAt, product.UpdatedAt = cp.Material, cp.CreatedAt, cp.UpdatedAt
	return nil
}

// Update reemplaza un producto existente y refresca updated_at.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	defer r.c.wlock(r.inTx)()
	st := &r.c.st
	prev, ok := st.products[product.ModelCode]
	if !ok {
		return domain.ErrNotFound
	}
	if _, ok := st.categories[product.CategoryID]; !ok {
		return fmt.Errorf("%w: categoría %q inexistente", domain.ErrInvalidInput, product.CategoryID)
	}
	cp := copyProduct(product)
	cp.CreatedAt = prev.CreatedAt
	cp.Touch(r.c.now())
	st.products[cp.ModelCode] = cp
	product.UpdatedAt = cp.UpdatedAt
	return nil
}

// GetByModelCode obtiene un producto por su código.
func (r *ProductRepo) GetByModelCode(_ context.Context, modelCode string) (*entity.Product, error) {
	defer r.c.rlock(r.inTx)()
	if p, ok := r.c.st.products[modelCode]; ok {
		return copyProduct(p), nil
	}
	return nil, nil
}

// Find filtra, ordena y pagina.
func (r *ProductRepo) Find(_ context.Context, filter repository.ProductFilter, opts repository.ListOptions) ([]*entity.Product, error) {
	defer r.c.rlock(r.inTx)()
	var matched []*entity.Product
	for _, p := range r.c.st.products {
		if filter.Matches(p) {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return opts.Sort.Less(matched[i], matched[j]) })

	if opts.Offset > 0 {
		if opts.Offset >= len(matched) {
			return []*entity.Product{}, nil
		}
		matched = matched[opts.Offset:]
	}
	if opts.Limit > 0 && len(matched) > opts.Limit {
		matched = matched[:opts.Limit]
	}
	out := make([]*entity.Product, 0, len(matched))
	for _, p := range matched {
		out = append(out, copyProduct(p))
	}
	return out, nil
}

// Count cuenta los productos que cumplen el filtro.
func (r *ProductRepo) Count(_ context.Context, filter repository.ProductFilter) (int, error) {
	defer r.c.rlock(r.inTx)()
	n := 0
	for _, p := range r.c.st.products {
		if filter.Matches(p) {
			n++
		}
	}
	return n, nil
}

// Delete elimina el producto con sus curvas y vínculos a documentos.
func (r *ProductRepo) Delete(_ context.Context, modelCode string) error {
	defer r.c.wlock(r.inTx)()
	r.c.st.deleteProduct(modelCode)
	return nil
}

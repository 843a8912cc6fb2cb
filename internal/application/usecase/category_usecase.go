package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/valve-catalog/internal/application/catalog"
	"github.com/jhoicas/valve-catalog/internal/application/dto"
	"github.com/jhoicas/valve-catalog/internal/application/ports"
	"github.com/jhoicas/valve-catalog/internal/domain"
	"github.com/jhoicas/valve-catalog/internal/domain/entity"
	"github.com/jhoicas/valve-catalog/internal/domain/repository"
)

// DeletePolicy política de borrado de categorías con descendientes o productos.
type DeletePolicy string

const (
	// DeleteCascade borra descendientes y productos (por defecto).
	DeleteCascade DeletePolicy = "cascade"
	// DeleteRestrict rechaza el borrado si la categoría tiene hijos o productos.
	DeleteRestrict DeletePolicy = "restrict"
)

// ParseDeletePolicy valida la política; vacío equivale a cascade.
func ParseDeletePolicy(s string) (DeletePolicy, error) {
	switch DeletePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", DeleteCascade:
		return DeleteCascade, nil
	case DeleteRestrict:
		return DeleteRestrict, nil
	}
	return "", fmt.Errorf("%w: política de borrado %q", domain.ErrInvalidInput, s)
}

// CategoryUseCase casos de uso de categorías: consulta, árbol y borrado con política.
type CategoryUseCase struct {
	repo   repository.CategoryRepository
	tree   *catalog.CategoryTree
	tx     ports.CatalogTxRunner
	policy DeletePolicy
	mapper *Mapper
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(
	repo repository.CategoryRepository,
	tx ports.CatalogTxRunner,
	policy DeletePolicy,
	mapper *Mapper,
) *CategoryUseCase {
	if policy == "" {
		policy = DeleteCascade
	}
	return &CategoryUseCase{
		repo:   repo,
		tree:   catalog.NewCategoryTree(repo),
		tx:     tx,
		policy: policy,
		mapper: mapper,
	}
}

// Policy política de borrado configurada.
func (uc *CategoryUseCase) Policy() DeletePolicy { return uc.policy }

// Tree resolvedor de jerarquía compartido.
func (uc *CategoryUseCase) Tree() *catalog.CategoryTree { return uc.tree }

// List lista categorías planas, opcionalmente filtradas por subcadena del nombre.
func (uc *CategoryUseCase) List(ctx context.Context, search string) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	return uc.mapper.Categories(list), nil
}

// Resolve busca por slug o id. domain.ErrNotFound si no existe.
func (uc *CategoryUseCase) Resolve(ctx context.Context, ref string) (*entity.Category, error) {
	cat, err := catalog.ResolveCategory(ctx, uc.repo, ref)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	return cat, nil
}

// Get obtiene una categoría por slug o id.
func (uc *CategoryUseCase) Get(ctx context.Context, ref string) (*dto.CategoryResponse, error) {
	cat, err := uc.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	return uc.mapper.Category(cat), nil
}

// Roots raíces con sus hijos directos para la navegación.
func (uc *CategoryUseCase) Roots(ctx context.Context) ([]dto.CategoryTreeResponse, error) {
	nodes, err := uc.tree.Roots(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryTreeResponse, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, dto.CategoryTreeResponse{
			CategoryResponse: *uc.mapper.Category(n.Category),
			Children:         uc.mapper.Categories(n.Children),
		})
	}
	return out, nil
}

// Featured primeras n raíces para la portada.
func (uc *CategoryUseCase) Featured(ctx context.Context, n int) ([]dto.CategoryResponse, error) {
	list, err := uc.tree.Featured(ctx, n)
	if err != nil {
		return nil, err
	}
	return uc.mapper.Categories(list), nil
}

// Path cadena raíz → categoría con su etiqueta. Un ciclo devuelve la cadena parcial.
func (uc *CategoryUseCase) Path(ctx context.Context, ref string) (*dto.CategoryPathResponse, error) {
	cat, err := uc.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	path, err := uc.tree.PathFrom(ctx, cat)
	if err != nil && !errors.Is(err, domain.ErrCategoryCycle) {
		return nil, err
	}
	return &dto.CategoryPathResponse{
		Path:  uc.mapper.Categories(path),
		Label: catalog.Breadcrumb(path, catalog.BreadcrumbSeparator),
	}, err
}

// Delete borra la categoría aplicando la política configurada.
func (uc *CategoryUseCase) Delete(ctx context.Context, ref string) error {
	return uc.DeleteWithPolicy(ctx, ref, uc.policy)
}

// DeleteWithPolicy borra la categoría dentro de una transacción.
//   - cascade: elimina descendientes y productos que las referencian.
//   - restrict: domain.ErrCategoryInUse si tiene hijos o productos.
func (uc *CategoryUseCase) DeleteWithPolicy(ctx context.Context, ref string, policy DeletePolicy) error {
	return uc.tx.Run(ctx, func(categories repository.CategoryRepository, products repository.ProductRepository) error {
		cat, err := catalog.ResolveCategory(ctx, categories, ref)
		if err != nil {
			return err
		}
		if cat == nil {
			return domain.ErrNotFound
		}
		if policy == DeleteRestrict {
			children, err := categories.ListByParent(ctx, cat.ID)
			if err != nil {
				return err
			}
			n, err := products.Count(ctx, repository.ProductFilter{CategoryID: cat.ID})
			if err != nil {
				return err
			}
			if len(children) > 0 || n > 0 {
				return fmt.Errorf("%w: %d subcategorías, %d productos", domain.ErrCategoryInUse, len(children), n)
			}
		}
		return categories.Delete(ctx, cat.ID)
	})
}

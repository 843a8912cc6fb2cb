package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/valve-catalog/internal/domain"
	"github.com/jhoicas/valve-catalog/internal/domain/entity"
	"github.com/jhoicas/valve-catalog/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

const categoryColumns = `id, parent_id, name, slug, description, image, created_at, updated_at`

// Create persiste una categoría.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO categories (id, parent_id, name, slug, description, image)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		c.ID, c.ParentID, c.Name, c.Slug, c.Description, c.Image,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: categoría padre %q inexistente", domain.ErrInvalidInput, c.ParentID)
		}
		return storeErr("insert category", err)
	}
	return nil
}

// Update actualiza una categoría existente.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	err := r.q.QueryRow(ctx, `
		UPDATE categories SET parent_id = NULLIF($2, ''), name = $3, slug = $4, description = $5, image = $6, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		c.ID, c.ParentID, c.Name, c.Slug, c.Description, c.Image,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storeErr("update category", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
}

// GetBySlug obtiene una categoría por slug.
func (r *CategoryRepo) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
}

func (r *CategoryRepo) getOne(ctx context.Context, query, arg string) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get category", err)
	}
	return c, nil
}

// List lista todas las categorías por nombre, opcionalmente filtradas por subcadena.
func (r *CategoryRepo) List(ctx context.Context, nameContains string) ([]*entity.Category, error) {
	if nameContains == "" {
		return r.list(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name COLLATE "C", id COLLATE "C"`)
	}
	return r.list(ctx, `SELECT `+categoryColumns+` FROM categories WHERE name ILIKE $1 ESCAPE '\'
		ORDER BY name COLLATE "C", id COLLATE "C"`, containsPattern(nameContains))
}

// ListByParent hijos directos; parentID vacío devuelve las raíces.
func (r *CategoryRepo) ListByParent(ctx context.Context, parentID string) ([]*entity.Category, error) {
	if parentID == "" {
		return r.list(ctx, `SELECT `+categoryColumns+` FROM categories WHERE parent_id IS NULL
			ORDER BY name COLLATE "C", id COLLATE "C"`)
	}
	return r.list(ctx, `SELECT `+categoryColumns+` FROM categories WHERE parent_id = $1
		ORDER BY name COLLATE "C", id COLLATE "C"`, parentID)
}

// ListByParents hijos directos de varios padres en una consulta.
func (r *CategoryRepo) ListByParents(ctx context.Context, parentIDs []string) ([]*entity.Category, error) {
	if len(parentIDs) == 0 {
		return []*entity.Category{}, nil
	}
	return r.list(ctx, `SELECT `+categoryColumns+` FROM categories WHERE parent_id = ANY($1)
		ORDER BY name COLLATE "C", id COLLATE "C"`, parentIDs)
}

// Delete elimina la categoría; las claves foráneas ON DELETE CASCADE arrastran
// descendientes, productos, curvas y vínculos con documentos.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id); err != nil {
		return storeErr("delete category", err)
	}
	return nil
}

func (r *CategoryRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list categories", err)
	}
	defer rows.Close()
	list := []*entity.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list categories", err)
	}
	return list, nil
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	var parent *string
	if err := row.Scan(&c.ID, &parent, &c.Name, &c.Slug, &c.Description, &c.Image, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if parent != nil {
		c.ParentID = *parent
	}
	return &c, nil
}

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/valve-catalog/internal/domain"
	"github.com/jhoicas/valve-catalog/internal/domain/entity"
	"github.com/jhoicas/valve-catalog/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `model_code, series, category_id, description, application, cavity, material,
	schematic_image, product_image, specifications, max_pressure, max_flow, is_active, created_at, updated_at`

// Create persiste un nuevo producto. specifications va en una columna json para conservar el orden de claves.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	specs, err := json.Marshal(p.Specifications)
	if err != nil {
		return fmt.Errorf("%w: specifications: %v", domain.ErrInvalidInput, err)
	}
	if p.Material == "" {
		p.Material = entity.DefaultMaterial
	}
	err = r.q.QueryRow(ctx, `
		INSERT INTO products (model_code, series, category_id, description, application, cavity, material,
			schematic_image, product_image, specifications, max_pressure, max_flow, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, COALESCE($14, now()))
		RETURNING created_at, updated_at`,
		p.ModelCode, p.Series, p.CategoryID, p.Description, p.Application, p.Cavity, p.Material,
		p.SchematicImage, p.ProductImage, string(specs), p.MaxPressure, p.MaxFlow, p.IsActive, nullTime(p),
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: categoría %q inexistente", domain.ErrInvalidInput, p.CategoryID)
		}
		return storeErr("insert product", err)
	}
	return nil
}

// Update actualiza un producto existente y refresca updated_at.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	specs, err := json.Marshal(p.Specifications)
	if err != nil {
		return fmt.Errorf("%w: specifications: %v", domain.ErrInvalidInput, err)
	}
	err = r.q.QueryRow(ctx, `
		UPDATE products SET series = $2, category_id = $3, description = $4, application = $5, cavity = $6,
			material = $7, schematic_image = $8, product_image = $9, specifications = $10,
			max_pressure = $11, max_flow = $12, is_active = $13, updated_at = now()
		WHERE model_code = $1
		RETURNING updated_at`,
		p.ModelCode, p.Series, p.CategoryID, p.Description, p.Application, p.Cavity, p.Material,
		p.SchematicImage, p.ProductImage, string(specs), p.MaxPressure, p.MaxFlow, p.IsActive,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: categoría %q inexistente", domain.ErrInvalidInput, p.CategoryID)
		}
		return storeErr("update product", err)
	}
	return nil
}

// GetByModelCode obtiene un producto por su código.
func (r *ProductRepo) GetByModelCode(ctx context.Context, modelCode string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE model_code = $1`, modelCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get product", err)
	}
	return p, nil
}

// Find filtra, ordena y pagina en el servidor.
func (r *ProductRepo) Find(ctx context.Context, filter repository.ProductFilter, opts repository.ListOptions) ([]*entity.Product, error) {
	var args sqlArgs
	query := `SELECT ` + productColumns + ` FROM products` +
		productWhere(filter, &args) + productOrderBy(opts.Sort) + pageClause(opts, &args)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("find products", err)
	}
	defer rows.Close()
	list := []*entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("find products", err)
	}
	return list, nil
}

// Count cuenta los productos que cumplen el filtro.
func (r *ProductRepo) Count(ctx context.Context, filter repository.ProductFilter) (int, error) {
	var args sqlArgs
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products`+productWhere(filter, &args), args...).Scan(&n); err != nil {
		return 0, storeErr("count products", err)
	}
	return n, nil
}

// Delete elimina un producto; curvas y vínculos caen por cascada.
func (r *ProductRepo) Delete(ctx context.Context, modelCode string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM products WHERE model_code = $1`, modelCode); err != nil {
		return storeErr("delete product", err)
	}
	return nil
}

func nullTime(p *entity.Product) any {
	if p.CreatedAt.IsZero() {
		return nil
	}
	return p.CreatedAt
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var specs []byte
	if err := row.Scan(&p.ModelCode, &p.Series, &p.CategoryID, &p.Description, &p.Application, &p.Cavity, &p.Material,
		&p.SchematicImage, &p.ProductImage, &specs, &p.MaxPressure, &p.MaxFlow, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(specs, &p.Specifications); err != nil {
		return nil, fmt.Errorf("%w: specifications de %s: %v", errCorruptRow, p.ModelCode, err)
	}
	return &p, nil
}

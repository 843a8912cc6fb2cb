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

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo documentos técnicos y tabla de vínculos product_documents (N:M ordenada por position).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `d.id, d.title, d.file, d.file_type, d.version, d.uploaded_at`

// Create persiste un documento.
func (r *DocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	if doc.FileType == "" {
		doc.FileType = entity.FileTypeDatasheet
	}
	doc.File = entity.CleanRef(doc.File)
	err := r.q.QueryRow(ctx, `
		INSERT INTO documents (id, title, file, file_type, version)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING uploaded_at`,
		doc.ID, doc.Title, doc.File, string(doc.FileType), doc.Version,
	).Scan(&doc.UploadedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storeErr("insert document", err)
	}
	return nil
}

// GetByID obtiene un documento.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	d, err := scanDocument(r.q.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents d WHERE d.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get document", err)
	}
	return d, nil
}

// GetByFile busca el documento cuyo archivo es ref.
func (r *DocumentRepo) GetByFile(ctx context.Context, ref string) (*entity.Document, error) {
	name := entity.CleanRef(ref)
	if name == "" {
		return nil, nil
	}
	d, err := scanDocument(r.q.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM documents d WHERE lower(d.file) = lower($1) ORDER BY d.id LIMIT 1`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get document by file", err)
	}
	return d, nil
}

// Delete elimina el documento y sus vínculos (cascada).
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id); err != nil {
		return storeErr("delete document", err)
	}
	return nil
}

// Link agrega el documento al final de la lista del producto; repetir el vínculo no hace nada.
func (r *DocumentRepo) Link(ctx context.Context, modelCode, documentID string) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO product_documents (model_code, document_id, position)
		SELECT $1, $2, COALESCE(MAX(position), 0) + 1 FROM product_documents WHERE model_code = $1
		ON CONFLICT (model_code, document_id) DO NOTHING`,
		modelCode, documentID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto %q o documento %q inexistente", domain.ErrInvalidInput, modelCode, documentID)
		}
		return storeErr("link document", err)
	}
	return nil
}

// Unlink quita el vínculo sin borrar el documento.
func (r *DocumentRepo) Unlink(ctx context.Context, modelCode, documentID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM product_documents WHERE model_code = $1 AND document_id = $2`, modelCode, documentID)
	if err != nil {
		return storeErr("unlink document", err)
	}
	return nil
}

// ListByProduct documentos del producto en orden de vinculación.
func (r *DocumentRepo) ListByProduct(ctx context.Context, modelCode string) ([]*entity.Document, error) {
	byProduct, err := r.ListByProducts(ctx, []string{modelCode})
	if err != nil {
		return nil, err
	}
	if docs := byProduct[modelCode]; docs != nil {
		return docs, nil
	}
	return []*entity.Document{}, nil
}

// ListByProducts documentos de varios productos en una consulta, agrupados por model_code.
func (r *DocumentRepo) ListByProducts(ctx context.Context, modelCodes []string) (map[string][]*entity.Document, error) {
	out := make(map[string][]*entity.Document, len(modelCodes))
	if len(modelCodes) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT pd.model_code, `+documentColumns+`
		FROM product_documents pd JOIN documents d ON d.id = pd.document_id
		WHERE pd.model_code = ANY($1)
		ORDER BY pd.model_code, pd.position`, modelCodes)
	if err != nil {
		return nil, storeErr("list documents", err)
	}
	defer rows.Close()
	for rows.Next() {
		var code string
		var d entity.Document
		var fileType string
		if err := rows.Scan(&code, &d.ID, &d.Title, &d.File, &fileType, &d.Version, &d.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		d.FileType = entity.FileType(fileType)
		out[code] = append(out[code], &d)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list documents", err)
	}
	return out, nil
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	var fileType string
	if err := row.Scan(&d.ID, &d.Title, &d.File, &fileType, &d.Version, &d.UploadedAt); err != nil {
		return nil, err
	}
	d.FileType = entity.FileType(fileType)
	return &d, nil
}

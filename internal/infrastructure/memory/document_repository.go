package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/jhoicas/valve-catalog/internal/domain"
	"github.com/jhoicas/valve-catalog/internal/domain/entity"
	"github.com/jhoicas/valve-catalog/internal/domain/repository"
)

var (
	_ repository.DocumentRepository         = (*DocumentRepo)(nil)
	_ repository.PerformanceCurveRepository = (*CurveRepo)(nil)
)

// DocumentRepo documentos y vínculos N:M en memoria.
type DocumentRepo struct {
	c *Catalog
}

// Create persiste un documento.
func (r *DocumentRepo) Create(_ context.Context, doc *entity.Document) error {
	defer r.c.wlock(false)()
	if _, ok := r.c.st.documents[doc.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := copyDocument(doc)
	cp.File = entity.CleanRef(cp.File)
	if cp.UploadedAt.IsZero() {
		cp.UploadedAt = r.c.now()
	}
	if cp.FileType == "" {
		cp.FileType = entity.FileTypeDatasheet
	}
	r.c.st.documents[cp.ID] = cp
	doc.File, doc.UploadedAt, doc.FileType = cp.File, cp.UploadedAt, cp.FileType
	return nil
}

// GetByID obtiene un documento.
func (r *DocumentRepo) GetByID(_ context.Context, id string) (*entity.Document, error) {
	defer r.c.rlock(false)()
	if d, ok := r.c.st.documents[id]; ok {
		return copyDocument(d), nil
	}
	return nil, nil
}

// GetByFile busca el documento cuyo archivo es ref.
func (r *DocumentRepo) GetByFile(_ context.Context, ref string) (*entity.Document, error) {
	defer r.c.rlock(false)()
	name := entity.CleanRef(ref)
	if name == "" {
		return nil, nil
	}
	for _, d := range r.c.st.documents {
		if strings.EqualFold(d.File, name) {
			return copyDocument(d), nil
		}
	}
	return nil, nil
}

// Delete elimina el documento y lo quita de todas las listas de productos.
func (r *DocumentRepo) Delete(_ context.Context, id string) error {
	defer r.c.wlock(false)()
	delete(r.c.st.documents, id)
	for code, ids := range r.c.st.links {
		r.c.st.links[code] = slices.DeleteFunc(ids, func(d string) bool { return d == id })
	}
	return nil
}

// Link agrega el documento a la lista del producto.
func (r *DocumentRepo) Link(_ context.Context, modelCode, documentID string) error {
	defer r.c.wlock(false)()
	st := &r.c.st
	if _, ok := st.products[modelCode]; !ok {
		return fmt.Errorf("%w: producto %q inexistente", domain.ErrInvalidInput, modelCode)
	}
	if _, ok := st.documents[documentID]; !ok {
		return fmt.Errorf("%w: documento %q inexistente", domain.ErrInvalidInput, documentID)
	}
	if slices.Contains(st.links[modelCode], documentID) {
		return nil
	}
	st.links[modelCode] = append(st.links[modelCode], documentID)
	return nil
}

// Unlink quita el documento de la lista del producto sin destruirlo.
func (r *DocumentRepo) Unlink(_ context.Context, modelCode, documentID string) error {
	defer r.c.wlock(false)()
	r.c.st.links[modelCode] = slices.DeleteFunc(r.c.st.links[modelCode], func(d string) bool { return d == documentID })
	return nil
}

// ListByProduct documentos del producto en orden de vinculación.
func (r *DocumentRepo) ListByProduct(_ context.Context, modelCode string) ([]*entity.Document, error) {
	defer r.c.rlock(false)()
	return r.docsOf(modelCode), nil
}

// ListByProducts documentos agrupados por producto.
func (r *DocumentRepo) ListByProducts(_ context.Context, modelCodes []string) (map[string][]*entity.Document, error) {
	defer r.c.rlock(false)()
	out := make(map[string][]*entity.Document, len(modelCodes))
	for _, code := range modelCodes {
		if docs := r.docsOf(code); len(docs) > 0 {
			out[code] = docs
		}
	}
	return out, nil
}

func (r *DocumentRepo) docsOf(modelCode string) []*entity.Document {
	out := []*entity.Document{}
	for _, id := range r.c.st.links[modelCode] {
		if d, ok := r.c.st.documents[id]; ok {
			out = append(out, copyDocument(d))
		}
	}
	return out
}

// CurveRepo curvas de rendimiento en memoria.
type CurveRepo struct {
	c *Catalog
}

// Create persiste una curva; el producto debe existir.
func (r *CurveRepo) Create(_ context.Context, curve *entity.PerformanceCurve) error {
	defer r.c.wlock(false)()
	st := &r.c.st
	if _, ok := st.products[curve.ModelCode]; !ok {
		return fmt.Errorf("%w: producto %q inexistente", domain.ErrInvalidInput, curve.ModelCode)
	}
	if _, ok := st.curves[curve.ID]; ok {
		return domain.ErrDuplicate
	}
	st.seq++
	st.curves[curve.ID] = copyCurve(curve)
	st.curveSeq[curve.ID] = st.seq
	return nil
}

// Delete elimina una curva.
func (r *CurveRepo) Delete(_ context.Context, id string) error {
	defer r.c.wlock(false)()
	delete(r.c.st.curves, id)
	delete(r.c.st.curveSeq, id)
	return nil
}

// ListByProduct curvas del producto en orden de creación.
func (r *CurveRepo) ListByProduct(_ context.Context, modelCode string) ([]*entity.PerformanceCurve, error) {
	defer r.c.rlock(false)()
	out := []*entity.PerformanceCurve{}
	for _, pc := range r.c.st.curves {
		if pc.ModelCode == modelCode {
			out = append(out, copyCurve(pc))
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.c.st.curveSeq[out[i].ID] < r.c.st.curveSeq[out[j].ID] })
	return out, nil
}

// ListByProducts curvas agrupadas por producto.
func (r *CurveRepo) ListByProducts(ctx context.Context, modelCodes []string) (map[string][]*entity.PerformanceCurve, error) {
	out := make(map[string][]*entity.PerformanceCurve, len(modelCodes))
	for _, code := range modelCodes {
		curves, err := r.ListByProduct(ctx, code)
		if err != nil {
			return nil, err
		}
		if len(curves) > 0 {
			out[code] = curves
		}
	}
	return out, nil
}

// Package memory implementa los puertos del catálogo en memoria. Se usa en desarrollo
// (CATALOG_STORE=memory) y como almacén de pruebas; respeta las mismas reglas de
// unicidad y borrado en cascada que el esquema PostgreSQL.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/jhoicas/valve-catalog/internal/application/ports"
	"github.com/jhoicas/valve-catalog/internal/domain/entity"
	"github.com/jhoicas/valve-catalog/internal/domain/repository"
)

var _ ports.CatalogTxRunner = (*Catalog)(nil)

type state struct {
	categories map[string]*entity.Category
	products   map[string]*entity.Product
	documents  map[string]*entity.Document
	links      map[string][]string // model_code -> ids de documento en orden
	curves     map[string]*entity.PerformanceCurve
	curveSeq   map[string]int64
	seq        int64
}

func newState() state {
	return state{
		categories: map[string]*entity.Category{},
		products:   map[string]*entity.Product{},
		documents:  map[string]*entity.Document{},
		links:      map[string][]string{},
		curves:     map[string]*entity.PerformanceCurve{},
		curveSeq:   map[string]int64{},
	}
}

// clone copia los índices; las entidades se tratan como inmutables dentro del almacén.
func (s state) clone() state {
	out := state{
		categories: maps.Clone(s.categories),
		products:   maps.Clone(s.products),
		documents:  maps.Clone(s.documents),
		links:      make(map[string][]string, len(s.links)),
		curves:     maps.Clone(s.curves),
		curveSeq:   maps.Clone(s.curveSeq),
		seq:        s.seq,
	}
	for k, v := range s.links {
		out.links[k] = append([]string(nil), v...)
	}
	return out
}

// Catalog almacén en memoria protegido por un RWMutex.
type Catalog struct {
	mu  sync.RWMutex
	st  state
	now func() time.Time
}

// NewCatalog construye un almacén vacío.
func NewCatalog() *Catalog {
	return &Catalog{st: newState(), now: time.Now}
}

// WithClock reemplaza el reloj usado para updated_at (tests).
func (c *Catalog) WithClock(now func() time.Time) *Catalog {
	c.now = now
	return c
}

// Categories repositorio de categorías.
func (c *Catalog) Categories() *CategoryRepo { return &CategoryRepo{c: c} }

// Products repositorio de productos.
func (c *Catalog) Products() *ProductRepo { return &ProductRepo{c: c} }

// Documents repositorio de documentos.
func (c *Catalog) Documents() *DocumentRepo { return &DocumentRepo{c: c} }

// Curves repositorio de curvas de rendimiento.
func (c *Catalog) Curves() *CurveRepo { return &CurveRepo{c: c} }

// Run ejecuta fn con el lock de escritura tomado. Si fn falla se restaura el estado previo.
func (c *Catalog) Run(ctx context.Context, fn func(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := c.st.clone()
	if err := fn(&CategoryRepo{c: c, inTx: true}, &ProductRepo{c: c, inTx: true}); err != nil {
		c.st = snapshot
		return err
	}
	return nil
}

func (c *Catalog) rlock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	c.mu.RLock()
	return c.mu.RUnlock
}

func (c *Catalog) wlock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	c.mu.Lock()
	return c.mu.Unlock
}

// deleteProduct borra el producto con sus curvas y vínculos. Requiere el lock de escritura.
func (s *state) deleteProduct(modelCode string) {
	delete(s.products, modelCode)
	delete(s.links, modelCode)
	for id, curve := range s.curves {
		if curve.ModelCode == modelCode {
			delete(s.curves, id)
			delete(s.curveSeq, id)
		}
	}
}

func copyProduct(p *entity.Product) *entity.Product {
	cp := *p
	cp.Specifications = entity.NewSpecifications(p.Specifications.Entries()...)
	return &cp
}

func copyCategory(c *entity.Category) *entity.Category {
	cp := *c
	return &cp
}

func copyDocument(d *entity.Document) *entity.Document {
	cp := *d
	return &cp
}

func copyCurve(pc *entity.PerformanceCurve) *entity.PerformanceCurve {
	cp := *pc
	cp.DataPoints = append(entity.DataPoints(nil), pc.DataPoints...)
	return &cp
}

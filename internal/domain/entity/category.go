package entity

import "time"

// Category representa un nodo de la taxonomía de productos (jerárquica opcional).
// Los hijos no se almacenan: se consultan por ParentID.
type Category struct {
	ID          string
	ParentID    string // vacío si es raíz
	Name        string
	Slug        string // único en todo el catálogo
	Description string
	Image       string // referencia en el blob store
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsRoot indica si la categoría no tiene padre.
func (c *Category) IsRoot() bool {
	return c.ParentID == ""
}

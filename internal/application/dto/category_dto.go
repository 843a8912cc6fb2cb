package dto

import "time"

// CategoryResponse salida plana de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Parent      *string   `json:"parent"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryTreeResponse categoría raíz con sus hijos directos.
type CategoryTreeResponse struct {
	CategoryResponse
	Children []CategoryResponse `json:"children"`
}

// CategoryPathResponse cadena raíz → categoría y su etiqueta de miga de pan.
type CategoryPathResponse struct {
	Path  []CategoryResponse `json:"path"`
	Label string             `json:"label"`
}

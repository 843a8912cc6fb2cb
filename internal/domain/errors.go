package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrCategoryInUse    = errors.New("la categoría tiene subcategorías o productos")
	ErrCategoryCycle    = errors.New("ciclo detectado en la jerarquía de categorías")
	ErrStoreUnavailable = errors.New("almacén de catálogo no disponible")
	ErrFileMissing      = errors.New("archivo no encontrado en el almacenamiento")
)

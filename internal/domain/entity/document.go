package entity

import (
	"path"
	"strings"
	"time"
)

// FileType clasifica un documento técnico.
type FileType string

const (
	FileTypeDatasheet FileType = "datasheet"
	FileTypeDrawing   FileType = "drawing"
	FileTypeManual    FileType = "manual"
	FileTypeOther     FileType = "other"
)

// Valid indica si el tipo pertenece a la enumeración.
func (t FileType) Valid() bool {
	switch t {
	case FileTypeDatasheet, FileTypeDrawing, FileTypeManual, FileTypeOther:
		return true
	}
	return false
}

// Document es un archivo (ficha técnica, plano, manual) asociado a uno o varios productos.
// Sobrevive a la desvinculación de un producto; solo se destruye con un borrado explícito.
type Document struct {
	ID         string
	Title      string
	File       string // referencia en el blob store, ej. documents/cbeg-ljn.pdf
	FileType   FileType
	Version    string
	UploadedAt time.Time
}

// CleanRef forma canónica de una referencia del blob store: separadores "/", sin "." ni "..",
// sin barra inicial. Devuelve "" si la referencia no nombra ningún archivo.
func CleanRef(ref string) string {
	p := strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(ref, "\\", "/")), "/")
	if p == "." {
		return ""
	}
	return p
}

// Filename nombre original del archivo (último segmento de la referencia).
func (d *Document) Filename() string {
	if d.File == "" {
		return ""
	}
	return path.Base(d.File)
}

// catalogctl tareas de operación del catálogo: migraciones, carga inicial,
// tokens de descarga y mantenimiento del árbol de categorías.
//
// Uso: go run ./cmd/catalogctl <comando> [flags]
// La configuración se lee igual que en el servidor (variables de entorno / .env).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Package userid normaliza identificadores de usuario (entry numbers y emails)
// para que la comparación de propiedad no dependa de mayúsculas o espacios.
package userid

import (
	"strings"

	"golang.org/x/text/cases"
)

// Normalize recorta espacios y aplica case folding Unicode.
// Un Caser no se comparte entre goroutines, por eso se crea por llamada.
func Normalize(id string) string {
	return cases.Fold().String(strings.TrimSpace(id))
}

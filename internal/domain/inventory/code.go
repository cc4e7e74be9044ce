package inventory

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeCode recorta espacios y pasa el código a mayúsculas.
// Se aplica en cada escritura de códigos de Emplacement y Article, de modo que "frigo" y "FRIGO" colisionan.
func NormalizeCode(code string) string {
	// cases.Caser no es seguro para uso concurrente: uno por llamada.
	return cases.Upper(language.Und).String(strings.TrimSpace(code))
}

// NormalizeEAN recorta el EAN; cadena vacía significa "sin EAN".
func NormalizeEAN(ean *string) *string {
	if ean == nil {
		return nil
	}
	v := strings.TrimSpace(*ean)
	if v == "" {
		return nil
	}
	return &v
}

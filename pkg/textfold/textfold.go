// Package textfold normaliza texto para búsquedas sin distinguir mayúsculas ni tildes
// ("José" coincide con "jose").
package textfold

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold devuelve s en minúsculas y sin marcas diacríticas.
func Fold(s string) string {
	// Los transformers guardan estado: uno por llamada.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// Join pliega y concatena los campos buscables en un solo texto.
func Join(fields ...string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			parts = append(parts, Fold(f))
		}
	}
	return strings.Join(parts, " ")
}

// Contains indica si needle aparece en alguno de los campos, plegando ambos lados.
// Un needle vacío siempre coincide.
func Contains(needle string, fields ...string) bool {
	needle = Fold(strings.TrimSpace(needle))
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(Fold(f), needle) {
			return true
		}
	}
	return false
}

package dto

import "strings"

func trim(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

func upper(s *string) {
	if s != nil {
		*s = strings.ToUpper(strings.TrimSpace(*s))
	}
}

func lower(s *string) {
	if s != nil {
		*s = strings.ToLower(strings.TrimSpace(*s))
	}
}

// compactPhone elimina espacios, guiones y paréntesis que suelen venir de formularios.
func compactPhone(s *string) {
	if s == nil {
		return
	}
	*s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '.':
			return -1
		}
		return r
	}, *s)
}

// nilIfEmpty convierte "" en ausente (campos únicos opcionales como idNumber).
func nilIfEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// uniqueTrimmed recorta, descarta vacíos y duplicados conservando el orden.
// Devuelve nil solo si la entrada era nil (ausente en una actualización parcial).
func uniqueTrimmed(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

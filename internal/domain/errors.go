package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas). Cada capa devuelve el error que detecta
// y el orquestador lo propaga sin modificarlo; el transporte los traduce con errors.Is.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrValidation   = errors.New("datos inválidos")
	ErrConflict     = errors.New("conflicto con un registro existente")
	ErrInternal     = errors.New("error interno")
)

// FieldError describe una restricción incumplida por un campo concreto.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa todos los campos inválidos de una mutación (nunca solo el primero).
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError construye el error a partir de la lista de campos.
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Is permite errors.Is(err, domain.ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Add agrega un campo inválido.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil devuelve nil si no se acumuló ningún campo, para poder retornarlo directamente.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Tipos de error expuestos a los llamadores.
const (
	KindUnauthorized = "unauthorized"
	KindForbidden    = "forbidden"
	KindNotFound     = "not_found"
	KindValidation   = "validation"
	KindConflict     = "conflict"
	KindInternal     = "internal"
)

// KindOf clasifica un error en la taxonomía de dominio. Cualquier error desconocido es interno.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound):
		return KindNotFound
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrConflict):
		return KindConflict
	default:
		return KindInternal
	}
}

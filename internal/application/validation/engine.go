// Package validation es el motor de validación: restricciones declarativas por campo
// (etiquetas validate de los DTO) más reglas entre entidades que consultan el almacén.
// No autoriza: se ejecuta después de un ALLOW y antes de cualquier escritura.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/Casos-api/internal/domain"
)

// phoneRe formato internacional: +<código de país de 1 a 3 dígitos><9 o 10 dígitos>.
var phoneRe = regexp.MustCompile(`^\+[1-9]\d{0,2}\d{9,10}$`)

// Normalizer lo implementan los DTO que se normalizan antes de validar.
type Normalizer interface {
	Normalize()
}

// Engine motor de validación. Es seguro para uso concurrente.
type Engine struct {
	v   *validator.Validate
	now func() time.Time
}

// NewEngine construye el motor registrando las reglas propias (phone, notfuture).
func NewEngine() *Engine {
	e := &Engine{
		v:   validator.New(validator.WithRequiredStructEnabled()),
		now: time.Now,
	}
	// Los errores se reportan con el nombre JSON del campo.
	e.v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = e.v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	_ = e.v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		return ok && !t.After(e.now())
	})
	return e
}

// Fields normaliza el DTO (si aplica) y acumula todas las violaciones de campo.
// Nunca devuelve nil: el llamador agrega reglas entre entidades y usa OrNil.
func (e *Engine) Fields(in any) *domain.ValidationError {
	if n, ok := in.(Normalizer); ok {
		n.Normalize()
	}
	verr := domain.NewValidationError()
	err := e.v.Struct(in)
	if err == nil {
		return verr
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		verr.Add("_", err.Error())
		return verr
	}
	for _, fe := range ves {
		verr.Add(fe.Field(), message(fe))
	}
	return verr
}

// IsValidPhone aplica la misma regla que la etiqueta phone.
func IsValidPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}

func message(fe validator.FieldError) string {
	unit := "caracteres"
	switch fe.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		unit = "elementos"
	}
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "min":
		return fmt.Sprintf("debe tener al menos %s %s", fe.Param(), unit)
	case "max":
		return fmt.Sprintf("debe tener como máximo %s %s", fe.Param(), unit)
	case "oneof":
		return "debe ser uno de: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "email":
		return "formato de email inválido"
	case "phone":
		return "formato de teléfono inválido (+<código de país><9 o 10 dígitos>)"
	case "notfuture":
		return "no puede ser una fecha futura"
	case "gt":
		return "debe ser mayor que " + fe.Param()
	default:
		return "no cumple la regla " + fe.Tag()
	}
}

func has(verr *domain.ValidationError, field string) bool {
	for _, f := range verr.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

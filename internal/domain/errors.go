package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrConflict        = errors.New("conflicto con el estado actual")
	ErrUnsupportedType = errors.New("tipo de documento no soportado")
)

// Códigos de ValidationError.
const (
	CodeLastLineItem           = "LAST_LINE_ITEM"
	CodeLineNotFound           = "LINE_NOT_FOUND"
	CodeMissingLineItems       = "MISSING_LINE_ITEMS"
	CodeExtraChargesNotAllowed = "EXTRA_CHARGES_NOT_ALLOWED"
	CodeIncompleteDocument     = "INCOMPLETE_DOCUMENT"
)

// ValidationError violación estructural de un documento (p. ej. eliminar la última línea).
// El llamador rechaza la mutación y deja el estado sin cambios.
type ValidationError struct {
	Code    string
	Message string
	Field   string // opcional
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
	}
	return e.Code + ": " + e.Message
}

// NewValidationError construye un ValidationError.
func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// AsValidationError extrae el ValidationError de la cadena de errores, si existe.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

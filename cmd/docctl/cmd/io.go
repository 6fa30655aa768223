package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jhoicas/commercial-docs/internal/application/dto"
	"github.com/jhoicas/commercial-docs/internal/domain"
)

// readJSON decodifica el archivo ("-" = stdin) en v.
func readJSON(path string, stdin io.Reader, v any) error {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("%s: JSON inválido: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// errorOf traduce el error al mismo cuerpo que devuelve la API.
func errorOf(err error) *dto.ErrorResponse {
	if ve, ok := domain.AsValidationError(err); ok {
		return &dto.ErrorResponse{Code: ve.Code, Message: ve.Message, Field: ve.Field}
	}
	switch {
	case errors.Is(err, domain.ErrUnsupportedType):
		return &dto.ErrorResponse{Code: "UNSUPPORTED_TYPE", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return &dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	}
	return &dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()}
}

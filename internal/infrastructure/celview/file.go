package celview

import (
	"fmt"

	"github.com/jhoicas/commercial-docs/internal/domain/entity"
	"github.com/jhoicas/commercial-docs/internal/domain/view"
	"github.com/jhoicas/commercial-docs/pkg/viewfile"
)

// Sets buckets compilados a partir del archivo de vistas, separados por tipo.
type Sets struct {
	Documents map[entity.DocumentType][]view.Bucket[entity.Document]
	PriceBook []view.Bucket[entity.PriceBookEntry]
}

// FromFile compila todas las vistas del archivo. Un tipo desconocido es un error.
func FromFile(c *Compiler, f *viewfile.File) (Sets, error) {
	sets := Sets{Documents: make(map[entity.DocumentType][]view.Bucket[entity.Document])}
	if f == nil {
		return sets, nil
	}
	for name, specs := range f.Views {
		t := entity.DocumentType(name)
		switch {
		case t == entity.TypePriceBook:
			buckets, err := Buckets[entity.PriceBookEntry](c, specs)
			if err != nil {
				return Sets{}, fmt.Errorf("%s: %w", name, err)
			}
			sets.PriceBook = buckets
		case t.IsValid():
			buckets, err := Buckets[entity.Document](c, specs)
			if err != nil {
				return Sets{}, fmt.Errorf("%s: %w", name, err)
			}
			sets.Documents[t] = buckets
		default:
			return Sets{}, fmt.Errorf("tipo de documento desconocido en vistas: %q", name)
		}
	}
	return sets, nil
}

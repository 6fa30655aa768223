package view

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// BucketAll vista identidad; siempre existe aunque la definición no la declare.
const BucketAll = "all"

// Record registro filtrable: expone sus campos como texto por nombre.
type Record interface {
	Field(name string) (string, bool)
}

// Bucket vista predefinida: un predicado y, opcionalmente, un orden.
// Match nil equivale a aceptar todo. Order, si existe, se aplica con ordenamiento
// estable (los empates conservan el orden de entrada).
type Bucket[R Record] struct {
	ID    string
	Label string
	Match func(rec R, now time.Time) bool
	Order func(a, b R) int
}

// Definition configuración de vistas de un tipo de registro.
type Definition[R Record] struct {
	Buckets      []Bucket[R]
	Facets       []string
	SearchFields []string
}

// Validate verifica que los IDs de bucket no estén vacíos ni repetidos.
func (d Definition[R]) Validate() error {
	seen := make(map[string]struct{}, len(d.Buckets))
	for _, b := range d.Buckets {
		if strings.TrimSpace(b.ID) == "" {
			return fmt.Errorf("bucket sin id")
		}
		if _, dup := seen[b.ID]; dup {
			return fmt.Errorf("bucket duplicado: %s", b.ID)
		}
		seen[b.ID] = struct{}{}
	}
	return nil
}

// Extend agrega buckets al final de la definición. No se permite redefinir un ID existente.
func (d Definition[R]) Extend(extra ...Bucket[R]) (Definition[R], error) {
	out := d
	out.Buckets = append(slices.Clone(d.Buckets), extra...)
	if err := out.Validate(); err != nil {
		return d, err
	}
	return out, nil
}

// Query criterio de filtrado: vista + facetas + búsqueda libre.
type Query struct {
	View       string
	Facets     map[string]string
	SearchTerm string
}

// Info describe una vista para menús del host.
type Info struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Engine aplica vista, facetas y búsqueda sobre una colección de registros.
// No tiene estado mutable: puede compartirse entre goroutines.
type Engine[R Record] struct {
	def          Definition[R]
	byID         map[string]Bucket[R]
	clock        func() time.Time
	placeholders map[string]struct{}
}

// New construye el motor. Si dos buckets comparten ID gana el primero (ver Definition.Validate).
func New[R Record](def Definition[R], opts ...Option) *Engine[R] {
	s := defaultSettings()
	for _, o := range opts {
		o(&s)
	}

	e := &Engine[R]{
		clock:        s.clock,
		placeholders: make(map[string]struct{}, len(s.placeholders)),
		byID:         make(map[string]Bucket[R], len(def.Buckets)+1),
	}
	for _, p := range s.placeholders {
		e.placeholders[p] = struct{}{}
	}

	buckets := make([]Bucket[R], 0, len(def.Buckets)+1)
	if !slices.ContainsFunc(def.Buckets, func(b Bucket[R]) bool { return b.ID == BucketAll }) {
		buckets = append(buckets, Bucket[R]{ID: BucketAll, Label: "All"})
	}
	for _, b := range def.Buckets {
		if _, dup := e.byID[b.ID]; dup {
			continue
		}
		e.byID[b.ID] = b
		buckets = append(buckets, b)
	}
	if _, ok := e.byID[BucketAll]; !ok {
		e.byID[BucketAll] = buckets[0]
	}

	e.def = Definition[R]{
		Buckets:      buckets,
		Facets:       slices.Clone(def.Facets),
		SearchFields: slices.Clone(def.SearchFields),
	}
	return e
}

// Views lista las vistas en orden de declaración.
func (e *Engine[R]) Views() []Info {
	out := make([]Info, 0, len(e.def.Buckets))
	for _, b := range e.def.Buckets {
		out = append(out, Info{ID: b.ID, Label: b.Label})
	}
	return out
}

// Facets nombres de campo ofrecidos como faceta.
func (e *Engine[R]) Facets() []string { return slices.Clone(e.def.Facets) }

// SearchFields campos que recorre la búsqueda libre.
func (e *Engine[R]) SearchFields() []string { return slices.Clone(e.def.SearchFields) }

// Resolve devuelve la vista efectiva; un ID desconocido o vacío se resuelve a "all".
func (e *Engine[R]) Resolve(id string) (string, bool) {
	if _, ok := e.byID[id]; ok {
		return id, true
	}
	return BucketAll, false
}

// Apply filtra en tres etapas (vista, facetas, búsqueda) combinadas con AND.
// Conserva el orden de entrada salvo que la vista defina un orden propio.
// Nunca modifica records; siempre devuelve un slice nuevo.
func (e *Engine[R]) Apply(records []R, q Query) []R {
	id, _ := e.Resolve(q.View)
	bucket := e.byID[id]
	now := e.clock()
	facets := e.activeFacets(q.Facets)
	search := newMatcher(q.SearchTerm, e.def.SearchFields)

	out := make([]R, 0, len(records))
	for _, rec := range records {
		if bucket.Match != nil && !bucket.Match(rec, now) {
			continue
		}
		if !matchFacets(rec, facets) {
			continue
		}
		if !search.match(rec) {
			continue
		}
		out = append(out, rec)
	}
	if bucket.Order != nil {
		slices.SortStableFunc(out, bucket.Order)
	}
	return out
}

// Apply atajo sin estado: construye un motor con la configuración por defecto y filtra.
func Apply[R Record](records []R, q Query, def Definition[R]) []R {
	return New(def).Apply(records, q)
}

type facet struct {
	field string
	value string
}

// activeFacets descarta valores vacíos o marcadores tipo "All Categories".
func (e *Engine[R]) activeFacets(in map[string]string) []facet {
	if len(in) == 0 {
		return nil
	}
	out := make([]facet, 0, len(in))
	for field, value := range in {
		if _, skip := e.placeholders[strings.TrimSpace(value)]; skip {
			continue
		}
		out = append(out, facet{field: field, value: value})
	}
	return out
}

// matchFacets igualdad exacta; un campo que el registro no tiene lo excluye.
func matchFacets[R Record](rec R, facets []facet) bool {
	for _, f := range facets {
		v, ok := rec.Field(f.field)
		if !ok || v != f.value {
			return false
		}
	}
	return true
}

type matcher struct {
	term   string
	fields []string
	fold   cases.Caser
}

func newMatcher(term string, fields []string) matcher {
	m := matcher{fields: fields, fold: cases.Fold()}
	if t := strings.TrimSpace(term); t != "" {
		m.term = m.fold.String(t)
	}
	return m
}

// match subcadena sin distinguir mayúsculas en cualquiera de los campos (OR).
func (m matcher) match(rec Record) bool {
	if m.term == "" {
		return true
	}
	for _, f := range m.fields {
		v, ok := rec.Field(f)
		if !ok || v == "" {
			continue
		}
		if strings.Contains(m.fold.String(v), m.term) {
			return true
		}
	}
	return false
}

// Package validation agrupa la validación de completitud al guardar y la validación de
// cuerpos de solicitud. No formatea mensajes: solo informa campo y regla.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jhoicas/commercial-docs/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Reglas propias.
const (
	RuleDocStatus   = "doc_status"
	RuleDocType     = "doc_type"
	RuleDecPositive = "dec_positive"
)

// Issue campo que no cumple una regla.
type Issue struct {
	Field string
	Rule  string
}

// Validator envoltorio de go-playground/validator con las reglas del dominio registradas.
type Validator struct {
	v *validator.Validate
}

// New registra nombres JSON y reglas propias.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// decimal.Decimal se valida como su representación en texto.
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		if d, ok := f.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})
	must(v.RegisterValidation(RuleDecPositive, func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && d.IsPositive()
	}))
	must(v.RegisterValidation(RuleDocType, func(fl validator.FieldLevel) bool {
		return entity.DocumentType(fl.Field().String()).IsValid()
	}))
	v.RegisterStructValidation(documentStatus, documentRules{})
	return &Validator{v: v}
}

// must una regla que no se registra es un error de programación.
func must(err error) {
	if err != nil {
		panic("validation: " + err.Error())
	}
}

// documentRules vista del documento con las reglas de completitud al guardar.
type documentRules struct {
	Type      string      `json:"type" validate:"required,doc_type"`
	Status    string      `json:"status" validate:"required"`
	LineItems []lineRules `json:"line_items" validate:"required,min=1,dive"`
}

type lineRules struct {
	ProductName string          `json:"product_name" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" validate:"dec_positive"`
}

// documentStatus el estado debe pertenecer a la enumeración del tipo.
func documentStatus(sl validator.StructLevel) {
	d := sl.Current().Interface().(documentRules)
	if d.Status == "" || !entity.DocumentType(d.Type).IsValid() {
		return
	}
	if !entity.IsValidStatus(entity.DocumentType(d.Type), d.Status) {
		sl.ReportError(d.Status, "status", "Status", RuleDocStatus, "")
	}
}

// Document verifica que el documento esté completo para guardarse:
// tipo y estado válidos, al menos una línea, y cada línea con producto y cantidad > 0.
// Un documento completo devuelve nil.
func (val *Validator) Document(doc entity.Document) []Issue {
	rules := documentRules{Type: string(doc.Type), Status: doc.Status}
	if doc.LineItems != nil {
		rules.LineItems = make([]lineRules, len(doc.LineItems))
		for i, it := range doc.LineItems {
			rules.LineItems[i] = lineRules{ProductName: strings.TrimSpace(it.ProductName), Quantity: it.Quantity}
		}
	}
	return issuesOf(val.v.Struct(rules))
}

// Struct valida un cuerpo de solicitud con sus etiquetas validate.
func (val *Validator) Struct(s any) []Issue {
	return issuesOf(val.v.Struct(s))
}

func issuesOf(err error) []Issue {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Issue{{Field: "", Rule: "invalid"}}
	}
	out := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, Issue{Field: fieldPath(fe.Namespace()), Rule: fe.Tag()})
	}
	return out
}

// fieldPath quita el nombre del struct raíz: "documentRules.line_items[0].quantity" → "line_items[0].quantity".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// Fields lista solo los nombres de campo (útil para mensajes de log).
func Fields(issues []Issue) string {
	parts := make([]string, len(issues))
	for i, is := range issues {
		parts[i] = is.Field + ":" + is.Rule
	}
	return strings.Join(parts, ",")
}

package pricing

import (
	"github.com/jhoicas/commercial-docs/internal/domain"
	"github.com/jhoicas/commercial-docs/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Operaciones sobre la colección de líneas de un documento. Todas devuelven un documento
// nuevo con los totales ya recalculados; el documento de entrada nunca se modifica y, si
// la operación se rechaza, el llamador conserva su estado intacto.

// AddLine agrega una línea en cero al final, con un ID nuevo del contador del documento.
func AddLine(doc entity.Document) entity.Document {
	out := doc.Clone()
	id := nextLineID(out)
	discountMode, taxMode := entity.DefaultModes(out.Type)
	out.LineItems = append(out.LineItems, settle(entity.LineItem{
		ID:           id,
		DiscountMode: discountMode,
		TaxMode:      taxMode,
	}))
	out.NextLineID = id + 1
	out.Totals = Aggregate(out.LineItems, out.Adjustment, ChargesFor(out)...)
	return out
}

// EditLine aplica la edición a la línea lineID y recalcula la línea y los totales en la misma llamada.
func EditLine(doc entity.Document, lineID int64, field Field, raw any) (entity.Document, error) {
	if doc.LineItems == nil {
		return doc, domain.NewValidationError(domain.CodeMissingLineItems, "el documento no tiene arreglo de líneas")
	}
	idx := doc.LineIndex(lineID)
	if idx < 0 {
		return doc, domain.NewValidationError(domain.CodeLineNotFound, "línea no encontrada")
	}
	out := doc.Clone()
	out.LineItems[idx] = ApplyEdit(out.LineItems[idx], field, raw)
	out.Totals = Aggregate(out.LineItems, out.Adjustment, ChargesFor(out)...)
	return out, nil
}

// RemoveLine elimina la línea lineID conservando el orden de las demás.
// Todo documento conserva al menos una línea: eliminar la última se rechaza con ValidationError.
func RemoveLine(doc entity.Document, lineID int64) (entity.Document, error) {
	if doc.LineItems == nil {
		return doc, domain.NewValidationError(domain.CodeMissingLineItems, "el documento no tiene arreglo de líneas")
	}
	idx := doc.LineIndex(lineID)
	if idx < 0 {
		return doc, domain.NewValidationError(domain.CodeLineNotFound, "línea no encontrada")
	}
	if len(doc.LineItems) == 1 {
		return doc, domain.NewValidationError(domain.CodeLastLineItem, "no se puede eliminar la última línea del documento")
	}
	out := doc.Clone()
	out.LineItems = append(out.LineItems[:idx], out.LineItems[idx+1:]...)
	out.Totals = Aggregate(out.LineItems, out.Adjustment, ChargesFor(out)...)
	return out, nil
}

// SetAdjustment fija el ajuste manual (puede ser negativo) y recalcula los totales.
func SetAdjustment(doc entity.Document, raw any) entity.Document {
	out := doc.Clone()
	out.Adjustment = CoerceSigned(raw)
	out.Totals = Aggregate(out.LineItems, out.Adjustment, ChargesFor(out)...)
	return out
}

// SetExtraCharges fija impuesto al consumo y comisión de ventas (solo órdenes de compra).
func SetExtraCharges(doc entity.Document, exciseDuty, salesCommission any) (entity.Document, error) {
	if !doc.Type.AllowsExtraCharges() {
		return doc, domain.NewValidationError(domain.CodeExtraChargesNotAllowed, "solo las órdenes de compra admiten cargos adicionales")
	}
	out := doc.Clone()
	out.ExciseDuty = Coerce(exciseDuty)
	out.SalesCommission = Coerce(salesCommission)
	out.Totals = Aggregate(out.LineItems, out.Adjustment, ChargesFor(out)...)
	return out, nil
}

// Recalculate normaliza un documento recibido desde fuera: asigna IDs nuevos a líneas sin
// ID o con un ID repetido, recalcula cada línea y consolida los totales.
func Recalculate(doc entity.Document) (entity.Document, error) {
	return recalculate(doc, nil)
}

// Reconcile recalcula doc como reemplazo de prev. Además de las reglas de Recalculate, una
// línea que trae un ID ya entregado por prev pero que ya no existe en prev recibe un ID nuevo:
// los IDs eliminados nunca se reutilizan.
func Reconcile(prev, doc entity.Document) (entity.Document, error) {
	if doc.NextLineID < prev.NextLineID {
		doc.NextLineID = prev.NextLineID
	}
	live := make(map[int64]struct{}, len(prev.LineItems))
	for _, it := range prev.LineItems {
		live[it.ID] = struct{}{}
	}
	return recalculate(doc, live)
}

func recalculate(doc entity.Document, live map[int64]struct{}) (entity.Document, error) {
	if doc.LineItems == nil {
		return doc, domain.NewValidationError(domain.CodeMissingLineItems, "el documento no tiene arreglo de líneas")
	}
	out := doc.Clone()
	issued := doc.NextLineID
	next := nextLineID(out)
	seen := make(map[int64]struct{}, len(out.LineItems))
	defDiscount, defTax := entity.DefaultModes(out.Type)
	for i := range out.LineItems {
		it := out.LineItems[i]
		if !keepLineID(it.ID, issued, seen, live) {
			it.ID = next
			next++
		}
		seen[it.ID] = struct{}{}
		if !it.DiscountMode.IsValid() {
			it.DiscountMode = defDiscount
		}
		if !it.TaxMode.IsValid() {
			it.TaxMode = defTax
		}
		out.LineItems[i] = Refresh(it)
	}
	out.NextLineID = next
	if !out.Type.AllowsExtraCharges() {
		out.ExciseDuty = decimal.Zero
		out.SalesCommission = decimal.Zero
	}
	out.Totals = Aggregate(out.LineItems, out.Adjustment, ChargesFor(out)...)
	return out, nil
}

// keepLineID un ID se conserva si es positivo y no se repite en el documento. Con historial
// (live no nil), un ID menor que el contador ya fue entregado y solo vale si la línea sigue viva.
func keepLineID(id, issued int64, seen, live map[int64]struct{}) bool {
	if id <= 0 {
		return false
	}
	if _, dup := seen[id]; dup {
		return false
	}
	if live != nil && id < issued {
		_, ok := live[id]
		return ok
	}
	return true
}

// nextLineID siguiente ID libre: nunca menor que el contador ni que el mayor ID existente + 1.
func nextLineID(doc entity.Document) int64 {
	next := doc.NextLineID
	if next < 1 {
		next = 1
	}
	for _, it := range doc.LineItems {
		if it.ID >= next {
			next = it.ID + 1
		}
	}
	return next
}

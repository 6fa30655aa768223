package pricing

import (
	"github.com/jhoicas/commercial-docs/internal/domain"
	"github.com/jhoicas/commercial-docs/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Nombres de los cargos adicionales de una orden de compra.
const (
	ChargeExciseDuty      = "excise_duty"
	ChargeSalesCommission = "sales_commission"
)

// Charge cargo plano que se suma después del gran total (no forma parte de la economía de las líneas).
type Charge struct {
	Name   string
	Amount decimal.Decimal
}

// Aggregate consolida las líneas y el ajuste manual en el bloque de totales.
//
// Monto, descuento e impuesto se suman por separado a partir de los valores sin redondear
// de cada línea; el redondeo a 2 decimales ocurre una sola vez, al consolidar. GrandTotal se
// obtiene de los componentes ya redondeados para que la igualdad
// GrandTotal = Subtotal - DiscountTotal + TaxTotal + Adjustment se cumpla exactamente.
// Si se pasan cargos adicionales, FinalPayable = GrandTotal + Σ cargos.
// Sin líneas, todos los totales son 0. Sin estado: misma entrada, mismo resultado.
func Aggregate(items []entity.LineItem, adjustment decimal.Decimal, extra ...Charge) entity.Totals {
	subtotal := decimal.Zero
	discount := decimal.Zero
	tax := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Amount)
		discount = discount.Add(it.Discount)
		tax = tax.Add(it.Tax)
	}

	t := entity.Totals{
		Subtotal:      subtotal.Round(2),
		DiscountTotal: discount.Round(2),
		TaxTotal:      tax.Round(2),
		Adjustment:    adjustment.Round(2),
		ExtraCharges:  decimal.Zero.Round(2),
	}
	t.GrandTotal = t.Subtotal.Sub(t.DiscountTotal).Add(t.TaxTotal).Add(t.Adjustment)

	if len(extra) > 0 {
		charges := decimal.Zero
		for _, c := range extra {
			charges = charges.Add(c.Amount)
		}
		t.ExtraCharges = charges.Round(2)
		finalPayable := t.GrandTotal.Add(t.ExtraCharges)
		t.FinalPayable = &finalPayable
	}
	return t
}

// ChargesFor devuelve los cargos adicionales del documento (solo órdenes de compra).
func ChargesFor(doc entity.Document) []Charge {
	if !doc.Type.AllowsExtraCharges() {
		return nil
	}
	return []Charge{
		{Name: ChargeExciseDuty, Amount: doc.ExciseDuty},
		{Name: ChargeSalesCommission, Amount: doc.SalesCommission},
	}
}

// DocumentTotals consolida los totales de un documento.
// Un documento sin arreglo de líneas (nil) está mal formado y retorna ValidationError.
func DocumentTotals(doc entity.Document) (entity.Totals, error) {
	if doc.LineItems == nil {
		return entity.Totals{}, domain.NewValidationError(domain.CodeMissingLineItems, "el documento no tiene arreglo de líneas")
	}
	return Aggregate(doc.LineItems, doc.Adjustment, ChargesFor(doc)...), nil
}

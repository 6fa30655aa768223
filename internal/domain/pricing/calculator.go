package pricing

import (
	"fmt"
	"strings"

	"github.com/jhoicas/commercial-docs/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Field campo editable de una línea.
type Field string

const (
	FieldProductID      Field = "productId"
	FieldProductName    Field = "productName"
	FieldQuantity       Field = "quantity"
	FieldListPrice      Field = "listPrice"
	FieldDiscountRate   Field = "discountRate"
	FieldDiscountAmount Field = "discountAmount"
	FieldTaxRate        Field = "taxRate"
	FieldTaxAmount      Field = "taxAmount"
)

var fieldsByKey = map[string]Field{
	"productid":      FieldProductID,
	"productname":    FieldProductName,
	"quantity":       FieldQuantity,
	"listprice":      FieldListPrice,
	"discountrate":   FieldDiscountRate,
	"discountamount": FieldDiscountAmount,
	"taxrate":        FieldTaxRate,
	"taxamount":      FieldTaxAmount,
}

// ParseField acepta camelCase o snake_case (p. ej. "list_price").
func ParseField(s string) (Field, bool) {
	f, ok := fieldsByKey[strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))]
	return f, ok
}

// IsMonetary indica si editar el campo afecta los montos de la línea.
func (f Field) IsMonetary() bool {
	switch f {
	case FieldQuantity, FieldListPrice, FieldDiscountRate, FieldDiscountAmount, FieldTaxRate, FieldTaxAmount:
		return true
	}
	return false
}

// Recompute recalcula los campos derivados de la línea después de editar changed.
// Función pura: recibe la línea con el nuevo valor ya asignado y devuelve una nueva.
//
//   - quantity/listPrice: Amount = Quantity * ListPrice, luego descuento, impuesto y Total.
//   - discountRate/discountAmount/taxRate/taxAmount: fija el modo según el campo editado y
//     recalcula el valor monetario y el Total.
//   - campos no monetarios: los montos no cambian.
//
// Nunca retorna error; las entradas inválidas ya llegan normalizadas a 0.
func Recompute(item entity.LineItem, changed Field) entity.LineItem {
	if !changed.IsMonetary() {
		return item
	}
	switch changed {
	case FieldDiscountRate:
		item.DiscountMode = entity.ModePercent
	case FieldDiscountAmount:
		item.DiscountMode = entity.ModeAmount
	case FieldTaxRate:
		item.TaxMode = entity.ModePercent
	case FieldTaxAmount:
		item.TaxMode = entity.ModeAmount
	}
	return settle(item)
}

// ApplyEdit asigna el valor crudo (tal como llega del teclado) al campo y recalcula la línea.
func ApplyEdit(item entity.LineItem, field Field, raw any) entity.LineItem {
	switch field {
	case FieldProductID:
		item.ProductID = textOf(raw)
	case FieldProductName:
		item.ProductName = textOf(raw)
	case FieldQuantity:
		item.Quantity = Coerce(raw)
	case FieldListPrice:
		item.ListPrice = Coerce(raw)
	case FieldDiscountRate:
		item.DiscountRate = clampRate(Coerce(raw))
	case FieldDiscountAmount:
		item.DiscountAmount = Coerce(raw)
	case FieldTaxRate:
		item.TaxRate = clampRate(Coerce(raw))
	case FieldTaxAmount:
		item.TaxAmount = Coerce(raw)
	default:
		return item
	}
	return Recompute(item, field)
}

// Refresh normaliza todas las entradas de la línea y recalcula los derivados.
// Se usa con líneas que llegan desde fuera (JSON) sin pasar por ApplyEdit.
func Refresh(item entity.LineItem) entity.LineItem {
	if !item.DiscountMode.IsValid() {
		item.DiscountMode = entity.ModePercent
	}
	if !item.TaxMode.IsValid() {
		item.TaxMode = entity.ModePercent
	}
	return settle(item)
}

// settle aplica las invariantes de la línea:
// Amount = Quantity*ListPrice; 0 <= Discount <= Amount; Total = Amount - Discount + Tax.
// El impuesto en porcentaje se calcula sobre el monto después del descuento.
func settle(item entity.LineItem) entity.LineItem {
	item.Quantity = nonNegative(item.Quantity)
	item.ListPrice = nonNegative(item.ListPrice)
	item.DiscountRate = clampRate(item.DiscountRate)
	item.DiscountAmount = nonNegative(item.DiscountAmount)
	item.TaxRate = clampRate(item.TaxRate)
	item.TaxAmount = nonNegative(item.TaxAmount)

	item.Amount = item.Quantity.Mul(item.ListPrice)

	if item.DiscountMode == entity.ModeAmount {
		// el descuento nunca supera el monto de la línea
		item.Discount = decimal.Min(item.DiscountAmount, item.Amount)
		item.DiscountRate = rateOf(item.Discount, item.Amount)
	} else {
		item.DiscountMode = entity.ModePercent
		item.Discount = item.Amount.Mul(item.DiscountRate).Div(hundred)
		item.DiscountAmount = item.Discount
	}

	base := item.Amount.Sub(item.Discount)
	if base.IsNegative() {
		base = decimal.Zero
	}
	if item.TaxMode == entity.ModeAmount {
		item.Tax = item.TaxAmount
		item.TaxRate = rateOf(item.Tax, base)
	} else {
		item.TaxMode = entity.ModePercent
		item.Tax = base.Mul(item.TaxRate).Div(hundred)
		item.TaxAmount = item.Tax
	}

	item.Total = item.Amount.Sub(item.Discount).Add(item.Tax)
	return item
}

// rateOf vista en porcentaje de part sobre base (0 si base es 0).
func rateOf(part, base decimal.Decimal) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}
	return clampRate(part.Div(base).Mul(hundred).Round(4))
}

func textOf(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(raw)
}

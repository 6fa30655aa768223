package entity

import "github.com/shopspring/decimal"

// PricingMode indica si un descuento o impuesto se captura como porcentaje o como monto.
type PricingMode string

const (
	ModePercent PricingMode = "percent"
	ModeAmount  PricingMode = "amount"
)

// IsValid verifica el modo.
func (m PricingMode) IsValid() bool {
	return m == ModePercent || m == ModeAmount
}

// LineItem representa una línea de un documento comercial.
// Discount y Tax son el valor monetario almacenado; DiscountRate/TaxRate son la vista en
// porcentaje (o la entrada, si el modo es percent). Amount, Discount, Tax y Total son
// derivados y solo los actualiza la calculadora.
type LineItem struct {
	ID             int64
	ProductID      string
	ProductName    string
	Quantity       decimal.Decimal
	ListPrice      decimal.Decimal
	DiscountMode   PricingMode
	DiscountRate   decimal.Decimal // 0–100
	DiscountAmount decimal.Decimal
	TaxMode        PricingMode
	TaxRate        decimal.Decimal // 0–100, sobre el monto después del descuento
	TaxAmount      decimal.Decimal
	Amount         decimal.Decimal // Quantity * ListPrice
	Discount       decimal.Decimal
	Tax            decimal.Decimal
	Total          decimal.Decimal // Amount - Discount + Tax
}

// DefaultModes modos de descuento e impuesto para líneas nuevas según el tipo de documento.
// Las órdenes de compra capturan el descuento como monto; el resto como porcentaje.
func DefaultModes(t DocumentType) (discount, tax PricingMode) {
	if t == TypePurchaseOrder {
		return ModeAmount, ModePercent
	}
	return ModePercent, ModePercent
}

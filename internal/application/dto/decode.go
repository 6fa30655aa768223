package dto

import (
	"bytes"
	"encoding/json"

	"github.com/jhoicas/commercial-docs/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// Los campos numéricos de entrada aceptan lo que se haya tecleado: número, texto numérico,
// texto vacío o basura. Lo que no es un número se interpreta como 0 en lugar de rechazar el cuerpo.

// number valor numérico crudo tal como llega en el JSON.
type number json.RawMessage

func (n *number) UnmarshalJSON(b []byte) error {
	*n = append((*n)[:0], b...)
	return nil
}

// Decimal interpreta el valor crudo con las mismas reglas que una edición de línea.
func (n number) Decimal() decimal.Decimal {
	raw := bytes.TrimSpace(n)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero
		}
		return pricing.CoerceSigned(s)
	}
	return pricing.CoerceSigned(json.Number(raw))
}

func (l *LineItemDTO) UnmarshalJSON(b []byte) error {
	type plain LineItemDTO
	var in struct {
		plain
		Quantity       number `json:"quantity"`
		ListPrice      number `json:"list_price"`
		DiscountRate   number `json:"discount_rate"`
		DiscountAmount number `json:"discount_amount"`
		TaxRate        number `json:"tax_rate"`
		TaxAmount      number `json:"tax_amount"`
		Amount         number `json:"amount"`
		Discount       number `json:"discount"`
		Tax            number `json:"tax"`
		Total          number `json:"total"`
	}
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*l = LineItemDTO(in.plain)
	l.Quantity = in.Quantity.Decimal()
	l.ListPrice = in.ListPrice.Decimal()
	l.DiscountRate = in.DiscountRate.Decimal()
	l.DiscountAmount = in.DiscountAmount.Decimal()
	l.TaxRate = in.TaxRate.Decimal()
	l.TaxAmount = in.TaxAmount.Decimal()
	l.Amount = in.Amount.Decimal()
	l.Discount = in.Discount.Decimal()
	l.Tax = in.Tax.Decimal()
	l.Total = in.Total.Decimal()
	return nil
}

func (r *DocumentRequest) UnmarshalJSON(b []byte) error {
	type plain DocumentRequest
	var in struct {
		plain
		Adjustment      number `json:"adjustment"`
		ExciseDuty      number `json:"excise_duty"`
		SalesCommission number `json:"sales_commission"`
	}
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*r = DocumentRequest(in.plain)
	r.Adjustment = in.Adjustment.Decimal()
	r.ExciseDuty = in.ExciseDuty.Decimal()
	r.SalesCommission = in.SalesCommission.Decimal()
	return nil
}

func (c *ChargeDTO) UnmarshalJSON(b []byte) error {
	type plain ChargeDTO
	var in struct {
		plain
		Amount number `json:"amount"`
	}
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*c = ChargeDTO(in.plain)
	c.Amount = in.Amount.Decimal()
	return nil
}

func (p *PriceBookEntryDTO) UnmarshalJSON(b []byte) error {
	type plain PriceBookEntryDTO
	var in struct {
		plain
		ListPrice number `json:"list_price"`
	}
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*p = PriceBookEntryDTO(in.plain)
	p.ListPrice = in.ListPrice.Decimal()
	return nil
}

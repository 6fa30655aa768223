package dto

import (
	"time"

	"github.com/jhoicas/commercial-docs/internal/domain/entity"
)

// ToLineItem convierte la línea recibida; los derivados se recalculan después.
func ToLineItem(in LineItemDTO) entity.LineItem {
	return entity.LineItem{
		ID:             in.ID,
		ProductID:      in.ProductID,
		ProductName:    in.ProductName,
		Quantity:       in.Quantity,
		ListPrice:      in.ListPrice,
		DiscountMode:   entity.PricingMode(in.DiscountMode),
		DiscountRate:   in.DiscountRate,
		DiscountAmount: in.DiscountAmount,
		TaxMode:        entity.PricingMode(in.TaxMode),
		TaxRate:        in.TaxRate,
		TaxAmount:      in.TaxAmount,
	}
}

// ToLineItems conserva nil: una lista ausente sigue ausente.
func ToLineItems(in []LineItemDTO) []entity.LineItem {
	if in == nil {
		return nil
	}
	out := make([]entity.LineItem, len(in))
	for i := range in {
		out[i] = ToLineItem(in[i])
	}
	return out
}

// FromLineItem línea para respuestas.
func FromLineItem(it entity.LineItem) LineItemDTO {
	return LineItemDTO{
		ID:             it.ID,
		ProductID:      it.ProductID,
		ProductName:    it.ProductName,
		Quantity:       it.Quantity,
		ListPrice:      it.ListPrice,
		DiscountMode:   string(it.DiscountMode),
		DiscountRate:   it.DiscountRate,
		DiscountAmount: it.DiscountAmount,
		TaxMode:        string(it.TaxMode),
		TaxRate:        it.TaxRate,
		TaxAmount:      it.TaxAmount,
		Amount:         it.Amount,
		Discount:       it.Discount,
		Tax:            it.Tax,
		Total:          it.Total,
	}
}

// FromTotals bloque de totales para respuestas.
func FromTotals(t entity.Totals) TotalsDTO {
	out := TotalsDTO{
		Subtotal:      t.Subtotal,
		DiscountTotal: t.DiscountTotal,
		TaxTotal:      t.TaxTotal,
		Adjustment:    t.Adjustment,
		GrandTotal:    t.GrandTotal,
		ExtraCharges:  t.ExtraCharges,
	}
	if t.FinalPayable != nil {
		fp := *t.FinalPayable
		out.FinalPayable = &fp
	}
	return out
}

// ToDocument convierte la solicitud en entidad (sin recalcular).
func ToDocument(in DocumentRequest) entity.Document {
	doc := entity.Document{
		ID:              in.ID,
		Type:            entity.DocumentType(in.Type),
		Number:          in.Number,
		Subject:         in.Subject,
		Status:          in.Status,
		AccountName:     in.AccountName,
		VendorName:      in.VendorName,
		CustomerName:    in.CustomerName,
		ContactName:     in.ContactName,
		Owner:           in.Owner,
		Carrier:         in.Carrier,
		TrackingNumber:  in.TrackingNumber,
		Category:        in.Category,
		Currency:        in.Currency,
		IssueDate:       derefTime(in.IssueDate),
		DueDate:         derefTime(in.DueDate),
		ValidUntil:      derefTime(in.ValidUntil),
		CreatedAt:       derefTime(in.CreatedAt),
		LineItems:       ToLineItems(in.LineItems),
		Adjustment:      in.Adjustment,
		ExciseDuty:      in.ExciseDuty,
		SalesCommission: in.SalesCommission,
		Version:         in.Version,
	}
	return doc
}

// FromDocument documento para respuestas.
func FromDocument(d entity.Document) DocumentResponse {
	lines := make([]LineItemDTO, len(d.LineItems))
	for i := range d.LineItems {
		lines[i] = FromLineItem(d.LineItems[i])
	}
	return DocumentResponse{
		ID:              d.ID,
		Type:            string(d.Type),
		Number:          d.Number,
		Subject:         d.Subject,
		Status:          d.Status,
		AccountName:     d.AccountName,
		VendorName:      d.VendorName,
		CustomerName:    d.CustomerName,
		ContactName:     d.ContactName,
		Owner:           d.Owner,
		Carrier:         d.Carrier,
		TrackingNumber:  d.TrackingNumber,
		Category:        d.Category,
		Currency:        d.Currency,
		IssueDate:       timePtr(d.IssueDate),
		DueDate:         timePtr(d.DueDate),
		ValidUntil:      timePtr(d.ValidUntil),
		LineItems:       lines,
		Adjustment:      d.Adjustment,
		ExciseDuty:      d.ExciseDuty,
		SalesCommission: d.SalesCommission,
		Totals:          FromTotals(d.Totals),
		Version:         d.Version,
		CreatedAt:       timePtr(d.CreatedAt),
		UpdatedAt:       timePtr(d.UpdatedAt),
	}
}

// FromDocuments lista para respuestas (nunca nil).
func FromDocuments(docs []entity.Document) []DocumentResponse {
	out := make([]DocumentResponse, len(docs))
	for i := range docs {
		out[i] = FromDocument(docs[i])
	}
	return out
}

// ToPriceBookEntry convierte el registro recibido.
func ToPriceBookEntry(in PriceBookEntryDTO) entity.PriceBookEntry {
	return entity.PriceBookEntry{
		ID:          in.ID,
		Name:        in.Name,
		ProductName: in.ProductName,
		Category:    in.Category,
		Description: in.Description,
		Currency:    in.Currency,
		Owner:       in.Owner,
		ListPrice:   in.ListPrice,
		Active:      in.Active,
		CreatedAt:   derefTime(in.CreatedAt),
	}
}

// FromPriceBookEntry registro para respuestas.
func FromPriceBookEntry(p entity.PriceBookEntry) PriceBookEntryDTO {
	return PriceBookEntryDTO{
		ID:          p.ID,
		Name:        p.Name,
		ProductName: p.ProductName,
		Category:    p.Category,
		Description: p.Description,
		Currency:    p.Currency,
		Owner:       p.Owner,
		ListPrice:   p.ListPrice,
		Active:      p.Active,
		Status:      p.Status(),
		CreatedAt:   timePtr(p.CreatedAt),
	}
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

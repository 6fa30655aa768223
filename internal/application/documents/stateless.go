package documents

import (
	"fmt"

	"github.com/jhoicas/commercial-docs/internal/application/dto"
	"github.com/jhoicas/commercial-docs/internal/domain"
	"github.com/jhoicas/commercial-docs/internal/domain/entity"
	"github.com/jhoicas/commercial-docs/internal/domain/pricing"
)

// Operaciones sin estado: reciben todo en la solicitud y no tocan el repositorio.

// Recompute aplica la edición de un campo a una línea suelta.
func (uc *UseCase) Recompute(in dto.RecomputeRequest) (*dto.LineItemDTO, error) {
	field, ok := pricing.ParseField(in.Field)
	if !ok {
		return nil, fmt.Errorf("campo %q: %w", in.Field, domain.ErrInvalidInput)
	}
	item := dto.ToLineItem(in.Item)
	discountMode, taxMode := entity.DefaultModes(entity.DocumentType(in.DocumentType))
	if !item.DiscountMode.IsValid() {
		item.DiscountMode = discountMode
	}
	if !item.TaxMode.IsValid() {
		item.TaxMode = taxMode
	}
	item = pricing.ApplyEdit(pricing.Refresh(item), field, in.Value)
	out := dto.FromLineItem(item)
	return &out, nil
}

// ComputeTotals consolida líneas sueltas. line_items ausente es ValidationError.
func (uc *UseCase) ComputeTotals(in dto.TotalsRequest) (*dto.TotalsDTO, error) {
	if in.LineItems == nil {
		return nil, domain.NewValidationError(domain.CodeMissingLineItems, "line_items es obligatorio")
	}
	items := dto.ToLineItems(in.LineItems)
	for i := range items {
		items[i] = pricing.Refresh(items[i])
	}
	charges := make([]pricing.Charge, 0, len(in.ExtraCharges))
	for _, c := range in.ExtraCharges {
		charges = append(charges, pricing.Charge{Name: c.Name, Amount: pricing.Coerce(c.Amount)})
	}
	out := dto.FromTotals(pricing.Aggregate(items, pricing.CoerceSigned(in.Adjustment), charges...))
	return &out, nil
}

// ApplyView filtra documentos recibidos en la solicitud con las vistas del tipo.
// Los documentos se recalculan antes de filtrar para que high_value use totales reales.
func (uc *UseCase) ApplyView(docType string, in dto.ApplyViewRequest) (*dto.ApplyViewResponse, error) {
	q := toQuery(in.Query)
	t := entity.DocumentType(docType)
	if t == entity.TypePriceBook {
		entries := make([]entity.PriceBookEntry, len(in.PriceBooks))
		for i := range in.PriceBooks {
			entries[i] = dto.ToPriceBookEntry(in.PriceBooks[i])
		}
		e := uc.catalog.PriceBook()
		filtered := e.Apply(entries, q)
		resolved, _ := e.Resolve(q.View)
		out := &dto.ApplyViewResponse{View: resolved, PriceBooks: make([]dto.PriceBookEntryDTO, len(filtered))}
		for i := range filtered {
			out.PriceBooks[i] = dto.FromPriceBookEntry(filtered[i])
		}
		return out, nil
	}

	e, err := uc.catalog.Documents(t)
	if err != nil {
		return nil, err
	}
	docs := make([]entity.Document, 0, len(in.Documents))
	for i := range in.Documents {
		doc := dto.ToDocument(in.Documents[i])
		if doc.Type == "" {
			doc.Type = t
		}
		if doc.LineItems == nil {
			doc.LineItems = []entity.LineItem{}
		}
		recalculated, err := pricing.Recalculate(doc)
		if err != nil {
			return nil, err
		}
		docs = append(docs, recalculated)
	}
	resolved, _ := e.Resolve(q.View)
	return &dto.ApplyViewResponse{View: resolved, Documents: dto.FromDocuments(e.Apply(docs, q))}, nil
}

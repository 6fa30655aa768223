package documents

import (
	"context"
	"fmt"

	"github.com/jhoicas/commercial-docs/internal/application/dto"
	"github.com/jhoicas/commercial-docs/internal/domain"
	"github.com/jhoicas/commercial-docs/internal/domain/entity"
	"github.com/jhoicas/commercial-docs/internal/domain/pricing"
)

// AddLine agrega una línea en cero al final del documento.
func (uc *UseCase) AddLine(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	return uc.mutate(ctx, id, func(doc entity.Document) (entity.Document, error) {
		if doc.LineItems == nil {
			doc.LineItems = []entity.LineItem{}
		}
		return pricing.AddLine(doc), nil
	})
}

// EditLine aplica la edición de un campo de la línea y recalcula línea y totales.
func (uc *UseCase) EditLine(ctx context.Context, id string, lineID int64, in dto.EditLineRequest) (*dto.DocumentResponse, error) {
	field, ok := pricing.ParseField(in.Field)
	if !ok {
		return nil, fmt.Errorf("campo %q: %w", in.Field, domain.ErrInvalidInput)
	}
	return uc.mutate(ctx, id, func(doc entity.Document) (entity.Document, error) {
		return pricing.EditLine(doc, lineID, field, in.Value)
	})
}

// RemoveLine elimina la línea; la última línea de un documento no se puede eliminar.
func (uc *UseCase) RemoveLine(ctx context.Context, id string, lineID int64) (*dto.DocumentResponse, error) {
	return uc.mutate(ctx, id, func(doc entity.Document) (entity.Document, error) {
		return pricing.RemoveLine(doc, lineID)
	})
}

// SetAdjustment fija el ajuste manual del documento.
func (uc *UseCase) SetAdjustment(ctx context.Context, id string, in dto.AdjustmentRequest) (*dto.DocumentResponse, error) {
	return uc.mutate(ctx, id, func(doc entity.Document) (entity.Document, error) {
		return pricing.SetAdjustment(doc, in.Adjustment), nil
	})
}

// SetExtraCharges fija impuesto al consumo y comisión (solo órdenes de compra).
func (uc *UseCase) SetExtraCharges(ctx context.Context, id string, in dto.ChargesRequest) (*dto.DocumentResponse, error) {
	return uc.mutate(ctx, id, func(doc entity.Document) (entity.Document, error) {
		return pricing.SetExtraCharges(doc, in.ExciseDuty, in.SalesCommission)
	})
}

// mutate ejecuta la operación pura dentro de Update; si la operación falla el documento
// almacenado no cambia.
func (uc *UseCase) mutate(ctx context.Context, id string, op func(entity.Document) (entity.Document, error)) (*dto.DocumentResponse, error) {
	updated, err := uc.repo.Update(ctx, id, func(doc *entity.Document) error {
		next, err := op(*doc)
		if err != nil {
			return err
		}
		*doc = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromDocument(*updated)
	return &out, nil
}

package documents

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/commercial-docs/internal/application/dto"
	"github.com/jhoicas/commercial-docs/internal/application/validation"
	"github.com/jhoicas/commercial-docs/internal/domain"
	"github.com/jhoicas/commercial-docs/internal/domain/entity"
	"github.com/jhoicas/commercial-docs/internal/domain/pricing"
	"github.com/jhoicas/commercial-docs/internal/domain/repository"
)

// ListLimits límites de paginación de los listados.
type ListLimits struct {
	Default int
	Max     int
}

// UseCase casos de uso sobre los documentos del host: creación, edición de líneas,
// totales y listados filtrados. Cada mutación se aplica y se re-consolida dentro de una
// sola llamada a Update del repositorio, así nunca se guarda un estado intermedio.
type UseCase struct {
	repo       repository.DocumentRepository
	priceBooks repository.PriceBookRepository
	catalog    *Catalog
	validator  *validation.Validator
	limits     ListLimits
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	repo repository.DocumentRepository,
	priceBooks repository.PriceBookRepository,
	catalog *Catalog,
	validator *validation.Validator,
	limits ListLimits,
) *UseCase {
	if limits.Default <= 0 {
		limits.Default = 20
	}
	if limits.Max <= 0 {
		limits.Max = 100
	}
	return &UseCase{
		repo:       repo,
		priceBooks: priceBooks,
		catalog:    catalog,
		validator:  validator,
		limits:     limits,
	}
}

// Create crea un documento: asigna estado inicial si falta, recalcula líneas y totales.
// Una lista de líneas vacía se completa con una línea en cero; una lista ausente es un
// documento mal formado (ValidationError MISSING_LINE_ITEMS).
func (uc *UseCase) Create(ctx context.Context, in dto.DocumentRequest) (*dto.DocumentResponse, error) {
	doc, err := uc.prepare(dto.ToDocument(in), nil)
	if err != nil {
		return nil, err
	}
	if len(doc.LineItems) == 0 {
		doc = pricing.AddLine(doc)
	}
	if err := uc.repo.Create(ctx, &doc); err != nil {
		return nil, err
	}
	out := dto.FromDocument(doc)
	return &out, nil
}

// Get devuelve el documento o domain.ErrNotFound.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromDocument(*doc)
	return &out, nil
}

// Replace reemplaza el documento completo. in.Version debe coincidir con la versión
// almacenada; una escritura obsoleta retorna domain.ErrConflict.
func (uc *UseCase) Replace(ctx context.Context, id string, in dto.DocumentRequest) (*dto.DocumentResponse, error) {
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	doc := dto.ToDocument(in)
	doc.ID = id
	if doc.Type == "" {
		doc.Type = current.Type
	}
	if doc.Type != current.Type {
		return nil, fmt.Errorf("no se puede cambiar el tipo de %s a %s: %w", current.Type, doc.Type, domain.ErrInvalidInput)
	}
	if doc.Status == "" {
		doc.Status = current.Status
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = current.CreatedAt
	}

	doc, err = uc.prepare(doc, current)
	if err != nil {
		return nil, err
	}
	if len(doc.LineItems) == 0 {
		return nil, domain.NewValidationError(domain.CodeLastLineItem, "el documento debe conservar al menos una línea")
	}
	if err := uc.repo.Replace(ctx, &doc, in.Version); err != nil {
		return nil, err
	}
	out := dto.FromDocument(doc)
	return &out, nil
}

// Totals devuelve los totales consolidados del documento.
func (uc *UseCase) Totals(ctx context.Context, id string) (*dto.TotalsDTO, error) {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	totals, err := pricing.DocumentTotals(*doc)
	if err != nil {
		return nil, err
	}
	out := dto.FromTotals(totals)
	return &out, nil
}

// Validate revisa la completitud del documento para guardarse.
func (uc *UseCase) Validate(ctx context.Context, id string) (*dto.ValidateResponse, error) {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	issues := uc.validator.Document(*doc)
	out := &dto.ValidateResponse{Valid: len(issues) == 0, Issues: make([]dto.ValidationIssueDTO, len(issues))}
	for i, is := range issues {
		out.Issues[i] = dto.ValidationIssueDTO{Field: is.Field, Rule: is.Rule}
	}
	return out, nil
}

// CreatePriceBookEntry registra una entrada de lista de precios.
func (uc *UseCase) CreatePriceBookEntry(ctx context.Context, in dto.PriceBookEntryDTO) (*dto.PriceBookEntryDTO, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("name: %w", domain.ErrInvalidInput)
	}
	entry := dto.ToPriceBookEntry(in)
	entry.ListPrice = pricing.Coerce(entry.ListPrice)
	if err := uc.priceBooks.Create(ctx, &entry); err != nil {
		return nil, err
	}
	out := dto.FromPriceBookEntry(entry)
	return &out, nil
}

// prepare verifica tipo y estado y recalcula líneas y totales. Con prev (reemplazo) los IDs
// de línea se concilian contra el documento almacenado.
func (uc *UseCase) prepare(doc entity.Document, prev *entity.Document) (entity.Document, error) {
	if !doc.Type.IsValid() {
		return doc, fmt.Errorf("%w: %q", domain.ErrUnsupportedType, doc.Type)
	}
	if doc.Status == "" {
		doc.Status = entity.InitialStatus(doc.Type)
	}
	if !entity.IsValidStatus(doc.Type, doc.Status) {
		return doc, fmt.Errorf("estado %q para %s: %w", doc.Status, doc.Type, domain.ErrInvalidInput)
	}
	if prev != nil {
		return pricing.Reconcile(*prev, doc)
	}
	return pricing.Recalculate(doc)
}

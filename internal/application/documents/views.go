package documents

import (
	"context"

	"github.com/jhoicas/commercial-docs/internal/application/dto"
	"github.com/jhoicas/commercial-docs/internal/domain/entity"
	"github.com/jhoicas/commercial-docs/internal/domain/view"
)

// Views describe las vistas, facetas y campos de búsqueda del tipo.
func (uc *UseCase) Views(docType string) (*dto.ViewsResponse, error) {
	t := entity.DocumentType(docType)
	if t == entity.TypePriceBook {
		return viewsResponse(docType, uc.catalog.PriceBook()), nil
	}
	e, err := uc.catalog.Documents(t)
	if err != nil {
		return nil, err
	}
	return viewsResponse(docType, e), nil
}

// ListDocuments filtra los documentos almacenados del tipo y devuelve una página.
func (uc *UseCase) ListDocuments(ctx context.Context, docType string, in dto.ListRequest) (*dto.DocumentPage, error) {
	t := entity.DocumentType(docType)
	e, err := uc.catalog.Documents(t)
	if err != nil {
		return nil, err
	}
	docs, err := uc.repo.List(ctx, t)
	if err != nil {
		return nil, err
	}
	q := toQuery(in.Query)
	filtered := e.Apply(docs, q)

	in.Page.Normalize(uc.limits.Default, uc.limits.Max)
	resolved, _ := e.Resolve(q.View)
	return &dto.DocumentPage{
		View:  resolved,
		Items: dto.FromDocuments(paginate(filtered, in.Page)),
		Page:  dto.PageResponse{Limit: in.Page.Limit, Offset: in.Page.Offset, Total: len(filtered)},
	}, nil
}

// ListPriceBooks filtra los registros de lista de precios.
func (uc *UseCase) ListPriceBooks(ctx context.Context, in dto.ListRequest) (*dto.PriceBookPage, error) {
	entries, err := uc.priceBooks.List(ctx)
	if err != nil {
		return nil, err
	}
	e := uc.catalog.PriceBook()
	q := toQuery(in.Query)
	filtered := e.Apply(entries, q)

	in.Page.Normalize(uc.limits.Default, uc.limits.Max)
	page := paginate(filtered, in.Page)
	items := make([]dto.PriceBookEntryDTO, len(page))
	for i := range page {
		items[i] = dto.FromPriceBookEntry(page[i])
	}
	resolved, _ := e.Resolve(q.View)
	return &dto.PriceBookPage{
		View:  resolved,
		Items: items,
		Page:  dto.PageResponse{Limit: in.Page.Limit, Offset: in.Page.Offset, Total: len(filtered)},
	}, nil
}

// KnownView indica si la vista existe para el tipo (las desconocidas se resuelven a "all").
func (uc *UseCase) KnownView(docType, id string) bool {
	t := entity.DocumentType(docType)
	if t == entity.TypePriceBook {
		_, ok := uc.catalog.PriceBook().Resolve(id)
		return ok
	}
	e, err := uc.catalog.Documents(t)
	if err != nil {
		return false
	}
	_, ok := e.Resolve(id)
	return ok
}

func toQuery(in dto.ViewQueryDTO) view.Query {
	return view.Query{View: in.View, Facets: in.Facets, SearchTerm: in.Search}
}

func viewsResponse[R view.Record](docType string, e *view.Engine[R]) *dto.ViewsResponse {
	infos := e.Views()
	out := &dto.ViewsResponse{
		Type:         docType,
		Views:        make([]dto.ViewInfoDTO, len(infos)),
		Facets:       e.Facets(),
		SearchFields: e.SearchFields(),
	}
	for i, v := range infos {
		out.Views[i] = dto.ViewInfoDTO{ID: v.ID, Label: v.Label}
	}
	return out
}

func paginate[T any](items []T, p dto.PageRequest) []T {
	if p.Offset >= len(items) {
		return []T{}
	}
	end := p.Offset + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[p.Offset:end]
}

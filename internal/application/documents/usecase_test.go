package documents_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/commercial-docs/internal/application/documents"
	"github.com/jhoicas/commercial-docs/internal/application/dto"
	"github.com/jhoicas/commercial-docs/internal/application/validation"
	"github.com/jhoicas/commercial-docs/internal/domain"
	"github.com/jhoicas/commercial-docs/internal/domain/entity"
	"github.com/jhoicas/commercial-docs/internal/domain/view"
	"github.com/jhoicas/commercial-docs/internal/domain/view/presets"
	"github.com/jhoicas/commercial-docs/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var now = time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC)

func newUseCase(t *testing.T) *documents.UseCase {
	t.Helper()
	catalog, err := documents.NewCatalog(documents.CatalogConfig{
		Presets: presets.DefaultOptions(),
		Clock:   func() time.Time { return now },
	})
	require.NoError(t, err)
	return documents.NewUseCase(
		memory.NewDocumentStore(),
		memory.NewPriceBookStore(),
		catalog,
		validation.New(),
		documents.ListLimits{Default: 2, Max: 5},
	)
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func line(name, qty, price, discountRate, taxRate string) dto.LineItemDTO {
	return dto.LineItemDTO{
		ProductName:  name,
		Quantity:     d(qty),
		ListPrice:    d(price),
		DiscountMode: string(entity.ModePercent),
		DiscountRate: d(discountRate),
		TaxMode:      string(entity.ModePercent),
		TaxRate:      d(taxRate),
	}
}

func createQuote(t *testing.T, uc *documents.UseCase, lines ...dto.LineItemDTO) *dto.DocumentResponse {
	t.Helper()
	if lines == nil {
		lines = []dto.LineItemDTO{}
	}
	doc, err := uc.Create(context.Background(), dto.DocumentRequest{
		Type:      string(entity.TypeQuote),
		Number:    "Q-1",
		LineItems: lines,
	})
	require.NoError(t, err)
	return doc
}

func money(t *testing.T, expected string, got decimal.Decimal) {
	t.Helper()
	assert.Equal(t, d(expected).StringFixed(2), got.StringFixed(2))
}

// ──────────────────────────────────────────────────────────────────────────────
// Create / Replace
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_RecalculaYAsignaEstadoInicial(t *testing.T) {
	uc := newUseCase(t)
	doc := createQuote(t, uc,
		line("A", "10", "300", "10", "18"),
		line("B", "5", "200", "10", "18"),
		line("C", "2", "500", "10", "18"),
	)

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, entity.QuoteStatusDraft, doc.Status)
	assert.Equal(t, int64(1), doc.Version)
	money(t, "5000", doc.Totals.Subtotal)
	money(t, "500", doc.Totals.DiscountTotal)
	money(t, "810", doc.Totals.TaxTotal)
	money(t, "5310", doc.Totals.GrandTotal)
	assert.Nil(t, doc.Totals.FinalPayable)
}

func TestCreate_ListaVaciaRecibeUnaLinea(t *testing.T) {
	doc := createQuote(t, newUseCase(t))
	require.Len(t, doc.LineItems, 1)
	assert.Equal(t, int64(1), doc.LineItems[0].ID)
}

func TestCreate_SinLineasEsDocumentoMalFormado(t *testing.T) {
	_, err := newUseCase(t).Create(context.Background(), dto.DocumentRequest{Type: string(entity.TypeQuote)})
	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeMissingLineItems, ve.Code)
}

func TestCreate_TipoOEstadoInvalido(t *testing.T) {
	uc := newUseCase(t)
	_, err := uc.Create(context.Background(), dto.DocumentRequest{Type: "invoice", LineItems: []dto.LineItemDTO{}})
	assert.True(t, errors.Is(err, domain.ErrUnsupportedType))

	_, err = uc.Create(context.Background(), dto.DocumentRequest{
		Type: string(entity.TypeQuote), Status: entity.SalesOrderStatusShipped, LineItems: []dto.LineItemDTO{},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestReplace_VersionObsoletaEsConflicto(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)
	doc := createQuote(t, uc, line("A", "1", "100", "0", "0"))

	req := dto.DocumentRequest{Subject: "v2", LineItems: []dto.LineItemDTO{line("A", "2", "100", "0", "0")}, Version: 1}
	updated, err := uc.Replace(ctx, doc.ID, req)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)
	money(t, "200", updated.Totals.GrandTotal)

	_, err = uc.Replace(ctx, doc.ID, req)
	assert.True(t, errors.Is(err, domain.ErrConflict), "la versión 1 ya no es la vigente")
}

func TestReplace_NoCambiaElTipo(t *testing.T) {
	uc := newUseCase(t)
	doc := createQuote(t, uc)
	_, err := uc.Replace(context.Background(), doc.ID, dto.DocumentRequest{
		Type: string(entity.TypeSalesOrder), LineItems: []dto.LineItemDTO{}, Version: 1,
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// ──────────────────────────────────────────────────────────────────────────────
// Líneas
// ──────────────────────────────────────────────────────────────────────────────

func TestEditLine_RecalculaLineaYTotalesEnUnaLlamada(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)
	doc := createQuote(t, uc)

	lineID := doc.LineItems[0].ID
	steps := []dto.EditLineRequest{
		{Field: "quantity", Value: "10"},
		{Field: "list_price", Value: 300.0},
		{Field: "discountRate", Value: "10"},
		{Field: "taxRate", Value: "18"},
	}
	var err error
	for _, s := range steps {
		doc, err = uc.EditLine(ctx, doc.ID, lineID, s)
		require.NoError(t, err)
	}

	money(t, "3000", doc.LineItems[0].Amount)
	money(t, "300", doc.LineItems[0].Discount)
	money(t, "486", doc.LineItems[0].Tax)
	money(t, "3186", doc.LineItems[0].Total)
	money(t, "3186", doc.Totals.GrandTotal)
	assert.Equal(t, int64(5), doc.Version, "una versión por creación y por edición")
}

func TestEditLine_CampoDesconocido(t *testing.T) {
	uc := newUseCase(t)
	doc := createQuote(t, uc)
	_, err := uc.EditLine(context.Background(), doc.ID, 1, dto.EditLineRequest{Field: "color", Value: "rojo"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestRemoveLine_UltimaLineaDejaElDocumentoIgual(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)
	doc := createQuote(t, uc, line("A", "10", "300", "10", "18"))

	_, err := uc.RemoveLine(ctx, doc.ID, doc.LineItems[0].ID)
	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeLastLineItem, ve.Code)

	again, err := uc.Get(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, again.LineItems, 1)
	assert.Equal(t, int64(1), again.Version, "la mutación rechazada no se guarda")
	money(t, "3186", again.Totals.GrandTotal)
}

func TestAddAndRemoveLine(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)
	doc := createQuote(t, uc, line("A", "1", "10", "0", "0"))

	doc, err := uc.AddLine(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, doc.LineItems, 2)
	assert.Equal(t, int64(2), doc.LineItems[1].ID)

	doc, err = uc.RemoveLine(ctx, doc.ID, 1)
	require.NoError(t, err)
	require.Len(t, doc.LineItems, 1)
	assert.Equal(t, int64(2), doc.LineItems[0].ID)
	money(t, "0", doc.Totals.GrandTotal)
}

func TestSetAdjustmentYCargos(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)
	po, err := uc.Create(ctx, dto.DocumentRequest{
		Type:      string(entity.TypePurchaseOrder),
		LineItems: []dto.LineItemDTO{line("A", "10", "100", "0", "10")},
	})
	require.NoError(t, err)
	require.NotNil(t, po.Totals.FinalPayable, "las órdenes de compra siempre informan final_payable")

	po, err = uc.SetAdjustment(ctx, po.ID, dto.AdjustmentRequest{Adjustment: "-100"})
	require.NoError(t, err)
	money(t, "1000", po.Totals.GrandTotal)

	po, err = uc.SetExtraCharges(ctx, po.ID, dto.ChargesRequest{ExciseDuty: "50", SalesCommission: 25})
	require.NoError(t, err)
	require.NotNil(t, po.Totals.FinalPayable)
	money(t, "1075", *po.Totals.FinalPayable)

	totals, err := uc.Totals(ctx, po.ID)
	require.NoError(t, err)
	money(t, "1000", totals.GrandTotal)

	quote := createQuote(t, uc)
	_, err = uc.SetExtraCharges(ctx, quote.ID, dto.ChargesRequest{ExciseDuty: "1"})
	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeExtraChargesNotAllowed, ve.Code)
}

func TestValidate(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)

	incomplete := createQuote(t, uc)
	res, err := uc.Validate(ctx, incomplete.ID)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.NotEmpty(t, res.Issues)

	complete := createQuote(t, uc, line("A", "1", "10", "0", "0"))
	res, err = uc.Validate(ctx, complete.ID)
	require.NoError(t, err)
	assert.True(t, res.Valid)
}

func TestGet_NoEncontrado(t *testing.T) {
	_, err := newUseCase(t).Get(context.Background(), "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ──────────────────────────────────────────────────────────────────────────────
// Vistas
// ──────────────────────────────────────────────────────────────────────────────

func seedPurchaseOrders(t *testing.T, uc *documents.UseCase) {
	t.Helper()
	yesterday := now.AddDate(0, 0, -1)
	reqs := []dto.DocumentRequest{
		{Type: "purchase_order", Number: "PO-1", Status: "Sent", VendorName: "Tech Corp", DueDate: &yesterday},
		{Type: "purchase_order", Number: "PO-2", Status: "Completed", VendorName: "Tech Corp", DueDate: &yesterday},
		{Type: "purchase_order", Number: "PO-3", Status: "Draft", VendorName: "Acme"},
		{Type: "purchase_order", Number: "PO-4", Status: "Sent", VendorName: "Globex"},
	}
	for _, r := range reqs {
		r.LineItems = []dto.LineItemDTO{line("X", "1", "10", "0", "0")}
		_, err := uc.Create(context.Background(), r)
		require.NoError(t, err)
	}
}

func pageNumbers(items []dto.DocumentResponse) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Number
	}
	return out
}

func TestListDocuments_VencidasYBusqueda(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)
	seedPurchaseOrders(t, uc)

	page, err := uc.ListDocuments(ctx, "purchase_order", dto.ListRequest{Query: dto.ViewQueryDTO{View: "overdue"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"PO-1"}, pageNumbers(page.Items))

	page, err = uc.ListDocuments(ctx, "purchase_order", dto.ListRequest{
		Query: dto.ViewQueryDTO{Search: "tech", Facets: map[string]string{"status": "All Statuses"}},
		Page:  dto.PageRequest{Limit: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"PO-1", "PO-2"}, pageNumbers(page.Items))
}

func TestListDocuments_Paginacion(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)
	seedPurchaseOrders(t, uc)

	page, err := uc.ListDocuments(ctx, "purchase_order", dto.ListRequest{Page: dto.PageRequest{Offset: 2}})
	require.NoError(t, err)
	assert.Equal(t, []string{"PO-3", "PO-4"}, pageNumbers(page.Items))
	assert.Equal(t, 4, page.Page.Total)
	assert.Equal(t, 2, page.Page.Limit, "límite por defecto")

	page, err = uc.ListDocuments(ctx, "purchase_order", dto.ListRequest{Page: dto.PageRequest{Limit: 50}})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Page.Limit, "se respeta el máximo")

	page, err = uc.ListDocuments(ctx, "purchase_order", dto.ListRequest{Page: dto.PageRequest{Offset: 99}})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestListDocuments_VistaDesconocida(t *testing.T) {
	uc := newUseCase(t)
	seedPurchaseOrders(t, uc)

	page, err := uc.ListDocuments(context.Background(), "purchase_order", dto.ListRequest{
		Query: dto.ViewQueryDTO{View: "inventada"},
		Page:  dto.PageRequest{Limit: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, view.BucketAll, page.View)
	assert.Len(t, page.Items, 4)
	assert.False(t, uc.KnownView("purchase_order", "inventada"))
	assert.True(t, uc.KnownView("purchase_order", "overdue"))
}

func TestViews(t *testing.T) {
	uc := newUseCase(t)

	res, err := uc.Views("sales_order")
	require.NoError(t, err)
	require.NotEmpty(t, res.Views)
	assert.Equal(t, view.BucketAll, res.Views[0].ID)
	assert.Contains(t, res.SearchFields, "customerName")

	res, err = uc.Views("price_book")
	require.NoError(t, err)
	assert.Contains(t, res.Facets, "category")

	_, err = uc.Views("invoice")
	assert.True(t, errors.Is(err, domain.ErrUnsupportedType))
}

func TestListPriceBooks(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)
	_, err := uc.CreatePriceBookEntry(ctx, dto.PriceBookEntryDTO{Name: "Mayoristas", Active: true})
	require.NoError(t, err)
	_, err = uc.CreatePriceBookEntry(ctx, dto.PriceBookEntryDTO{Name: "Minoristas"})
	require.NoError(t, err)

	page, err := uc.ListPriceBooks(ctx, dto.ListRequest{Query: dto.ViewQueryDTO{View: "inactive"}})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Minoristas", page.Items[0].Name)
	assert.Equal(t, entity.PriceBookStatusInactive, page.Items[0].Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sin estado
// ──────────────────────────────────────────────────────────────────────────────

func TestRecompute(t *testing.T) {
	out, err := newUseCase(t).Recompute(dto.RecomputeRequest{
		Item:  line("A", "10", "300", "10", "0"),
		Field: "tax_rate",
		Value: "18",
	})
	require.NoError(t, err)
	money(t, "3186", out.Total)
}

func TestComputeTotals(t *testing.T) {
	uc := newUseCase(t)

	_, err := uc.ComputeTotals(dto.TotalsRequest{})
	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeMissingLineItems, ve.Code)

	totals, err := uc.ComputeTotals(dto.TotalsRequest{
		LineItems: []dto.LineItemDTO{
			line("A", "10", "300", "10", "18"),
			line("B", "5", "200", "10", "18"),
			line("C", "2", "500", "10", "18"),
		},
		Adjustment:   "10",
		ExtraCharges: []dto.ChargeDTO{{Name: "excise_duty", Amount: d("5")}},
	})
	require.NoError(t, err)
	money(t, "5320", totals.GrandTotal)
	require.NotNil(t, totals.FinalPayable)
	money(t, "5325", *totals.FinalPayable)
}

func TestApplyView_SinEstado(t *testing.T) {
	big := line("A", "1", "20000", "0", "0")
	res, err := newUseCase(t).ApplyView("quote", dto.ApplyViewRequest{
		Documents: []dto.DocumentRequest{
			{Number: "Q-1", LineItems: []dto.LineItemDTO{line("A", "1", "10", "0", "0")}},
			{Number: "Q-2", LineItems: []dto.LineItemDTO{big}},
		},
		Query: dto.ViewQueryDTO{View: "high_value"},
	})
	require.NoError(t, err)
	assert.Equal(t, "high_value", res.View)
	assert.Equal(t, []string{"Q-2"}, pageNumbers(res.Documents))
}

package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/commercial-docs/internal/application/documents"
	"github.com/jhoicas/commercial-docs/internal/application/dto"
	"github.com/jhoicas/commercial-docs/internal/application/validation"
	"github.com/jhoicas/commercial-docs/internal/domain/view/presets"
	"github.com/jhoicas/commercial-docs/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/commercial-docs/internal/interfaces/http"
	"github.com/jhoicas/commercial-docs/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp aplicación Fiber con el router completo sobre almacenes en memoria.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	catalog, err := documents.NewCatalog(documents.CatalogConfig{Presets: presets.DefaultOptions()})
	require.NoError(t, err)

	val := validation.New()
	uc := documents.NewUseCase(memory.NewDocumentStore(), memory.NewPriceBookStore(), catalog, val, documents.ListLimits{})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{Documents: uc, Validator: val, Log: logger.Nop()})
	return app
}

// do ejecuta la solicitud y decodifica el cuerpo JSON en out (si no es nil).
func do(t *testing.T, app *fiber.App, method, path, body string, out any) int {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

const quoteBody = `{
  "type": "quote",
  "number": "Q-100",
  "subject": "Equipos",
  "account_name": "Tech Corp",
  "line_items": [
    {"product_name": "Portátil", "quantity": 2, "list_price": 1500,
     "discount_mode": "percent", "discount_rate": 10,
     "tax_mode": "percent", "tax_rate": 18}
  ]
}`

func createQuote(t *testing.T, app *fiber.App) dto.DocumentResponse {
	t.Helper()
	var doc dto.DocumentResponse
	status := do(t, app, http.MethodPost, "/api/documents", quoteBody, &doc)
	require.Equal(t, http.StatusCreated, status)
	return doc
}

// ──────────────────────────────────────────────────────────────────────────────
// Documentos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_CalculaTotales(t *testing.T) {
	app := buildTestApp(t)
	doc := createQuote(t, app)

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "Draft", doc.Status, "estado inicial de una cotización")
	assert.Equal(t, int64(1), doc.Version)
	assert.Equal(t, "3186.00", doc.Totals.GrandTotal.StringFixed(2))
	assert.Nil(t, doc.Totals.FinalPayable, "una cotización no tiene total a pagar con cargos")

	var got dto.DocumentResponse
	assert.Equal(t, http.StatusOK, do(t, app, http.MethodGet, "/api/documents/"+doc.ID, "", &got))
	assert.Equal(t, doc.ID, got.ID)
}

func TestCreate_CuerpoInvalido(t *testing.T) {
	app := buildTestApp(t)
	var errResp dto.ErrorResponse
	status := do(t, app, http.MethodPost, "/api/documents", `{"type":`, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_BODY", errResp.Code)
}

func TestCreate_TipoNoSoportado(t *testing.T) {
	app := buildTestApp(t)
	var errResp dto.ErrorResponse
	status := do(t, app, http.MethodPost, "/api/documents", `{"type":"invoice","line_items":[]}`, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "UNSUPPORTED_TYPE", errResp.Code)
}

func TestGet_Inexistente(t *testing.T) {
	app := buildTestApp(t)
	assert.Equal(t, http.StatusNotFound, do(t, app, http.MethodGet, "/api/documents/no-existe", "", nil))
}

func TestLines_EditarYEliminar(t *testing.T) {
	app := buildTestApp(t)
	doc := createQuote(t, app)
	lineID := doc.LineItems[0].ID

	var edited dto.DocumentResponse
	status := do(t, app, http.MethodPatch,
		"/api/documents/"+doc.ID+"/lines/"+itoa(lineID), `{"field":"quantity","value":"3"}`, &edited)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "4500.00", edited.Totals.Subtotal.StringFixed(2))

	var errResp dto.ErrorResponse
	status = do(t, app, http.MethodPatch,
		"/api/documents/"+doc.ID+"/lines/"+itoa(lineID), `{"value":"3"}`, &errResp)
	assert.Equal(t, http.StatusBadRequest, status, "field es obligatorio")
	assert.Equal(t, "field", errResp.Field)

	status = do(t, app, http.MethodDelete, "/api/documents/"+doc.ID+"/lines/"+itoa(lineID), "", &errResp)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "LAST_LINE_ITEM", errResp.Code)

	var added dto.DocumentResponse
	require.Equal(t, http.StatusCreated, do(t, app, http.MethodPost, "/api/documents/"+doc.ID+"/lines", "", &added))
	require.Len(t, added.LineItems, 2)

	var removed dto.DocumentResponse
	require.Equal(t, http.StatusOK, do(t, app, http.MethodDelete, "/api/documents/"+doc.ID+"/lines/"+itoa(lineID), "", &removed))
	require.Len(t, removed.LineItems, 1)
	assert.True(t, removed.Totals.GrandTotal.IsZero())
}

func TestCharges_SoloOrdenesDeCompra(t *testing.T) {
	app := buildTestApp(t)
	doc := createQuote(t, app)

	var errResp dto.ErrorResponse
	status := do(t, app, http.MethodPut, "/api/documents/"+doc.ID+"/charges", `{"excise_duty":100}`, &errResp)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "EXTRA_CHARGES_NOT_ALLOWED", errResp.Code)

	var po dto.DocumentResponse
	require.Equal(t, http.StatusCreated, do(t, app, http.MethodPost, "/api/documents",
		`{"type":"purchase_order","line_items":[{"product_name":"Tornillos","quantity":10,"list_price":100}]}`, &po))

	var updated dto.DocumentResponse
	status = do(t, app, http.MethodPut, "/api/documents/"+po.ID+"/charges", `{"excise_duty":"50","sales_commission":25}`, &updated)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, updated.Totals.FinalPayable)
	assert.Equal(t,
		updated.Totals.GrandTotal.Add(updated.Totals.ExtraCharges).StringFixed(2),
		updated.Totals.FinalPayable.StringFixed(2))
	assert.Equal(t, "75.00", updated.Totals.ExtraCharges.StringFixed(2))
}

func TestReplace_VersionObsoleta(t *testing.T) {
	app := buildTestApp(t)
	doc := createQuote(t, app)

	body := strings.Replace(quoteBody, `"number": "Q-100"`, `"number": "Q-100", "version": 1`, 1)
	var replaced dto.DocumentResponse
	require.Equal(t, http.StatusOK, do(t, app, http.MethodPut, "/api/documents/"+doc.ID, body, &replaced))

	var errResp dto.ErrorResponse
	status := do(t, app, http.MethodPut, "/api/documents/"+doc.ID, body, &errResp)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", errResp.Code)
}

func TestValidate_DocumentoIncompleto(t *testing.T) {
	app := buildTestApp(t)
	var doc dto.DocumentResponse
	require.Equal(t, http.StatusCreated, do(t, app, http.MethodPost, "/api/documents", `{"type":"sales_order","line_items":[]}`, &doc))

	var res dto.ValidateResponse
	require.Equal(t, http.StatusOK, do(t, app, http.MethodPost, "/api/documents/"+doc.ID+"/validate", "", &res))
	assert.False(t, res.Valid)
	assert.NotEmpty(t, res.Issues)
}

func TestReplace_NoReutilizaIDDeLineaEliminada(t *testing.T) {
	app := buildTestApp(t)
	doc := createQuote(t, app)
	first := doc.LineItems[0].ID

	var added dto.DocumentResponse
	require.Equal(t, http.StatusCreated, do(t, app, http.MethodPost, "/api/documents/"+doc.ID+"/lines", "", &added))
	second := added.LineItems[1].ID
	var removed dto.DocumentResponse
	require.Equal(t, http.StatusOK, do(t, app, http.MethodDelete, "/api/documents/"+doc.ID+"/lines/"+itoa(first), "", &removed))

	body := `{"version": ` + itoa(removed.Version) + `, "line_items": [
  {"id": ` + itoa(first) + `, "product_name": "revivida", "quantity": 1, "list_price": 10},
  {"id": ` + itoa(second) + `, "product_name": "viva", "quantity": 1, "list_price": 10},
  {"id": ` + itoa(second) + `, "product_name": "repetida", "quantity": 1, "list_price": 10}
]}`
	var replaced dto.DocumentResponse
	require.Equal(t, http.StatusOK, do(t, app, http.MethodPut, "/api/documents/"+doc.ID, body, &replaced))
	require.Len(t, replaced.LineItems, 3)

	ids := map[int64]bool{}
	for _, it := range replaced.LineItems {
		assert.False(t, ids[it.ID], "IDs únicos: %d", it.ID)
		ids[it.ID] = true
	}
	assert.NotEqual(t, first, replaced.LineItems[0].ID, "el ID eliminado no vuelve")
	assert.Equal(t, second, replaced.LineItems[1].ID)

	var errResp dto.ErrorResponse
	status := do(t, app, http.MethodDelete, "/api/documents/"+doc.ID+"/lines/"+itoa(first), "", &errResp)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "LINE_NOT_FOUND", errResp.Code, "la línea eliminada sigue sin existir")
}

// ──────────────────────────────────────────────────────────────────────────────
// Cálculo sin estado
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeTotals(t *testing.T) {
	app := buildTestApp(t)

	var totals dto.TotalsDTO
	status := do(t, app, http.MethodPost, "/api/totals", `{
  "line_items": [
    {"quantity": 1, "list_price": 1000, "discount_mode": "amount", "discount_amount": 100, "tax_mode": "percent", "tax_rate": 10}
  ],
  "adjustment": "-10"
}`, &totals)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "980.00", totals.GrandTotal.StringFixed(2))

	var errResp dto.ErrorResponse
	status = do(t, app, http.MethodPost, "/api/totals", `{"adjustment": 5}`, &errResp)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "MISSING_LINE_ITEMS", errResp.Code)
}

func TestRecompute_CampoDesconocido(t *testing.T) {
	app := buildTestApp(t)

	var item dto.LineItemDTO
	status := do(t, app, http.MethodPost, "/api/line-items/recompute",
		`{"item":{"quantity":2,"list_price":50},"field":"quantity","value":"4"}`, &item)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "200.00", item.Amount.StringFixed(2))

	var errResp dto.ErrorResponse
	status = do(t, app, http.MethodPost, "/api/line-items/recompute", `{"item":{},"field":"color","value":"rojo"}`, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestComputeTotals_NumeroNoValidoEsCero(t *testing.T) {
	app := buildTestApp(t)

	var totals dto.TotalsDTO
	status := do(t, app, http.MethodPost, "/api/totals",
		`{"line_items":[{"quantity":"abc","list_price":100},{"quantity":1,"list_price":"","tax_rate":"diez"}],
		  "extra_charges":[{"name":"flete","amount":"n/a"}]}`, &totals)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.TaxTotal.IsZero())
	assert.True(t, totals.GrandTotal.IsZero())
	assert.True(t, totals.ExtraCharges.IsZero())
}

func TestRecompute_CantidadNoNumericaEsCero(t *testing.T) {
	app := buildTestApp(t)

	var item dto.LineItemDTO
	status := do(t, app, http.MethodPost, "/api/line-items/recompute",
		`{"item":{"quantity":"12x","list_price":"50"},"field":"list_price","value":"50"}`, &item)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, item.Quantity.IsZero())
	assert.Equal(t, "50.00", item.ListPrice.StringFixed(2), "texto numérico se acepta")
	assert.True(t, item.Total.IsZero())
}

func TestCreate_CamposNumericosVacios(t *testing.T) {
	app := buildTestApp(t)

	var doc dto.DocumentResponse
	status := do(t, app, http.MethodPost, "/api/documents", `{
  "type": "purchase_order",
  "line_items": [{"product_name": "Tornillos", "quantity": "", "list_price": 100, "discount_amount": null}],
  "adjustment": "??", "excise_duty": "", "sales_commission": "7.5"
}`, &doc)
	require.Equal(t, http.StatusCreated, status)
	require.Len(t, doc.LineItems, 1)
	assert.True(t, doc.LineItems[0].Quantity.IsZero())
	assert.True(t, doc.Adjustment.IsZero())
	assert.True(t, doc.ExciseDuty.IsZero())
	assert.Equal(t, "7.50", doc.Totals.ExtraCharges.StringFixed(2))
	assert.True(t, doc.Totals.GrandTotal.IsZero())
}

func TestPriceBooks_PrecioNoNumericoEsCero(t *testing.T) {
	app := buildTestApp(t)
	var entry dto.PriceBookEntryDTO
	status := do(t, app, http.MethodPost, "/api/price-books", `{"name":"Mayorista","active":true,"list_price":"gratis"}`, &entry)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, entry.ListPrice.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Vistas
// ──────────────────────────────────────────────────────────────────────────────

func TestViews_ListaYFiltra(t *testing.T) {
	app := buildTestApp(t)
	createQuote(t, app)
	var sent dto.DocumentResponse
	require.Equal(t, http.StatusCreated, do(t, app, http.MethodPost, "/api/documents",
		`{"type":"quote","number":"Q-200","status":"Sent","line_items":[]}`, &sent))

	var views dto.ViewsResponse
	require.Equal(t, http.StatusOK, do(t, app, http.MethodGet, "/api/views/quote", "", &views))
	assert.Equal(t, "all", views.Views[0].ID)

	var page dto.DocumentPage
	require.Equal(t, http.StatusOK, do(t, app, http.MethodGet, "/api/views/quote/documents?facet.status=Sent", "", &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Q-200", page.Items[0].Number)
	assert.Equal(t, 1, page.Page.Total)

	page = dto.DocumentPage{}
	require.Equal(t, http.StatusOK, do(t, app, http.MethodGet, "/api/views/quote/documents?search=tech%20corp", "", &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Q-100", page.Items[0].Number)

	page = dto.DocumentPage{}
	require.Equal(t, http.StatusOK, do(t, app, http.MethodGet, "/api/views/quote/documents?view=nada", "", &page))
	assert.Equal(t, "all", page.View)
	assert.Len(t, page.Items, 2)

	assert.Equal(t, http.StatusBadRequest, do(t, app, http.MethodGet, "/api/views/invoice", "", nil))
}

func TestViews_ApplySinEstado(t *testing.T) {
	app := buildTestApp(t)

	var res dto.ApplyViewResponse
	status := do(t, app, http.MethodPost, "/api/views/purchase_order/apply", `{
  "documents": [
    {"number": "PO-1", "status": "Draft", "line_items": [{"quantity": 1, "list_price": 20000}]},
    {"number": "PO-2", "status": "Draft", "line_items": [{"quantity": 1, "list_price": 50}]}
  ],
  "query": {"view": "high_value"}
}`, &res)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "high_value", res.View)
	require.Len(t, res.Documents, 1)
	assert.Equal(t, "PO-1", res.Documents[0].Number)
}

func TestPriceBooks_AltaYListado(t *testing.T) {
	app := buildTestApp(t)

	var entry dto.PriceBookEntryDTO
	require.Equal(t, http.StatusCreated, do(t, app, http.MethodPost, "/api/price-books",
		`{"name":"Mayorista","product_name":"Tornillo","category":"Ferretería","list_price":"1.25","active":true}`, &entry))
	assert.NotEmpty(t, entry.ID)
	require.Equal(t, http.StatusCreated, do(t, app, http.MethodPost, "/api/price-books",
		`{"name":"Minorista","category":"Hogar","list_price":"2","active":false}`, nil))

	var errResp dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, do(t, app, http.MethodPost, "/api/price-books", `{"name":"  "}`, &errResp))

	var page dto.PriceBookPage
	require.Equal(t, http.StatusOK, do(t, app, http.MethodGet,
		"/api/views/price_book/documents?facet.category=Ferreter%C3%ADa", "", &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Mayorista", page.Items[0].Name)

	page = dto.PriceBookPage{}
	require.Equal(t, http.StatusOK, do(t, app, http.MethodGet,
		"/api/views/price_book/documents?facet.category=All%20Categories", "", &page))
	assert.Len(t, page.Items, 2, "el marcador All Categories no filtra")
}

func itoa(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}

package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType tipo de documento comercial.
type DocumentType string

const (
	TypeQuote         DocumentType = "quote"
	TypePurchaseOrder DocumentType = "purchase_order"
	TypeSalesOrder    DocumentType = "sales_order"
	TypePriceBook     DocumentType = "price_book"
)

// IsValid indica si el tipo corresponde a un documento con líneas (cotización u órdenes).
func (t DocumentType) IsValid() bool {
	switch t {
	case TypeQuote, TypePurchaseOrder, TypeSalesOrder:
		return true
	}
	return false
}

// AllowsExtraCharges indica si el tipo admite impuesto al consumo y comisión (solo órdenes de compra).
func (t DocumentType) AllowsExtraCharges() bool {
	return t == TypePurchaseOrder
}

// Document representa una cotización, orden de compra u orden de venta.
// LineItems conserva el orden de inserción (orden de despliegue). Totals siempre se
// recalcula a partir de las líneas; nunca se edita directamente.
type Document struct {
	ID              string
	Type            DocumentType
	Number          string
	Subject         string
	Status          string // ver estados por tipo en status.go
	AccountName     string
	VendorName      string // órdenes de compra
	CustomerName    string // órdenes de venta
	ContactName     string
	Owner           string
	Carrier         string
	TrackingNumber  string
	Category        string
	Currency        string
	IssueDate       time.Time
	DueDate         time.Time
	ValidUntil      time.Time // cotizaciones
	LineItems       []LineItem
	NextLineID      int64 // contador monótono; los IDs de línea nunca se reutilizan
	Adjustment      decimal.Decimal
	ExciseDuty      decimal.Decimal // solo órdenes de compra
	SalesCommission decimal.Decimal // solo órdenes de compra
	Totals          Totals
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Totals bloque de totales derivado de las líneas y del ajuste manual.
type Totals struct {
	Subtotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	TaxTotal      decimal.Decimal
	Adjustment    decimal.Decimal
	GrandTotal    decimal.Decimal
	ExtraCharges  decimal.Decimal
	FinalPayable  *decimal.Decimal // nil si no hay cargos adicionales
}

// Clone devuelve una copia profunda; un LineItems nil se conserva como nil.
func (d Document) Clone() Document {
	out := d
	if d.LineItems != nil {
		out.LineItems = make([]LineItem, len(d.LineItems))
		copy(out.LineItems, d.LineItems)
	}
	if d.Totals.FinalPayable != nil {
		fp := *d.Totals.FinalPayable
		out.Totals.FinalPayable = &fp
	}
	return out
}

// LineIndex devuelve la posición de la línea con el ID dado o -1.
func (d Document) LineIndex(id int64) int {
	for i := range d.LineItems {
		if d.LineItems[i].ID == id {
			return i
		}
	}
	return -1
}

// Field devuelve el valor textual de un campo por nombre (camelCase o snake_case).
// Lo usan los filtros por faceta y la búsqueda libre.
func (d Document) Field(name string) (string, bool) {
	switch normalizeFieldName(name) {
	case "id":
		return d.ID, true
	case "type":
		return string(d.Type), true
	case "number":
		return d.Number, true
	case "subject":
		return d.Subject, true
	case "status", "stage":
		return d.Status, true
	case "accountname":
		return d.AccountName, true
	case "vendorname":
		return d.VendorName, true
	case "customername":
		return d.CustomerName, true
	case "contactname":
		return d.ContactName, true
	case "owner":
		return d.Owner, true
	case "carrier":
		return d.Carrier, true
	case "trackingnumber":
		return d.TrackingNumber, true
	case "category":
		return d.Category, true
	case "currency":
		return d.Currency, true
	case "issuedate":
		return formatDate(d.IssueDate)
	case "duedate":
		return formatDate(d.DueDate)
	case "validuntil":
		return formatDate(d.ValidUntil)
	case "grandtotal":
		return d.Totals.GrandTotal.StringFixed(2), true
	}
	return "", false
}

// Attributes expone el documento como mapa para expresiones de vistas configurables.
// Fechas vacías se omiten; los montos se exponen como float64.
func (d Document) Attributes() map[string]any {
	m := map[string]any{
		"id":             d.ID,
		"type":           string(d.Type),
		"number":         d.Number,
		"subject":        d.Subject,
		"status":         d.Status,
		"accountName":    d.AccountName,
		"vendorName":     d.VendorName,
		"customerName":   d.CustomerName,
		"contactName":    d.ContactName,
		"owner":          d.Owner,
		"carrier":        d.Carrier,
		"trackingNumber": d.TrackingNumber,
		"category":       d.Category,
		"currency":       d.Currency,
		"lineCount":      int64(len(d.LineItems)),
		"subtotal":       d.Totals.Subtotal.InexactFloat64(),
		"discountTotal":  d.Totals.DiscountTotal.InexactFloat64(),
		"taxTotal":       d.Totals.TaxTotal.InexactFloat64(),
		"grandTotal":     d.Totals.GrandTotal.InexactFloat64(),
	}
	putTime(m, "issueDate", d.IssueDate)
	putTime(m, "dueDate", d.DueDate)
	putTime(m, "validUntil", d.ValidUntil)
	putTime(m, "createdAt", d.CreatedAt)
	return m
}

func normalizeFieldName(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", ""))
}

func formatDate(t time.Time) (string, bool) {
	if t.IsZero() {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

func putTime(m map[string]any, key string, t time.Time) {
	if !t.IsZero() {
		m[key] = t
	}
}

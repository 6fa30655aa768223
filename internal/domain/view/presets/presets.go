// Package presets contiene la configuración de vistas por tipo de documento:
// buckets (id → predicado), facetas y campos de búsqueda. Son datos, no lógica del motor.
package presets

import (
	"fmt"
	"slices"
	"time"

	"github.com/jhoicas/commercial-docs/internal/domain"
	"github.com/jhoicas/commercial-docs/internal/domain/entity"
	"github.com/jhoicas/commercial-docs/internal/domain/view"
	"github.com/shopspring/decimal"
)

// IDs de buckets compartidos entre tipos.
const (
	BucketRecent       = "recent"
	BucketHighValue    = "high_value"
	BucketOverdue      = "overdue"
	BucketExpiringSoon = "expiring_soon"
	BucketExpired      = "expired"
)

// Options parámetros de los buckets dependientes de umbrales.
type Options struct {
	HighValueThreshold decimal.Decimal
	RecentDays         int
	ExpiringDays       int
}

// DefaultOptions umbral 10000, recientes 7 días, por vencer 7 días.
func DefaultOptions() Options {
	return Options{
		HighValueThreshold: decimal.NewFromInt(10000),
		RecentDays:         7,
		ExpiringDays:       7,
	}
}

func (o Options) normalized() Options {
	def := DefaultOptions()
	if !o.HighValueThreshold.IsPositive() {
		o.HighValueThreshold = def.HighValueThreshold
	}
	if o.RecentDays <= 0 {
		o.RecentDays = def.RecentDays
	}
	if o.ExpiringDays <= 0 {
		o.ExpiringDays = def.ExpiringDays
	}
	return o
}

// Documents definición de vistas para cotizaciones y órdenes.
func Documents(t entity.DocumentType, opts Options) (view.Definition[entity.Document], error) {
	opts = opts.normalized()
	switch t {
	case entity.TypeQuote:
		return quotes(opts), nil
	case entity.TypePurchaseOrder:
		return purchaseOrders(opts), nil
	case entity.TypeSalesOrder:
		return salesOrders(opts), nil
	}
	return view.Definition[entity.Document]{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, t)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cotizaciones
// ──────────────────────────────────────────────────────────────────────────────

func quotes(o Options) view.Definition[entity.Document] {
	closed := []string{entity.QuoteStatusAccepted, entity.QuoteStatusRejected}
	return view.Definition[entity.Document]{
		Buckets: []view.Bucket[entity.Document]{
			{ID: view.BucketAll, Label: "All Quotes"},
			statusBucket("draft", "Draft", entity.QuoteStatusDraft),
			statusBucket("sent", "Sent", entity.QuoteStatusSent),
			statusBucket("approved", "Approved", entity.QuoteStatusApproved),
			statusBucket("accepted", "Accepted", entity.QuoteStatusAccepted),
			statusBucket("rejected", "Rejected", entity.QuoteStatusRejected),
			{
				ID:    BucketExpiringSoon,
				Label: "Expiring Soon",
				Match: func(d entity.Document, now time.Time) bool {
					if d.ValidUntil.IsZero() || slices.Contains(closed, d.Status) {
						return false
					}
					limit := now.AddDate(0, 0, o.ExpiringDays)
					return !d.ValidUntil.Before(now) && !d.ValidUntil.After(limit)
				},
			},
			{
				ID:    BucketExpired,
				Label: "Expired",
				Match: func(d entity.Document, now time.Time) bool {
					return !d.ValidUntil.IsZero() && d.ValidUntil.Before(now) && !slices.Contains(closed, d.Status)
				},
			},
			recentBucket(o),
			highValueBucket(o),
		},
		Facets:       []string{"status", "owner", "accountName", "currency"},
		SearchFields: []string{"number", "subject", "accountName", "contactName", "owner"},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes de compra
// ──────────────────────────────────────────────────────────────────────────────

func purchaseOrders(o Options) view.Definition[entity.Document] {
	return view.Definition[entity.Document]{
		Buckets: []view.Bucket[entity.Document]{
			{ID: view.BucketAll, Label: "All Purchase Orders"},
			statusBucket("draft", "Draft", entity.PurchaseOrderStatusDraft),
			statusBucket("pending_approval", "Pending Approval", entity.PurchaseOrderStatusCreated),
			statusBucket("approved", "Approved", entity.PurchaseOrderStatusApproved),
			statusBucket("sent", "Sent", entity.PurchaseOrderStatusSent),
			statusBucket("received", "Received", entity.PurchaseOrderStatusReceived),
			overdueBucket(
				entity.PurchaseOrderStatusReceived,
				entity.PurchaseOrderStatusCompleted,
				entity.PurchaseOrderStatusCancelled,
			),
			recentBucket(o),
			highValueBucket(o),
		},
		Facets:       []string{"status", "owner", "vendorName", "carrier", "currency"},
		SearchFields: []string{"number", "subject", "vendorName", "owner", "carrier", "trackingNumber"},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes de venta
// ──────────────────────────────────────────────────────────────────────────────

func salesOrders(o Options) view.Definition[entity.Document] {
	return view.Definition[entity.Document]{
		Buckets: []view.Bucket[entity.Document]{
			{ID: view.BucketAll, Label: "All Sales Orders"},
			statusBucket("created", "Created", entity.SalesOrderStatusCreated),
			statusBucket("approved", "Approved", entity.SalesOrderStatusApproved),
			statusBucket("shipped", "Shipped", entity.SalesOrderStatusShipped),
			statusBucket("delivered", "Delivered", entity.SalesOrderStatusDelivered),
			overdueBucket(
				entity.SalesOrderStatusCompleted,
				entity.SalesOrderStatusCancelled,
				entity.SalesOrderStatusShipped,
				entity.SalesOrderStatusDelivered,
			),
			recentBucket(o),
			highValueBucket(o),
		},
		Facets:       []string{"status", "owner", "customerName", "accountName", "carrier", "currency"},
		SearchFields: []string{"number", "subject", "customerName", "accountName", "owner", "carrier"},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Listas de precios
// ──────────────────────────────────────────────────────────────────────────────

// PriceBook definición de vistas para registros de lista de precios.
func PriceBook(o Options) view.Definition[entity.PriceBookEntry] {
	o = o.normalized()
	return view.Definition[entity.PriceBookEntry]{
		Buckets: []view.Bucket[entity.PriceBookEntry]{
			{ID: view.BucketAll, Label: "All Price Books"},
			{ID: "active", Label: "Active", Match: func(p entity.PriceBookEntry, _ time.Time) bool { return p.Active }},
			{ID: "inactive", Label: "Inactive", Match: func(p entity.PriceBookEntry, _ time.Time) bool { return !p.Active }},
			{
				ID:    BucketRecent,
				Label: "Recently Added",
				Match: func(p entity.PriceBookEntry, now time.Time) bool {
					return p.CreatedAt.After(now.AddDate(0, 0, -o.RecentDays))
				},
			},
		},
		Facets:       []string{"status", "category", "owner", "currency"},
		SearchFields: []string{"name", "productName", "category", "description"},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Constructores de buckets
// ──────────────────────────────────────────────────────────────────────────────

func statusBucket(id, label, status string) view.Bucket[entity.Document] {
	return view.Bucket[entity.Document]{
		ID:    id,
		Label: label,
		Match: func(d entity.Document, _ time.Time) bool { return d.Status == status },
	}
}

// overdueBucket fecha de vencimiento pasada y estado fuera de los terminales.
func overdueBucket(terminal ...string) view.Bucket[entity.Document] {
	return view.Bucket[entity.Document]{
		ID:    BucketOverdue,
		Label: "Overdue",
		Match: func(d entity.Document, now time.Time) bool {
			return !d.DueDate.IsZero() && d.DueDate.Before(now) && !slices.Contains(terminal, d.Status)
		},
	}
}

func recentBucket(o Options) view.Bucket[entity.Document] {
	return view.Bucket[entity.Document]{
		ID:    BucketRecent,
		Label: "Recently Created",
		Match: func(d entity.Document, now time.Time) bool {
			return d.CreatedAt.After(now.AddDate(0, 0, -o.RecentDays))
		},
	}
}

// highValueBucket gran total >= umbral, ordenado de mayor a menor (empates en orden de entrada).
func highValueBucket(o Options) view.Bucket[entity.Document] {
	return view.Bucket[entity.Document]{
		ID:    BucketHighValue,
		Label: "High Value",
		Match: func(d entity.Document, _ time.Time) bool {
			return d.Totals.GrandTotal.GreaterThanOrEqual(o.HighValueThreshold)
		},
		Order: func(a, b entity.Document) int {
			return b.Totals.GrandTotal.Cmp(a.Totals.GrandTotal)
		},
	}
}

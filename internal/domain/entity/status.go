package entity

// Estados de cotización.
const (
	QuoteStatusDraft    = "Draft"
	QuoteStatusSent     = "Sent"
	QuoteStatusApproved = "Approved"
	QuoteStatusAccepted = "Accepted"
	QuoteStatusRejected = "Rejected"
)

// Estados de orden de compra.
const (
	PurchaseOrderStatusDraft     = "Draft"
	PurchaseOrderStatusCreated   = "Created"
	PurchaseOrderStatusApproved  = "Approved"
	PurchaseOrderStatusSent      = "Sent"
	PurchaseOrderStatusReceived  = "Received"
	PurchaseOrderStatusCompleted = "Completed"
	PurchaseOrderStatusCancelled = "Cancelled"
)

// Estados de orden de venta.
const (
	SalesOrderStatusCreated   = "Created"
	SalesOrderStatusApproved  = "Approved"
	SalesOrderStatusShipped   = "Shipped"
	SalesOrderStatusDelivered = "Delivered"
	SalesOrderStatusCompleted = "Completed"
	SalesOrderStatusCancelled = "Cancelled"
)

var statusesByType = map[DocumentType][]string{
	TypeQuote: {
		QuoteStatusDraft, QuoteStatusSent, QuoteStatusApproved, QuoteStatusAccepted, QuoteStatusRejected,
	},
	TypePurchaseOrder: {
		PurchaseOrderStatusDraft, PurchaseOrderStatusCreated, PurchaseOrderStatusApproved, PurchaseOrderStatusSent,
		PurchaseOrderStatusReceived, PurchaseOrderStatusCompleted, PurchaseOrderStatusCancelled,
	},
	TypeSalesOrder: {
		SalesOrderStatusCreated, SalesOrderStatusApproved, SalesOrderStatusShipped, SalesOrderStatusDelivered,
		SalesOrderStatusCompleted, SalesOrderStatusCancelled,
	},
}

// Statuses devuelve la enumeración cerrada de estados del tipo (copia).
func Statuses(t DocumentType) []string {
	src := statusesByType[t]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// IsValidStatus verifica que el estado pertenezca a la enumeración del tipo.
func IsValidStatus(t DocumentType, status string) bool {
	for _, s := range statusesByType[t] {
		if s == status {
			return true
		}
	}
	return false
}

// InitialStatus estado con el que nace un documento del tipo dado.
func InitialStatus(t DocumentType) string {
	if s := statusesByType[t]; len(s) > 0 {
		return s[0]
	}
	return ""
}

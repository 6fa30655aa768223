package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemDTO línea de documento. En solicitudes los campos derivados
// (amount, discount, tax, total) se ignoran y se recalculan.
type LineItemDTO struct {
	ID             int64           `json:"id,omitempty"`
	ProductID      string          `json:"product_id,omitempty"`
	ProductName    string          `json:"product_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	ListPrice      decimal.Decimal `json:"list_price"`
	DiscountMode   string          `json:"discount_mode,omitempty"` // percent | amount
	DiscountRate   decimal.Decimal `json:"discount_rate"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxMode        string          `json:"tax_mode,omitempty"` // percent | amount
	TaxRate        decimal.Decimal `json:"tax_rate"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	Amount         decimal.Decimal `json:"amount"`
	Discount       decimal.Decimal `json:"discount"`
	Tax            decimal.Decimal `json:"tax"`
	Total          decimal.Decimal `json:"total"`
}

// TotalsDTO bloque de totales. final_payable solo aparece con cargos adicionales.
type TotalsDTO struct {
	Subtotal      decimal.Decimal  `json:"subtotal"`
	DiscountTotal decimal.Decimal  `json:"discount_total"`
	TaxTotal      decimal.Decimal  `json:"tax_total"`
	Adjustment    decimal.Decimal  `json:"adjustment"`
	GrandTotal    decimal.Decimal  `json:"grand_total"`
	ExtraCharges  decimal.Decimal  `json:"extra_charges"`
	FinalPayable  *decimal.Decimal `json:"final_payable,omitempty"`
}

// DocumentRequest body para POST /api/documents y PUT /api/documents/:id.
// line_items ausente (null) marca el documento como mal formado.
type DocumentRequest struct {
	ID              string          `json:"id,omitempty"`
	Type            string          `json:"type"`
	Number          string          `json:"number,omitempty"`
	Subject         string          `json:"subject,omitempty"`
	Status          string          `json:"status,omitempty"`
	AccountName     string          `json:"account_name,omitempty"`
	VendorName      string          `json:"vendor_name,omitempty"`
	CustomerName    string          `json:"customer_name,omitempty"`
	ContactName     string          `json:"contact_name,omitempty"`
	Owner           string          `json:"owner,omitempty"`
	Carrier         string          `json:"carrier,omitempty"`
	TrackingNumber  string          `json:"tracking_number,omitempty"`
	Category        string          `json:"category,omitempty"`
	Currency        string          `json:"currency,omitempty"`
	IssueDate       *time.Time      `json:"issue_date,omitempty"`
	DueDate         *time.Time      `json:"due_date,omitempty"`
	ValidUntil      *time.Time      `json:"valid_until,omitempty"`
	CreatedAt       *time.Time      `json:"created_at,omitempty"`
	LineItems       []LineItemDTO   `json:"line_items"`
	Adjustment      decimal.Decimal `json:"adjustment"`
	ExciseDuty      decimal.Decimal `json:"excise_duty"`
	SalesCommission decimal.Decimal `json:"sales_commission"`
	Version         int64           `json:"version,omitempty"`
}

// DocumentResponse documento con líneas y totales recalculados.
type DocumentResponse struct {
	ID              string          `json:"id"`
	Type            string          `json:"type"`
	Number          string          `json:"number,omitempty"`
	Subject         string          `json:"subject,omitempty"`
	Status          string          `json:"status"`
	AccountName     string          `json:"account_name,omitempty"`
	VendorName      string          `json:"vendor_name,omitempty"`
	CustomerName    string          `json:"customer_name,omitempty"`
	ContactName     string          `json:"contact_name,omitempty"`
	Owner           string          `json:"owner,omitempty"`
	Carrier         string          `json:"carrier,omitempty"`
	TrackingNumber  string          `json:"tracking_number,omitempty"`
	Category        string          `json:"category,omitempty"`
	Currency        string          `json:"currency,omitempty"`
	IssueDate       *time.Time      `json:"issue_date,omitempty"`
	DueDate         *time.Time      `json:"due_date,omitempty"`
	ValidUntil      *time.Time      `json:"valid_until,omitempty"`
	LineItems       []LineItemDTO   `json:"line_items"`
	Adjustment      decimal.Decimal `json:"adjustment"`
	ExciseDuty      decimal.Decimal `json:"excise_duty"`
	SalesCommission decimal.Decimal `json:"sales_commission"`
	Totals          TotalsDTO       `json:"totals"`
	Version         int64           `json:"version"`
	CreatedAt       *time.Time      `json:"created_at,omitempty"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty"`
}

// EditLineRequest body para PATCH /api/documents/:id/lines/:lineId.
// value llega tal cual se tecleó; texto no numérico se interpreta como 0.
type EditLineRequest struct {
	Field string `json:"field" validate:"required"`
	Value any    `json:"value"`
}

// RecomputeRequest body para POST /api/line-items/recompute.
type RecomputeRequest struct {
	DocumentType string      `json:"document_type,omitempty"`
	Item         LineItemDTO `json:"item"`
	Field        string      `json:"field" validate:"required"`
	Value        any         `json:"value"`
}

// ChargeDTO cargo adicional (impuesto al consumo, comisión).
type ChargeDTO struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// TotalsRequest body para POST /api/totals.
type TotalsRequest struct {
	LineItems    []LineItemDTO `json:"line_items"`
	Adjustment   any           `json:"adjustment"`
	ExtraCharges []ChargeDTO   `json:"extra_charges,omitempty"`
}

// AdjustmentRequest body para PUT /api/documents/:id/adjustment.
type AdjustmentRequest struct {
	Adjustment any `json:"adjustment"`
}

// ChargesRequest body para PUT /api/documents/:id/charges.
type ChargesRequest struct {
	ExciseDuty      any `json:"excise_duty"`
	SalesCommission any `json:"sales_commission"`
}

// ValidationIssueDTO campo incompleto detectado al guardar (sin mensaje formateado).
type ValidationIssueDTO struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidateResponse resultado de POST /api/documents/:id/validate.
type ValidateResponse struct {
	Valid  bool                 `json:"valid"`
	Issues []ValidationIssueDTO `json:"issues"`
}

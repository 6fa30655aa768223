package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceBookEntry representa un registro de lista de precios (producto + precio de lista).
// No tiene líneas; solo participa en las vistas de listado.
type PriceBookEntry struct {
	ID          string
	Name        string
	ProductName string
	Category    string
	Description string
	Currency    string
	Owner       string
	ListPrice   decimal.Decimal
	Active      bool
	CreatedAt   time.Time
}

// Estados derivados de Active, expuestos como faceta "status".
const (
	PriceBookStatusActive   = "Active"
	PriceBookStatusInactive = "Inactive"
)

// Status devuelve Active o Inactive.
func (p PriceBookEntry) Status() string {
	if p.Active {
		return PriceBookStatusActive
	}
	return PriceBookStatusInactive
}

// Field devuelve el valor textual de un campo por nombre (camelCase o snake_case).
func (p PriceBookEntry) Field(name string) (string, bool) {
	switch normalizeFieldName(name) {
	case "id":
		return p.ID, true
	case "name":
		return p.Name, true
	case "productname":
		return p.ProductName, true
	case "category":
		return p.Category, true
	case "description":
		return p.Description, true
	case "currency":
		return p.Currency, true
	case "owner":
		return p.Owner, true
	case "status":
		return p.Status(), true
	case "listprice":
		return p.ListPrice.StringFixed(2), true
	case "createdat":
		return formatDate(p.CreatedAt)
	}
	return "", false
}

// Attributes expone el registro como mapa para expresiones de vistas configurables.
func (p PriceBookEntry) Attributes() map[string]any {
	m := map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"productName": p.ProductName,
		"category":    p.Category,
		"description": p.Description,
		"currency":    p.Currency,
		"owner":       p.Owner,
		"status":      p.Status(),
		"active":      p.Active,
		"listPrice":   p.ListPrice.InexactFloat64(),
	}
	putTime(m, "createdAt", p.CreatedAt)
	return m
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ViewQueryDTO criterio de filtrado de una lista.
type ViewQueryDTO struct {
	View   string            `json:"view"`
	Facets map[string]string `json:"facets,omitempty"`
	Search string            `json:"search,omitempty"`
}

// ViewInfoDTO vista disponible para el menú.
type ViewInfoDTO struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ViewsResponse respuesta de GET /api/views/:type.
type ViewsResponse struct {
	Type         string        `json:"type"`
	Views        []ViewInfoDTO `json:"views"`
	Facets       []string      `json:"facets"`
	SearchFields []string      `json:"search_fields"`
}

// ListRequest parámetros de GET /api/views/:type/documents.
type ListRequest struct {
	Query ViewQueryDTO
	Page  PageRequest
}

// DocumentPage página de documentos filtrados. view es la vista efectivamente aplicada.
type DocumentPage struct {
	View  string             `json:"view"`
	Items []DocumentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// PriceBookEntryDTO registro de lista de precios.
type PriceBookEntryDTO struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"`
	ProductName string          `json:"product_name,omitempty"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	Currency    string          `json:"currency,omitempty"`
	Owner       string          `json:"owner,omitempty"`
	ListPrice   decimal.Decimal `json:"list_price"`
	Active      bool            `json:"active"`
	Status      string          `json:"status,omitempty"`
	CreatedAt   *time.Time      `json:"created_at,omitempty"`
}

// PriceBookPage página de registros de lista de precios filtrados.
type PriceBookPage struct {
	View  string              `json:"view"`
	Items []PriceBookEntryDTO `json:"items"`
	Page  PageResponse        `json:"page"`
}

// ApplyViewRequest body para POST /api/views/:type/apply (sin estado).
// Para price_book se usa price_books; para el resto, documents.
type ApplyViewRequest struct {
	Documents  []DocumentRequest   `json:"documents,omitempty"`
	PriceBooks []PriceBookEntryDTO `json:"price_books,omitempty"`
	Query      ViewQueryDTO        `json:"query"`
}

// ApplyViewResponse resultado del filtrado sin estado.
type ApplyViewResponse struct {
	View       string              `json:"view"`
	Documents  []DocumentResponse  `json:"documents,omitempty"`
	PriceBooks []PriceBookEntryDTO `json:"price_books,omitempty"`
}

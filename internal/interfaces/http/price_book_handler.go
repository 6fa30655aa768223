package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/commercial-docs/internal/application/documents"
	"github.com/jhoicas/commercial-docs/internal/application/dto"
)

// PriceBookHandler alta de registros de lista de precios; el listado va por /api/views/price_book.
type PriceBookHandler struct {
	uc *documents.UseCase
}

// NewPriceBookHandler construye el handler.
func NewPriceBookHandler(uc *documents.UseCase) *PriceBookHandler {
	return &PriceBookHandler{uc: uc}
}

// Create registra una entrada.
// POST /api/price-books
func (h *PriceBookHandler) Create(c *fiber.Ctx) error {
	var in dto.PriceBookEntryDTO
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	entry, err := h.uc.CreatePriceBookEntry(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

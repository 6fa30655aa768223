package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/commercial-docs/internal/application/documents"
	"github.com/jhoicas/commercial-docs/internal/application/dto"
	"github.com/jhoicas/commercial-docs/internal/application/validation"
	"github.com/jhoicas/commercial-docs/internal/domain"
	"github.com/jhoicas/commercial-docs/pkg/logger"
)

// DocumentHandler maneja documentos, líneas y totales.
type DocumentHandler struct {
	uc        *documents.UseCase
	validator *validation.Validator
	log       *logger.Logger
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *documents.UseCase, validator *validation.Validator, log *logger.Logger) *DocumentHandler {
	return &DocumentHandler{uc: uc, validator: validator, log: log}
}

// Create crea un documento.
// POST /api/documents
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var in dto.DocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	doc, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return h.rejected(c, "create", "", err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// GetByID obtiene el documento.
// GET /api/documents/:id
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	doc, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(doc)
}

// Replace reemplaza el documento; requiere la versión leída.
// PUT /api/documents/:id
func (h *DocumentHandler) Replace(c *fiber.Ctx) error {
	var in dto.DocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	id := c.Params("id")
	doc, err := h.uc.Replace(c.Context(), id, in)
	if err != nil {
		return h.rejected(c, "replace", id, err)
	}
	return c.JSON(doc)
}

// AddLine agrega una línea en cero.
// POST /api/documents/:id/lines
func (h *DocumentHandler) AddLine(c *fiber.Ctx) error {
	id := c.Params("id")
	doc, err := h.uc.AddLine(c.Context(), id)
	if err != nil {
		return h.rejected(c, "add_line", id, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// EditLine edita un campo de la línea.
// PATCH /api/documents/:id/lines/:lineId
func (h *DocumentHandler) EditLine(c *fiber.Ctx) error {
	lineID, err := c.ParamsInt("lineId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lineId inválido"})
	}
	var in dto.EditLineRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if issues := h.validator.Struct(in); len(issues) > 0 {
		return h.invalid(c, "edit_line", issues)
	}
	id := c.Params("id")
	doc, err := h.uc.EditLine(c.Context(), id, int64(lineID), in)
	if err != nil {
		return h.rejected(c, "edit_line", id, err)
	}
	return c.JSON(doc)
}

// RemoveLine elimina la línea; la última línea no se puede eliminar (422).
// DELETE /api/documents/:id/lines/:lineId
func (h *DocumentHandler) RemoveLine(c *fiber.Ctx) error {
	lineID, err := c.ParamsInt("lineId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lineId inválido"})
	}
	id := c.Params("id")
	doc, err := h.uc.RemoveLine(c.Context(), id, int64(lineID))
	if err != nil {
		return h.rejected(c, "remove_line", id, err)
	}
	return c.JSON(doc)
}

// SetAdjustment fija el ajuste manual.
// PUT /api/documents/:id/adjustment
func (h *DocumentHandler) SetAdjustment(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	id := c.Params("id")
	doc, err := h.uc.SetAdjustment(c.Context(), id, in)
	if err != nil {
		return h.rejected(c, "set_adjustment", id, err)
	}
	return c.JSON(doc)
}

// SetExtraCharges fija impuesto al consumo y comisión (órdenes de compra).
// PUT /api/documents/:id/charges
func (h *DocumentHandler) SetExtraCharges(c *fiber.Ctx) error {
	var in dto.ChargesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	id := c.Params("id")
	doc, err := h.uc.SetExtraCharges(c.Context(), id, in)
	if err != nil {
		return h.rejected(c, "set_charges", id, err)
	}
	return c.JSON(doc)
}

// Totals devuelve los totales del documento.
// GET /api/documents/:id/totals
func (h *DocumentHandler) Totals(c *fiber.Ctx) error {
	totals, err := h.uc.Totals(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(totals)
}

// Validate revisa la completitud del documento.
// POST /api/documents/:id/validate
func (h *DocumentHandler) Validate(c *fiber.Ctx) error {
	res, err := h.uc.Validate(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// Recompute recalcula una línea suelta (sin estado).
// POST /api/line-items/recompute
func (h *DocumentHandler) Recompute(c *fiber.Ctx) error {
	var in dto.RecomputeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if issues := h.validator.Struct(in); len(issues) > 0 {
		return h.invalid(c, "recompute", issues)
	}
	item, err := h.uc.Recompute(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(item)
}

// ComputeTotals consolida líneas sueltas (sin estado).
// POST /api/totals
func (h *DocumentHandler) ComputeTotals(c *fiber.Ctx) error {
	var in dto.TotalsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	totals, err := h.uc.ComputeTotals(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(totals)
}

// rejected registra la mutación rechazada y responde el error.
func (h *DocumentHandler) rejected(c *fiber.Ctx, op, id string, err error) error {
	ev := h.log.Warn().Str("op", op).Str("document_id", id).Err(err)
	if ve, ok := domain.AsValidationError(err); ok {
		ev = ev.Str("code", ve.Code)
	}
	ev.Msg("mutación rechazada")
	return writeError(c, err)
}

// invalid registra los campos que no pasaron la validación y responde con el primero.
func (h *DocumentHandler) invalid(c *fiber.Ctx, op string, issues []validation.Issue) error {
	h.log.Debug().Str("op", op).Str("fields", validation.Fields(issues)).Msg("cuerpo con datos inválidos")
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Field: issues[0].Field})
}

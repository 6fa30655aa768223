package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/commercial-docs/internal/application/documents"
	"github.com/jhoicas/commercial-docs/internal/application/dto"
	"github.com/jhoicas/commercial-docs/internal/domain/entity"
	"github.com/jhoicas/commercial-docs/pkg/logger"
)

const facetPrefix = "facet."

// ViewHandler maneja las vistas filtradas por tipo de documento.
type ViewHandler struct {
	uc  *documents.UseCase
	log *logger.Logger
}

// NewViewHandler construye el handler.
func NewViewHandler(uc *documents.UseCase, log *logger.Logger) *ViewHandler {
	return &ViewHandler{uc: uc, log: log}
}

// List vistas, facetas y campos de búsqueda del tipo.
// GET /api/views/:type
func (h *ViewHandler) List(c *fiber.Ctx) error {
	res, err := h.uc.Views(c.Params("type"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// Documents lista filtrada y paginada.
// GET /api/views/:type/documents?view=overdue&search=tech&facet.status=Sent&limit=20&offset=0
func (h *ViewHandler) Documents(c *fiber.Ctx) error {
	docType := c.Params("type")
	in := dto.ListRequest{
		Query: dto.ViewQueryDTO{
			View:   c.Query("view"),
			Search: c.Query("search"),
			Facets: facetsFromQuery(c),
		},
		Page: dto.PageRequest{
			Limit:  c.QueryInt("limit", 0),
			Offset: c.QueryInt("offset", 0),
		},
	}
	h.logUnknownView(docType, in.Query.View)

	if entity.DocumentType(docType) == entity.TypePriceBook {
		page, err := h.uc.ListPriceBooks(c.Context(), in)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(page)
	}
	page, err := h.uc.ListDocuments(c.Context(), docType, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(page)
}

// Apply filtra los documentos recibidos en el cuerpo (sin estado).
// POST /api/views/:type/apply
func (h *ViewHandler) Apply(c *fiber.Ctx) error {
	var in dto.ApplyViewRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	docType := c.Params("type")
	h.logUnknownView(docType, in.Query.View)
	res, err := h.uc.ApplyView(docType, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

func (h *ViewHandler) logUnknownView(docType, id string) {
	if id == "" || h.uc.KnownView(docType, id) {
		return
	}
	h.log.Debug().Str("type", docType).Str("view", id).Msg("vista desconocida, se aplica all")
}

// facetsFromQuery toma los parámetros facet.<campo>=valor.
func facetsFromQuery(c *fiber.Ctx) map[string]string {
	var facets map[string]string
	for k, v := range c.Queries() {
		name, ok := strings.CutPrefix(k, facetPrefix)
		if !ok || name == "" {
			continue
		}
		if facets == nil {
			facets = make(map[string]string)
		}
		facets[name] = v
	}
	return facets
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/commercial-docs/internal/application/documents"
	"github.com/jhoicas/commercial-docs/internal/application/validation"
	"github.com/jhoicas/commercial-docs/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Documents *documents.UseCase
	Validator *validation.Validator
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	docHandler := NewDocumentHandler(deps.Documents, deps.Validator, deps.Log)
	viewHandler := NewViewHandler(deps.Documents, deps.Log)
	priceBookHandler := NewPriceBookHandler(deps.Documents)

	// Cálculo sin estado
	api.Post("/line-items/recompute", docHandler.Recompute)
	api.Post("/totals", docHandler.ComputeTotals)

	// Documentos
	docs := api.Group("/documents")
	docs.Post("/", docHandler.Create)
	docs.Get("/:id", docHandler.GetByID)
	docs.Put("/:id", docHandler.Replace)
	docs.Post("/:id/lines", docHandler.AddLine)
	docs.Patch("/:id/lines/:lineId", docHandler.EditLine)
	docs.Delete("/:id/lines/:lineId", docHandler.RemoveLine)
	docs.Put("/:id/adjustment", docHandler.SetAdjustment)
	docs.Put("/:id/charges", docHandler.SetExtraCharges)
	docs.Get("/:id/totals", docHandler.Totals)
	docs.Post("/:id/validate", docHandler.Validate)

	// Listas de precios
	api.Post("/price-books", priceBookHandler.Create)

	// Vistas
	views := api.Group("/views")
	views.Get("/:type", viewHandler.List)
	views.Get("/:type/documents", viewHandler.Documents)
	views.Post("/:type/apply", viewHandler.Apply)
}

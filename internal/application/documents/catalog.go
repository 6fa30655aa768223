package documents

import (
	"fmt"
	"time"

	"github.com/jhoicas/commercial-docs/internal/domain"
	"github.com/jhoicas/commercial-docs/internal/domain/entity"
	"github.com/jhoicas/commercial-docs/internal/domain/view"
	"github.com/jhoicas/commercial-docs/internal/domain/view/presets"
)

// CatalogConfig parámetros de las vistas: umbrales de los presets, marcadores de faceta,
// reloj y buckets adicionales declarados en configuración.
type CatalogConfig struct {
	Presets          presets.Options
	Placeholders     []string
	Clock            func() time.Time
	DocumentBuckets  map[entity.DocumentType][]view.Bucket[entity.Document]
	PriceBookBuckets []view.Bucket[entity.PriceBookEntry]
}

// Catalog motores de vistas por tipo de documento, construidos una sola vez al arrancar.
type Catalog struct {
	documents map[entity.DocumentType]*view.Engine[entity.Document]
	priceBook *view.Engine[entity.PriceBookEntry]
}

// NewCatalog construye los motores. Un bucket adicional que repite un ID existente es un error.
func NewCatalog(cfg CatalogConfig) (*Catalog, error) {
	opts := []view.Option{view.WithClock(cfg.Clock), view.WithPlaceholders(cfg.Placeholders...)}

	c := &Catalog{documents: make(map[entity.DocumentType]*view.Engine[entity.Document])}
	for _, t := range []entity.DocumentType{entity.TypeQuote, entity.TypePurchaseOrder, entity.TypeSalesOrder} {
		def, err := presets.Documents(t, cfg.Presets)
		if err != nil {
			return nil, err
		}
		def, err = def.Extend(cfg.DocumentBuckets[t]...)
		if err != nil {
			return nil, fmt.Errorf("vistas de %s: %w", t, err)
		}
		c.documents[t] = view.New(def, opts...)
	}
	for t := range cfg.DocumentBuckets {
		if _, ok := c.documents[t]; !ok {
			return nil, fmt.Errorf("vistas adicionales: %w: %s", domain.ErrUnsupportedType, t)
		}
	}

	pb, err := presets.PriceBook(cfg.Presets).Extend(cfg.PriceBookBuckets...)
	if err != nil {
		return nil, fmt.Errorf("vistas de %s: %w", entity.TypePriceBook, err)
	}
	c.priceBook = view.New(pb, opts...)
	return c, nil
}

// Documents motor de vistas del tipo.
func (c *Catalog) Documents(t entity.DocumentType) (*view.Engine[entity.Document], error) {
	e, ok := c.documents[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, t)
	}
	return e, nil
}

// PriceBook motor de vistas de listas de precios.
func (c *Catalog) PriceBook() *view.Engine[entity.PriceBookEntry] {
	return c.priceBook
}

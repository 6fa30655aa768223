package repository

import (
	"context"

	"github.com/jhoicas/commercial-docs/internal/domain/entity"
)

// DocumentRepository define el puerto del almacén de documentos del host.
// Las implementaciones devuelven copias: modificar un documento obtenido no altera el almacén.
type DocumentRepository interface {
	// Create asigna ID (si falta), versión 1 y fechas de auditoría.
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	// List devuelve los documentos del tipo en orden de creación.
	List(ctx context.Context, t entity.DocumentType) ([]entity.Document, error)
	// Update ejecuta fn sobre una copia y la guarda solo si fn no retorna error.
	// Incrementa la versión en cada escritura.
	Update(ctx context.Context, id string, fn func(doc *entity.Document) error) (*entity.Document, error)
	// Replace reemplaza el documento si expectedVersion coincide; si no, domain.ErrConflict.
	Replace(ctx context.Context, doc *entity.Document, expectedVersion int64) error
}

// PriceBookRepository define el puerto para registros de lista de precios.
type PriceBookRepository interface {
	Create(ctx context.Context, entry *entity.PriceBookEntry) error
	List(ctx context.Context) ([]entity.PriceBookEntry, error)
}

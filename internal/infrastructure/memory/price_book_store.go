package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/commercial-docs/internal/domain/entity"
	"github.com/jhoicas/commercial-docs/internal/domain/repository"
)

var _ repository.PriceBookRepository = (*PriceBookStore)(nil)

// PriceBookStore almacén en memoria de registros de lista de precios.
type PriceBookStore struct {
	mu      sync.RWMutex
	entries []entity.PriceBookEntry
}

// NewPriceBookStore construye el almacén vacío.
func NewPriceBookStore() *PriceBookStore {
	return &PriceBookStore{}
}

// Create agrega el registro al final.
func (s *PriceBookStore) Create(ctx context.Context, entry *entity.PriceBookEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	s.entries = append(s.entries, *entry)
	s.mu.Unlock()
	return nil
}

// List devuelve una copia en orden de inserción.
func (s *PriceBookStore) List(ctx context.Context) ([]entity.PriceBookEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.PriceBookEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

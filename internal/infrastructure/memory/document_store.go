package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/commercial-docs/internal/domain"
	"github.com/jhoicas/commercial-docs/internal/domain/entity"
	"github.com/jhoicas/commercial-docs/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentStore)(nil)

// DocumentStore almacén en memoria de documentos. Guarda copias profundas y serializa
// las escrituras con un RWMutex; cada Update se comporta como una transacción.
type DocumentStore struct {
	mu    sync.RWMutex
	docs  map[string]entity.Document
	order []string
	now   func() time.Time
}

// NewDocumentStore construye el almacén vacío.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]entity.Document), now: time.Now}
}

// WithClock reemplaza el reloj de auditoría (tests).
func (s *DocumentStore) WithClock(now func() time.Time) *DocumentStore {
	s.now = now
	return s
}

// Create guarda el documento; asigna ID si viene vacío.
func (s *DocumentStore) Create(ctx context.Context, doc *entity.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[doc.ID]; exists {
		return fmt.Errorf("document %s already exists: %w", doc.ID, domain.ErrConflict)
	}
	ts := s.now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = ts
	}
	doc.UpdatedAt = ts
	doc.Version = 1
	s.docs[doc.ID] = doc.Clone()
	s.order = append(s.order, doc.ID)
	return nil
}

// GetByID devuelve una copia o domain.ErrNotFound.
func (s *DocumentStore) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	out := doc.Clone()
	return &out, nil
}

// List filtra por tipo conservando el orden de creación. Tipo vacío devuelve todos.
func (s *DocumentStore) List(ctx context.Context, t entity.DocumentType) ([]entity.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Document, 0, len(s.order))
	for _, id := range s.order {
		doc := s.docs[id]
		if t != "" && doc.Type != t {
			continue
		}
		out = append(out, doc.Clone())
	}
	return out, nil
}

// Update aplica fn sobre una copia bajo el lock de escritura. Si fn falla, nada cambia.
func (s *DocumentStore) Update(ctx context.Context, id string, fn func(doc *entity.Document) error) (*entity.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.docs[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	work := current.Clone()
	if err := fn(&work); err != nil {
		return nil, err
	}
	work.ID = current.ID
	work.CreatedAt = current.CreatedAt
	work.Version = current.Version + 1
	work.UpdatedAt = s.now().UTC()
	s.docs[id] = work.Clone()
	return &work, nil
}

// Replace escritura completa con control optimista de versión.
func (s *DocumentStore) Replace(ctx context.Context, doc *entity.Document, expectedVersion int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.docs[doc.ID]
	if !ok {
		return fmt.Errorf("document %s: %w", doc.ID, domain.ErrNotFound)
	}
	if current.Version != expectedVersion {
		return fmt.Errorf("document %s version %d, expected %d: %w", doc.ID, current.Version, expectedVersion, domain.ErrConflict)
	}
	doc.CreatedAt = current.CreatedAt
	doc.Version = current.Version + 1
	doc.UpdatedAt = s.now().UTC()
	s.docs[doc.ID] = doc.Clone()
	return nil
}

package memory

import (
	"context"
	"sync"

	"github.com/gestordoc/docportal/internal/core/domain"
)

// DocumentRepository is an in-memory, append-only document store. New
// records are prepended so store order is newest-first.
type DocumentRepository struct {
	mu   sync.RWMutex
	docs []*domain.DocumentRecord
}

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{}
}

func (r *DocumentRepository) Append(_ context.Context, doc *domain.DocumentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = append([]*domain.DocumentRecord{cloneDoc(doc)}, r.docs...)
	return nil
}

func (r *DocumentRepository) FindByID(_ context.Context, id string) (*domain.DocumentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.docs {
		if d.ID == id {
			return cloneDoc(d), nil
		}
	}
	return nil, domain.ErrDocumentNotFound
}

func (r *DocumentRepository) ListByOwners(_ context.Context, ownerIDs []string) ([]*domain.DocumentRecord, error) {
	owners := make(map[string]struct{}, len(ownerIDs))
	for _, id := range ownerIDs {
		owners[id] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.DocumentRecord
	for _, d := range r.docs {
		if _, ok := owners[d.ClientID]; ok {
			out = append(out, cloneDoc(d))
		}
	}
	return out, nil
}

func (r *DocumentRepository) ListAll(_ context.Context) ([]*domain.DocumentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.DocumentRecord, len(r.docs))
	for i, d := range r.docs {
		out[i] = cloneDoc(d)
	}
	return out, nil
}

func cloneDoc(d *domain.DocumentRecord) *domain.DocumentRecord {
	clone := *d
	if d.Extracted != nil {
		data := *d.Extracted
		data.Materials = append([]domain.Material(nil), d.Extracted.Materials...)
		clone.Extracted = &data
	}
	return &clone
}

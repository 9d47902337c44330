package ports

import (
	"context"

	"github.com/gestordoc/docportal/internal/core/domain"
)

// DocumentRepository is the document store. Records are append-only.
type DocumentRepository interface {
	// Append adds a new record. ClientID is not validated against the
	// credential store; orphaned records are tolerated.
	Append(ctx context.Context, doc *domain.DocumentRecord) error
	// FindByID returns the record with the given id, or domain.ErrDocumentNotFound.
	FindByID(ctx context.Context, id string) (*domain.DocumentRecord, error)
	// ListByOwners returns all records whose ClientID is in ownerIDs, in
	// store order (newest first).
	ListByOwners(ctx context.Context, ownerIDs []string) ([]*domain.DocumentRecord, error)
	// ListAll returns every record, orphans included, in store order.
	ListAll(ctx context.Context) ([]*domain.DocumentRecord, error)
}

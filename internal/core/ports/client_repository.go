package ports

import (
	"context"

	"github.com/gestordoc/docportal/internal/core/domain"
)

// ClientUpdate carries a partial client edit. Nil fields are left untouched.
type ClientUpdate struct {
	Name         *string
	ContractType *domain.ContractType
}

// ClientRepository is the credential store: it owns client records and
// their permission grants.
type ClientRepository interface {
	// FindByID returns the client with the given id, or domain.ErrClientNotFound.
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	// FindByName matches on name with case-insensitive exact equality.
	FindByName(ctx context.Context, name string) (*domain.Client, error)
	// List returns all clients in creation order.
	List(ctx context.Context) ([]*domain.Client, error)
	// Create appends the given client record. Name-based idempotency is the
	// service's concern, not the repository's.
	Create(ctx context.Context, client *domain.Client) error
	// Update applies a partial edit. Unknown ids are a silent no-op.
	Update(ctx context.Context, id string, upd ClientUpdate) error
	// Delete removes the record. It does not cascade to documents or to
	// other clients' grant lists. Unknown ids are a silent no-op.
	Delete(ctx context.Context, id string) error
	// SetPermissions replaces the client's grant list wholesale. The caller
	// must have stripped self-references already.
	SetPermissions(ctx context.Context, id string, viewableIDs []string) error
	// RecordLogin stamps the client's last-login time.
	RecordLogin(ctx context.Context, id string) error
}

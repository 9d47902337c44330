package ports

import (
	"context"

	"github.com/gestordoc/docportal/internal/core/domain"
)

// EditClientInput carries a partial client edit from the transport layer.
type EditClientInput struct {
	Name         string
	ContractType string
}

// ClientService covers administrative client management and permission
// resolution.
type ClientService interface {
	// CreateClient creates a client by name, or returns the existing one on
	// a case-insensitive exact name match (idempotent create).
	CreateClient(ctx context.Context, name string) (*domain.Client, error)
	ListClients(ctx context.Context) ([]*domain.Client, error)
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	// EditClient applies a partial update. Unknown ids are a silent no-op.
	EditClient(ctx context.Context, id string, input EditClientInput) error
	// DeleteClient removes the client. Documents and other clients' grant
	// lists are left untouched.
	DeleteClient(ctx context.Context, id string) error
	// SetPermissions replaces the client's grant list. Self-references and
	// duplicates are stripped before storage.
	SetPermissions(ctx context.Context, id string, viewableIDs []string) error
	// VisibleOwnerIDs resolves the set of document-owner ids the given
	// session may read. Admin sees every client id, evaluated at call time;
	// a client sees itself plus its grants, with no transitive expansion.
	VisibleOwnerIDs(ctx context.Context, role, clientID string) ([]string, error)
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gestordoc/docportal/internal/core/domain"
	"github.com/gestordoc/docportal/internal/core/ports"
)

// ClientService implements client management and permission resolution.
type ClientService struct {
	repo ports.ClientRepository
	log  zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, log zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, log: log}
}

// CreateClient creates a client with a fresh id, a generated password and
// an empty grant list. If a client with the same name already exists
// (case-insensitive exact match) it is returned unchanged.
func (s *ClientService) CreateClient(ctx context.Context, name string) (*domain.Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("client name is empty")
	}

	existing, err := s.repo.FindByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrClientNotFound) {
		return nil, err
	}

	client := &domain.Client{
		ID:                uuid.NewString(),
		Name:              name,
		Password:          generatePassword(),
		ViewableClientIDs: []string{},
		ContractType:      domain.ContractNone,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}

	s.log.Info().Str("client_id", client.ID).Str("name", client.Name).Msg("client created")
	return client, nil
}

func (s *ClientService) ListClients(ctx context.Context) ([]*domain.Client, error) {
	return s.repo.List(ctx)
}

func (s *ClientService) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	return s.repo.FindByID(ctx, id)
}

// EditClient applies a partial name/contract edit. Unknown ids no-op.
func (s *ClientService) EditClient(ctx context.Context, id string, input ports.EditClientInput) error {
	var upd ports.ClientUpdate
	if name := strings.TrimSpace(input.Name); name != "" {
		upd.Name = &name
	}
	if input.ContractType != "" {
		ct := domain.ContractType(input.ContractType)
		if !ct.Valid() {
			return errors.New("unknown contract type: " + input.ContractType)
		}
		upd.ContractType = &ct
	}
	return s.repo.Update(ctx, id, upd)
}

// DeleteClient removes the record. Documents owned by the id become
// orphans; dangling grant references in other clients are tolerated.
func (s *ClientService) DeleteClient(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("client_id", id).Msg("client deleted")
	return nil
}

// SetPermissions replaces the grant list wholesale. The client's own id
// and duplicate entries are stripped; self-visibility is implicit and must
// not be stored.
func (s *ClientService) SetPermissions(ctx context.Context, id string, viewableIDs []string) error {
	seen := make(map[string]struct{}, len(viewableIDs))
	cleaned := make([]string, 0, len(viewableIDs))
	for _, vid := range viewableIDs {
		if vid == "" || vid == id {
			continue
		}
		if _, dup := seen[vid]; dup {
			continue
		}
		seen[vid] = struct{}{}
		cleaned = append(cleaned, vid)
	}
	return s.repo.SetPermissions(ctx, id, cleaned)
}

// VisibleOwnerIDs computes the set of document-owner ids a session may
// read. Admin resolves to all client ids at call time. A client resolves
// to itself plus its grants; grants are not expanded transitively.
func (s *ClientService) VisibleOwnerIDs(ctx context.Context, role, clientID string) ([]string, error) {
	if role == domain.RoleAdmin {
		clients, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(clients))
		for _, c := range clients {
			ids = append(ids, c.ID)
		}
		return ids, nil
	}

	client, err := s.repo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return append([]string{client.ID}, client.ViewableClientIDs...), nil
}

// Package memory provides the default process-lifetime store adapters.
// State lives for exactly as long as the process; the Mongo adapters in
// the sibling package implement the same ports for deployments that want
// durability.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gestordoc/docportal/internal/core/domain"
	"github.com/gestordoc/docportal/internal/core/ports"
)

// ClientRepository is an in-memory credential store. All operations are
// serialized behind a single mutex; no operation partially applies.
type ClientRepository struct {
	mu      sync.RWMutex
	clients []*domain.Client
}

func NewClientRepository() *ClientRepository {
	return &ClientRepository{}
}

func (r *ClientRepository) FindByID(_ context.Context, id string) (*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.clients {
		if c.ID == id {
			return cloneClient(c), nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *ClientRepository) FindByName(_ context.Context, name string) (*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.clients {
		if strings.EqualFold(c.Name, name) {
			return cloneClient(c), nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *ClientRepository) List(_ context.Context) ([]*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Client, len(r.clients))
	for i, c := range r.clients {
		out[i] = cloneClient(c)
	}
	return out, nil
}

func (r *ClientRepository) Create(_ context.Context, client *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients = append(r.clients, cloneClient(client))
	return nil
}

func (r *ClientRepository) Update(_ context.Context, id string, upd ports.ClientUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if c.ID != id {
			continue
		}
		if upd.Name != nil {
			c.Name = *upd.Name
		}
		if upd.ContractType != nil {
			c.ContractType = *upd.ContractType
		}
		return nil
	}
	// Unknown id is a silent no-op; callers operate on ids from a prior listing.
	return nil
}

func (r *ClientRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.clients {
		if c.ID == id {
			r.clients = append(r.clients[:i], r.clients[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *ClientRepository) SetPermissions(_ context.Context, id string, viewableIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if c.ID == id {
			c.ViewableClientIDs = append([]string(nil), viewableIDs...)
			return nil
		}
	}
	return nil
}

func (r *ClientRepository) RecordLogin(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if c.ID == id {
			now := time.Now().UTC()
			c.LastLogin = &now
			return nil
		}
	}
	return nil
}

func cloneClient(c *domain.Client) *domain.Client {
	clone := *c
	clone.ViewableClientIDs = append([]string(nil), c.ViewableClientIDs...)
	if c.LastLogin != nil {
		t := *c.LastLogin
		clone.LastLogin = &t
	}
	return &clone
}

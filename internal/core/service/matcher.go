package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gestordoc/docportal/internal/core/domain"
	"github.com/gestordoc/docportal/internal/core/ports"
)

// Matcher resolves an analyzer-extracted client name to a client record,
// creating one when nothing matches.
type Matcher struct {
	clients ports.ClientRepository
	creator ports.ClientService
	log     zerolog.Logger
}

func NewMatcher(clients ports.ClientRepository, creator ports.ClientService, log zerolog.Logger) *Matcher {
	return &Matcher{clients: clients, creator: creator, log: log}
}

// Resolve finds the owning client for an extracted name. Empty and
// sentinel names resolve to nothing. A candidate matches when either name
// case-insensitively contains the other; when several candidates satisfy
// that test, the first in store order wins. This tie-break is deliberate
// and can misattribute between similarly named clients; changing it is a
// product decision, not a cleanup.
//
// The boolean reports whether the client was created by this call.
func (m *Matcher) Resolve(ctx context.Context, extractedName string) (*domain.Client, bool, error) {
	if !domain.Matchable(extractedName) {
		return nil, false, nil
	}

	candidates, err := m.clients.List(ctx)
	if err != nil {
		return nil, false, err
	}

	needle := strings.ToLower(extractedName)
	for _, c := range candidates {
		have := strings.ToLower(c.Name)
		if strings.Contains(have, needle) || strings.Contains(needle, have) {
			return c, false, nil
		}
	}

	created, err := m.creator.CreateClient(ctx, extractedName)
	if err != nil {
		return nil, false, err
	}
	m.log.Info().Str("client_id", created.ID).Str("name", created.Name).Msg("client auto-created from document")
	return created, true, nil
}

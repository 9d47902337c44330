package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gestordoc/docportal/internal/core/domain"
	"github.com/gestordoc/docportal/internal/core/ports"
)

// stubClientRepo is an ordered in-memory ports.ClientRepository for tests.
type stubClientRepo struct {
	clients []*domain.Client
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{}
}

func (r *stubClientRepo) FindByID(_ context.Context, id string) (*domain.Client, error) {
	for _, c := range r.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *stubClientRepo) FindByName(_ context.Context, name string) (*domain.Client, error) {
	for _, c := range r.clients {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *stubClientRepo) List(_ context.Context) ([]*domain.Client, error) {
	return append([]*domain.Client(nil), r.clients...), nil
}

func (r *stubClientRepo) Create(_ context.Context, client *domain.Client) error {
	r.clients = append(r.clients, client)
	return nil
}

func (r *stubClientRepo) Update(_ context.Context, id string, upd ports.ClientUpdate) error {
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
	}
	return nil
}

func (r *stubClientRepo) Delete(_ context.Context, id string) error {
	for i, c := range r.clients {
		if c.ID == id {
			r.clients = append(r.clients[:i], r.clients[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubClientRepo) SetPermissions(_ context.Context, id string, viewableIDs []string) error {
	for _, c := range r.clients {
		if c.ID == id {
			c.ViewableClientIDs = viewableIDs
		}
	}
	return nil
}

func (r *stubClientRepo) RecordLogin(_ context.Context, id string) error {
	for _, c := range r.clients {
		if c.ID == id {
			now := time.Now().UTC()
			c.LastLogin = &now
		}
	}
	return nil
}

// stubDocRepo is a prepend-order ports.DocumentRepository for tests.
type stubDocRepo struct {
	docs []*domain.DocumentRecord
}

func (r *stubDocRepo) Append(_ context.Context, doc *domain.DocumentRecord) error {
	r.docs = append([]*domain.DocumentRecord{doc}, r.docs...)
	return nil
}

func (r *stubDocRepo) FindByID(_ context.Context, id string) (*domain.DocumentRecord, error) {
	for _, d := range r.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, domain.ErrDocumentNotFound
}

func (r *stubDocRepo) ListByOwners(_ context.Context, ownerIDs []string) ([]*domain.DocumentRecord, error) {
	owners := make(map[string]struct{}, len(ownerIDs))
	for _, id := range ownerIDs {
		owners[id] = struct{}{}
	}
	var out []*domain.DocumentRecord
	for _, d := range r.docs {
		if _, ok := owners[d.ClientID]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *stubDocRepo) ListAll(_ context.Context) ([]*domain.DocumentRecord, error) {
	return append([]*domain.DocumentRecord(nil), r.docs...), nil
}

// stubAnalyzer returns queued results in order, then errors.
type stubAnalyzer struct {
	results []domain.AnalysisResult
	errs    []error
	calls   int
}

func (a *stubAnalyzer) Analyze(_ context.Context, _ []byte, _ string) (domain.AnalysisResult, error) {
	if a.calls >= len(a.results) {
		return domain.ReadErrorResult(), errors.New("no more queued results")
	}
	i := a.calls
	a.calls++
	var err error
	if i < len(a.errs) {
		err = a.errs[i]
	}
	return a.results[i], err
}

// stubDedup marks digests in memory.
type stubDedup struct {
	seen map[string]bool
	fail bool
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func (d *stubDedup) IsDuplicate(_ context.Context, digest string) (bool, error) {
	if d.fail {
		return false, errors.New("dedup unavailable")
	}
	return d.seen[digest], nil
}

func (d *stubDedup) Mark(_ context.Context, digest string) error {
	if d.fail {
		return errors.New("dedup unavailable")
	}
	d.seen[digest] = true
	return nil
}

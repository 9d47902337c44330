package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gestordoc/docportal/internal/core/domain"
	"github.com/gestordoc/docportal/internal/core/ports"
)

func isHTTPStatus(err error, code int) bool {
	he, ok := err.(*echo.HTTPError)
	return ok && he.Code == code
}

func newTestContext(method, target string, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// stubAuthService returns a canned session or error.
type stubAuthService struct {
	session *ports.Session
	err     error
}

func (s *stubAuthService) Login(context.Context, string, string) (*ports.Session, error) {
	return s.session, s.err
}

// stubClientService serves clients from a fixed map, keyed by id.
type stubClientService struct {
	clients map[string]*domain.Client
	order   []string

	created     []string
	edits       map[string]ports.EditClientInput
	deleted     []string
	permissions map[string][]string
}

func newStubClientService() *stubClientService {
	return &stubClientService{
		clients:     make(map[string]*domain.Client),
		edits:       make(map[string]ports.EditClientInput),
		permissions: make(map[string][]string),
	}
}

func (s *stubClientService) add(c *domain.Client) {
	s.clients[c.ID] = c
	s.order = append(s.order, c.ID)
}

func (s *stubClientService) CreateClient(_ context.Context, name string) (*domain.Client, error) {
	s.created = append(s.created, name)
	c := &domain.Client{ID: "new-" + name, Name: name, Password: "generated!1", ContractType: domain.ContractNone, ViewableClientIDs: []string{}}
	s.add(c)
	return c, nil
}

func (s *stubClientService) ListClients(context.Context) ([]*domain.Client, error) {
	out := make([]*domain.Client, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.clients[id])
	}
	return out, nil
}

func (s *stubClientService) GetClient(_ context.Context, id string) (*domain.Client, error) {
	if c, ok := s.clients[id]; ok {
		return c, nil
	}
	return nil, domain.ErrClientNotFound
}

func (s *stubClientService) EditClient(_ context.Context, id string, input ports.EditClientInput) error {
	s.edits[id] = input
	return nil
}

func (s *stubClientService) DeleteClient(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubClientService) SetPermissions(_ context.Context, id string, viewableIDs []string) error {
	s.permissions[id] = viewableIDs
	return nil
}

func (s *stubClientService) VisibleOwnerIDs(_ context.Context, role, clientID string) ([]string, error) {
	if role == domain.RoleAdmin {
		return append([]string(nil), s.order...), nil
	}
	c, ok := s.clients[clientID]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	return append([]string{c.ID}, c.ViewableClientIDs...), nil
}

// stubDocumentService returns canned documents and batch results.
type stubDocumentService struct {
	batchResults []ports.UploadFileResult
	batchInputs  []ports.UploadFileInput
	docs         []*domain.DocumentRecord
	stats        *ports.Statistics
	getErr       error
}

func (s *stubDocumentService) ProcessBatch(_ context.Context, files []ports.UploadFileInput) []ports.UploadFileResult {
	s.batchInputs = files
	return s.batchResults
}

func (s *stubDocumentService) ListDocuments(context.Context, string, string) ([]*domain.DocumentRecord, error) {
	return s.docs, nil
}

func (s *stubDocumentService) GetDocument(_ context.Context, _, _, documentID string) (*domain.DocumentRecord, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	for _, d := range s.docs {
		if d.ID == documentID {
			return d, nil
		}
	}
	return nil, domain.ErrDocumentNotFound
}

func (s *stubDocumentService) Statistics(context.Context, string, string) (*ports.Statistics, error) {
	return s.stats, nil
}

package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/gestordoc/docportal/internal/core/domain"
	"github.com/gestordoc/docportal/internal/core/ports"
)

func newUploadContext(t *testing.T, files map[string][]byte) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, payload := range files {
		fw, err := mw.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(payload); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/v1/documents", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestDocumentHandler_Upload(t *testing.T) {
	docs := &stubDocumentService{batchResults: []ports.UploadFileResult{
		{FileName: "a.pdf", Status: ports.UploadAssigned, ClientName: "Acme", CreatedClient: true},
		{FileName: "b.pdf", Status: ports.UploadUnmatched},
	}}
	h := NewDocumentHandler(docs, newStubClientService())

	c, rec := newUploadContext(t, map[string][]byte{"a.pdf": []byte("aaa"), "b.pdf": []byte("bbb")})
	if err := h.Upload(c); err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(docs.batchInputs) != 2 {
		t.Fatalf("expected two files forwarded, got %d", len(docs.batchInputs))
	}

	var resp uploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Results) != 2 || resp.Assigned != 1 {
		t.Fatalf("unexpected batch summary: %+v", resp)
	}
	if resp.Results[0].Status != ports.UploadAssigned || !resp.Results[0].CreatedClient {
		t.Fatalf("per-file result not mapped: %+v", resp.Results[0])
	}
}

func TestDocumentHandler_Upload_NoFiles(t *testing.T) {
	h := NewDocumentHandler(&stubDocumentService{}, newStubClientService())

	c, _ := newUploadContext(t, nil)
	if err := h.Upload(c); !isHTTPStatus(err, http.StatusBadRequest) {
		t.Fatalf("expected 400 for an empty batch, got %v", err)
	}
}

func TestDocumentHandler_List_ResolvesOwnerNames(t *testing.T) {
	clients := newStubClientService()
	clients.add(&domain.Client{ID: "c1", Name: "Acme"})
	docs := &stubDocumentService{docs: []*domain.DocumentRecord{
		{ID: "d1", ClientID: "c1", FileName: "a.pdf"},
		{ID: "d2", ClientID: "gone", FileName: "b.pdf"},
	}}
	h := NewDocumentHandler(docs, clients)

	c, rec := newTestContext(http.MethodGet, "/v1/documents", "")
	c.Set("role", domain.RoleAdmin)
	if err := h.List(c); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	var resp []documentSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(resp))
	}
	if resp[0].ClientName != "Acme" {
		t.Fatalf("owner name not resolved: %+v", resp[0])
	}
	if resp[1].ClientName != "unknown" {
		t.Fatalf("orphan must render as unknown, got %q", resp[1].ClientName)
	}
}

func TestDocumentHandler_Get_IncludesPayload(t *testing.T) {
	clients := newStubClientService()
	clients.add(&domain.Client{ID: "c1", Name: "Acme"})
	docs := &stubDocumentService{docs: []*domain.DocumentRecord{
		{ID: "d1", ClientID: "c1", FileName: "a.pdf", FileData: "YmFzZTY0"},
	}}
	h := NewDocumentHandler(docs, clients)

	c, rec := newTestContext(http.MethodGet, "/v1/documents/d1", "")
	c.Set("role", domain.RoleClient)
	c.Set("client_id", "c1")
	c.SetParamNames("id")
	c.SetParamValues("d1")
	if err := h.Get(c); err != nil {
		t.Fatalf("get failed: %v", err)
	}

	var resp documentDetailResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "d1" || resp.FileData != "YmFzZTY0" {
		t.Fatalf("detail response wrong: %+v", resp)
	}
}

func TestDocumentHandler_Get_ForbiddenPropagates(t *testing.T) {
	docs := &stubDocumentService{getErr: domain.ErrForbidden}
	h := NewDocumentHandler(docs, newStubClientService())

	c, _ := newTestContext(http.MethodGet, "/v1/documents/d1", "")
	c.Set("role", domain.RoleClient)
	c.Set("client_id", "c1")
	c.SetParamNames("id")
	c.SetParamValues("d1")
	if err := h.Get(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden to propagate, got %v", err)
	}
}

func TestDocumentHandler_Stats(t *testing.T) {
	docs := &stubDocumentService{stats: &ports.Statistics{
		TotalHours:    7.5,
		ResolvedCount: 2,
		DocumentCount: 3,
		Materials:     map[string]float64{"cable": 4},
	}}
	h := NewDocumentHandler(docs, newStubClientService())

	c, rec := newTestContext(http.MethodGet, "/v1/stats", "")
	c.Set("role", domain.RoleAdmin)
	if err := h.Stats(c); err != nil {
		t.Fatalf("stats failed: %v", err)
	}

	var resp statsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalHours != 7.5 || resp.ResolvedCount != 2 || resp.Materials["cable"] != 4 {
		t.Fatalf("unexpected stats: %+v", resp)
	}
}

func TestDocumentHandler_List_MissingClaims(t *testing.T) {
	h := NewDocumentHandler(&stubDocumentService{}, newStubClientService())

	c, _ := newTestContext(http.MethodGet, "/v1/documents", "")
	if err := h.List(c); !isHTTPStatus(err, http.StatusUnauthorized) {
		t.Fatalf("expected 401 without claims, got %v", err)
	}
}

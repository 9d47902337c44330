package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gestordoc/docportal/internal/api/metrics"
	"github.com/gestordoc/docportal/internal/core/domain"
	"github.com/gestordoc/docportal/internal/core/ports"
)

// maxUploadBytes caps a single file at 20 MiB, comfortably above any
// scanned work-order.
const maxUploadBytes = 20 << 20

// DocumentHandler handles document upload, listing and statistics.
type DocumentHandler struct {
	documents ports.DocumentService
	clients   ports.ClientService
}

func NewDocumentHandler(documents ports.DocumentService, clients ports.ClientService) *DocumentHandler {
	return &DocumentHandler{documents: documents, clients: clients}
}

// Upload handles POST /v1/documents — a multipart batch under the "files"
// field. Files are processed sequentially in upload order; one result per
// file is returned and a failing file never aborts the batch. Admin only.
func (h *DocumentHandler) Upload(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid multipart payload")
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no files provided")
	}

	inputs := make([]ports.UploadFileInput, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		if fh.Size > maxUploadBytes {
			return echo.NewHTTPError(http.StatusRequestEntityTooLarge, fh.Filename+" exceeds the size limit")
		}
		src, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "cannot read "+fh.Filename)
		}
		payload, err := io.ReadAll(io.LimitReader(src, maxUploadBytes))
		src.Close()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "cannot read "+fh.Filename)
		}
		inputs = append(inputs, ports.UploadFileInput{
			FileName: fh.Filename,
			MimeType: fh.Header.Get("Content-Type"),
			Payload:  payload,
		})
	}

	start := time.Now()
	results := h.documents.ProcessBatch(c.Request().Context(), inputs)
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds() / float64(len(inputs)))

	resp := uploadResponse{Results: make([]uploadFileResultResponse, 0, len(results))}
	for _, r := range results {
		metrics.DocumentsProcessedTotal.WithLabelValues(r.Status).Inc()
		if r.Status == ports.UploadAssigned {
			resp.Assigned++
		}
		if r.CreatedClient {
			metrics.ClientsCreatedTotal.WithLabelValues("matcher").Inc()
		}
		resp.Results = append(resp.Results, uploadFileResultResponse{
			FileName:      r.FileName,
			Status:        r.Status,
			Message:       r.Message,
			DocumentID:    r.DocumentID,
			ClientID:      r.ClientID,
			ClientName:    r.ClientName,
			CreatedClient: r.CreatedClient,
		})
	}

	return c.JSON(http.StatusOK, resp)
}

// List handles GET /v1/documents. Admin sees every record, orphans
// included; clients see their visible owner set only.
func (h *DocumentHandler) List(c echo.Context) error {
	role, clientID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	docs, err := h.documents.ListDocuments(c.Request().Context(), role, clientID)
	if err != nil {
		return err
	}

	names, err := h.ownerNames(c, docs)
	if err != nil {
		return err
	}

	out := make([]documentSummaryResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentSummary(d, names))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/documents/:id, payload included, permission-checked.
func (h *DocumentHandler) Get(c echo.Context) error {
	role, clientID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	doc, err := h.documents.GetDocument(c.Request().Context(), role, clientID, c.Param("id"))
	if err != nil {
		return err
	}

	names, err := h.ownerNames(c, []*domain.DocumentRecord{doc})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, documentDetailResponse{
		documentSummaryResponse: toDocumentSummary(doc, names),
		FileData:                doc.FileData,
	})
}

// Stats handles GET /v1/stats over the session's visible document set.
func (h *DocumentHandler) Stats(c echo.Context) error {
	role, clientID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	stats, err := h.documents.Statistics(c.Request().Context(), role, clientID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, statsResponse{
		TotalHours:    stats.TotalHours,
		ResolvedCount: stats.ResolvedCount,
		DocumentCount: stats.DocumentCount,
		Materials:     stats.Materials,
	})
}

// ownerNames resolves the distinct owner ids of docs to display names.
// Owners that no longer exist are simply absent; the mapper renders them
// as "unknown".
func (h *DocumentHandler) ownerNames(c echo.Context, docs []*domain.DocumentRecord) (map[string]string, error) {
	names := make(map[string]string)
	ctx := c.Request().Context()
	for _, d := range docs {
		if _, seen := names[d.ClientID]; seen {
			continue
		}
		owner, err := h.clients.GetClient(ctx, d.ClientID)
		if err != nil {
			if errors.Is(err, domain.ErrClientNotFound) {
				continue
			}
			return nil, err
		}
		names[d.ClientID] = owner.Name
	}
	return names, nil
}

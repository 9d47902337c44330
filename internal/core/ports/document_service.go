package ports

import (
	"context"

	"github.com/gestordoc/docportal/internal/core/domain"
)

// Upload outcome codes, one per processed file.
const (
	UploadAssigned       = "assigned"
	UploadUnmatched      = "unmatched"
	UploadAnalysisFailed = "analysis_failed"
	UploadDuplicate      = "duplicate"
	UploadStoreFailed    = "store_failed"
)

// UploadFileInput is one file of an upload batch.
type UploadFileInput struct {
	FileName string
	MimeType string
	Payload  []byte
}

// UploadFileResult reports what happened to a single file. Exactly one
// result is produced per input file, in input order.
type UploadFileResult struct {
	FileName      string
	Status        string
	Message       string
	DocumentID    string // set when Status == UploadAssigned
	ClientID      string // set when Status == UploadAssigned
	ClientName    string // set when Status == UploadAssigned
	CreatedClient bool   // true when the owning client was created by this file
}

// Statistics is the aggregate over a visible document set.
type Statistics struct {
	TotalHours    float64
	ResolvedCount int
	DocumentCount int
	Materials     map[string]float64
}

// DocumentService covers document ingestion and permission-filtered reads.
type DocumentService interface {
	// ProcessBatch analyzes and attributes each file in order. A failure on
	// one file never aborts the batch.
	ProcessBatch(ctx context.Context, files []UploadFileInput) []UploadFileResult
	// ListDocuments returns the documents visible to the session. Admin
	// sees every record, orphans included.
	ListDocuments(ctx context.Context, role, clientID string) ([]*domain.DocumentRecord, error)
	// GetDocument returns a single record if the session may read it.
	GetDocument(ctx context.Context, role, clientID, documentID string) (*domain.DocumentRecord, error)
	// Statistics aggregates hours, resolutions and material usage over the
	// session's visible document set.
	Statistics(ctx context.Context, role, clientID string) (*Statistics, error)
}

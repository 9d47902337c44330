package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gestordoc/docportal/internal/core/domain"
	"github.com/gestordoc/docportal/internal/core/ports"
)

// DedupChecker abstracts the payload idempotency store (Redis). A nil
// checker disables deduplication.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, digest string) (bool, error)
	Mark(ctx context.Context, digest string) error
}

const defaultMimeType = "application/pdf"

// DocumentService implements document ingestion, permission-filtered
// reads and statistics.
type DocumentService struct {
	docs     ports.DocumentRepository
	clients  ports.ClientService
	matcher  *Matcher
	analyzer ports.DocumentAnalyzer
	dedup    DedupChecker
	log      zerolog.Logger
}

func NewDocumentService(
	docs ports.DocumentRepository,
	clients ports.ClientService,
	matcher *Matcher,
	analyzer ports.DocumentAnalyzer,
	dedup DedupChecker,
	log zerolog.Logger,
) *DocumentService {
	return &DocumentService{
		docs:     docs,
		clients:  clients,
		matcher:  matcher,
		analyzer: analyzer,
		dedup:    dedup,
		log:      log,
	}
}

// ProcessBatch runs each file through analyze → match → append, in upload
// order, one at a time. Every failure is per-file: it is reported in the
// result slice and the batch moves on.
func (s *DocumentService) ProcessBatch(ctx context.Context, files []ports.UploadFileInput) []ports.UploadFileResult {
	results := make([]ports.UploadFileResult, 0, len(files))
	for _, f := range files {
		results = append(results, s.processFile(ctx, f))
	}
	return results
}

func (s *DocumentService) processFile(ctx context.Context, f ports.UploadFileInput) ports.UploadFileResult {
	res := ports.UploadFileResult{FileName: f.FileName}

	digest := payloadDigest(f.Payload)
	if s.dedup != nil {
		isDup, err := s.dedup.IsDuplicate(ctx, digest)
		if err != nil {
			s.log.Warn().Err(err).Str("file", f.FileName).Msg("dedup check failed, processing anyway")
		} else if isDup {
			res.Status = ports.UploadDuplicate
			res.Message = "identical payload already processed"
			return res
		}
	}

	analysis, err := s.analyzer.Analyze(ctx, f.Payload, f.MimeType)
	analysis.Normalize()
	if err != nil {
		s.log.Warn().Err(err).Str("file", f.FileName).Msg("analysis failed")
		res.Status = ports.UploadAnalysisFailed
		res.Message = "document could not be analyzed"
		return res
	}

	owner, created, err := s.matcher.Resolve(ctx, analysis.ClientName)
	if err != nil {
		s.log.Error().Err(err).Str("file", f.FileName).Msg("client resolution failed")
		res.Status = ports.UploadStoreFailed
		res.Message = "failed to resolve client"
		return res
	}
	if owner == nil {
		res.Status = ports.UploadUnmatched
		res.Message = fmt.Sprintf("no client could be identified for %s", f.FileName)
		return res
	}

	if s.dedup != nil {
		if err := s.dedup.Mark(ctx, digest); err != nil {
			s.log.Warn().Err(err).Str("file", f.FileName).Msg("failed to set dedup key")
		}
	}

	mimeType := f.MimeType
	if mimeType == "" {
		mimeType = defaultMimeType
	}
	data := analysis.Data
	doc := &domain.DocumentRecord{
		ID:         uuid.NewString(),
		ClientID:   owner.ID,
		FileName:   f.FileName,
		UploadDate: time.Now().UTC(),
		MimeType:   mimeType,
		FileData:   base64.StdEncoding.EncodeToString(f.Payload),
		Extracted:  &data,
	}
	if err := s.docs.Append(ctx, doc); err != nil {
		s.log.Error().Err(err).Str("file", f.FileName).Msg("failed to store document")
		res.Status = ports.UploadStoreFailed
		res.Message = "failed to store document"
		return res
	}

	s.log.Info().
		Str("document_id", doc.ID).
		Str("client_id", owner.ID).
		Str("file", f.FileName).
		Bool("created_client", created).
		Msg("document assigned")

	res.Status = ports.UploadAssigned
	res.DocumentID = doc.ID
	res.ClientID = owner.ID
	res.ClientName = owner.Name
	res.CreatedClient = created
	if created {
		res.Message = fmt.Sprintf("new client detected: %s", owner.Name)
	} else {
		res.Message = fmt.Sprintf("assigned to %s", owner.Name)
	}
	return res
}

// ListDocuments returns the session's visible documents. Admin bypasses
// owner filtering entirely so orphaned records stay listed.
func (s *DocumentService) ListDocuments(ctx context.Context, role, clientID string) ([]*domain.DocumentRecord, error) {
	if role == domain.RoleAdmin {
		return s.docs.ListAll(ctx)
	}
	owners, err := s.clients.VisibleOwnerIDs(ctx, role, clientID)
	if err != nil {
		return nil, err
	}
	return s.docs.ListByOwners(ctx, owners)
}

// GetDocument returns one record, enforcing the visible-owner set for
// client sessions.
func (s *DocumentService) GetDocument(ctx context.Context, role, clientID, documentID string) (*domain.DocumentRecord, error) {
	doc, err := s.docs.FindByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if role == domain.RoleAdmin {
		return doc, nil
	}
	owners, err := s.clients.VisibleOwnerIDs(ctx, role, clientID)
	if err != nil {
		return nil, err
	}
	for _, id := range owners {
		if id == doc.ClientID {
			return doc, nil
		}
	}
	return nil, domain.ErrForbidden
}

// Statistics aggregates over the session's visible document set.
func (s *DocumentService) Statistics(ctx context.Context, role, clientID string) (*ports.Statistics, error) {
	docs, err := s.ListDocuments(ctx, role, clientID)
	if err != nil {
		return nil, err
	}
	return Summarize(docs), nil
}

func payloadDigest(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

package ports

import (
	"context"

	"github.com/gestordoc/docportal/internal/core/domain"
)

// DocumentAnalyzer extracts structured fields from a raw document payload.
// Implementations must degrade transport or parse failures to
// domain.ReadErrorResult alongside the error, so callers can always
// continue with a well-formed result.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, payload []byte, mimeType string) (domain.AnalysisResult, error)
}

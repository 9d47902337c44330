package service

import (
	"github.com/gestordoc/docportal/internal/core/domain"
	"github.com/gestordoc/docportal/internal/core/ports"
)

// Summarize reduces a document set to total hours, resolved count and
// per-material unit totals. The reduction is a single commutative pass, so
// the output is independent of input order. Documents without extracted
// data contribute nothing.
func Summarize(docs []*domain.DocumentRecord) *ports.Statistics {
	stats := &ports.Statistics{
		DocumentCount: len(docs),
		Materials:     make(map[string]float64),
	}
	for _, doc := range docs {
		if doc.Extracted == nil {
			continue
		}
		stats.TotalHours += doc.Extracted.Hours
		if doc.Extracted.IsResolved {
			stats.ResolvedCount++
		}
		for _, mat := range doc.Extracted.Materials {
			stats.Materials[mat.Name] += mat.Units
		}
	}
	return stats
}

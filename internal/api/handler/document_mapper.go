package handler

import (
	"github.com/gestordoc/docportal/internal/core/domain"
)

const unknownOwner = "unknown"

func toDocumentSummary(d *domain.DocumentRecord, ownerNames map[string]string) documentSummaryResponse {
	name, ok := ownerNames[d.ClientID]
	if !ok {
		name = unknownOwner
	}
	return documentSummaryResponse{
		ID:         d.ID,
		ClientID:   d.ClientID,
		ClientName: name,
		FileName:   d.FileName,
		UploadDate: d.UploadDate,
		MimeType:   d.MimeType,
		Extracted:  toExtractedResponse(d.Extracted),
	}
}

func toExtractedResponse(data *domain.ExtractedData) *extractedDataResponse {
	if data == nil {
		return nil
	}
	materials := make([]materialResponse, len(data.Materials))
	for i, m := range data.Materials {
		materials[i] = materialResponse{Name: m.Name, Units: m.Units}
	}
	return &extractedDataResponse{
		Hours:      data.Hours,
		IsResolved: data.IsResolved,
		Materials:  materials,
	}
}

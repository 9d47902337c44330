package handler

import "time"

type materialResponse struct {
	Name  string  `json:"name"`
	Units float64 `json:"units"`
}

type extractedDataResponse struct {
	Hours      float64            `json:"hours"`
	IsResolved bool               `json:"is_resolved"`
	Materials  []materialResponse `json:"materials"`
}

// documentSummaryResponse is the list item: no payload, owner resolved to
// a display name ("unknown" for orphans in the admin view).
type documentSummaryResponse struct {
	ID         string                 `json:"id"`
	ClientID   string                 `json:"client_id"`
	ClientName string                 `json:"client_name"`
	FileName   string                 `json:"file_name"`
	UploadDate time.Time              `json:"upload_date"`
	MimeType   string                 `json:"mime_type"`
	Extracted  *extractedDataResponse `json:"extracted,omitempty"`
}

// documentDetailResponse additionally carries the base64 payload.
type documentDetailResponse struct {
	documentSummaryResponse
	FileData string `json:"file_data"`
}

type uploadFileResultResponse struct {
	FileName      string `json:"file_name"`
	Status        string `json:"status"`
	Message       string `json:"message,omitempty"`
	DocumentID    string `json:"document_id,omitempty"`
	ClientID      string `json:"client_id,omitempty"`
	ClientName    string `json:"client_name,omitempty"`
	CreatedClient bool   `json:"created_client,omitempty"`
}

type uploadResponse struct {
	Results  []uploadFileResultResponse `json:"results"`
	Assigned int                        `json:"assigned"`
}

type statsResponse struct {
	TotalHours    float64            `json:"total_hours"`
	ResolvedCount int                `json:"resolved_count"`
	DocumentCount int                `json:"document_count"`
	Materials     map[string]float64 `json:"materials"`
}

package domain

import "time"

// Material is a single line of material usage extracted from a document.
type Material struct {
	Name  string  `json:"name" bson:"name"`
	Units float64 `json:"units" bson:"units"`
}

// ExtractedData is the structured payload the analyzer pulls out of a
// work-order or delivery-note. It is absent on documents whose analysis
// failed.
type ExtractedData struct {
	Hours      float64    `json:"hours" bson:"hours"`
	IsResolved bool       `json:"is_resolved" bson:"is_resolved"`
	Materials  []Material `json:"materials" bson:"materials"`
}

// DocumentRecord is an uploaded document after it has been attributed to a
// client. Records are immutable once created and are never deleted; a
// record whose ClientID no longer resolves to a client is orphaned, not
// invalid.
type DocumentRecord struct {
	ID         string         `json:"id" bson:"_id"`
	ClientID   string         `json:"client_id" bson:"client_id"`
	FileName   string         `json:"file_name" bson:"file_name"`
	UploadDate time.Time      `json:"upload_date" bson:"upload_date"`
	MimeType   string         `json:"mime_type" bson:"mime_type"`
	FileData   string         `json:"file_data,omitempty" bson:"file_data"` // base64 payload
	Extracted  *ExtractedData `json:"extracted,omitempty" bson:"extracted,omitempty"`
}

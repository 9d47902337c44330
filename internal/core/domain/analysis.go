package domain

// Sentinel client names the analyzer returns when it cannot attribute a
// document. They must never be used to match or create a client.
const (
	SentinelUnknown   = "Desconocido"
	SentinelReadError = "Error de lectura"
)

// AnalysisResult is the analyzer's verdict on a single document.
type AnalysisResult struct {
	ClientName string        `json:"clientName"`
	Confidence float64       `json:"confidence"`
	Data       ExtractedData `json:"data"`
}

// ReadErrorResult is the fixed result substituted when analysis fails.
// Callers treat it as "no client identified, nothing extracted".
func ReadErrorResult() AnalysisResult {
	return AnalysisResult{
		ClientName: SentinelReadError,
		Confidence: 0,
		Data:       ExtractedData{Materials: []Material{}},
	}
}

// Matchable reports whether name can participate in client matching.
// Empty and sentinel names cannot.
func Matchable(name string) bool {
	return name != "" && name != SentinelUnknown && name != SentinelReadError
}

// Normalize applies the defaulting rules to an analyzer response of
// arbitrary shape: negative numbers are clamped to zero and a nil material
// list becomes empty.
func (r *AnalysisResult) Normalize() {
	if r.Confidence < 0 {
		r.Confidence = 0
	}
	if r.Data.Hours < 0 {
		r.Data.Hours = 0
	}
	if r.Data.Materials == nil {
		r.Data.Materials = []Material{}
	}
	for i := range r.Data.Materials {
		if r.Data.Materials[i].Units < 0 {
			r.Data.Materials[i].Units = 0
		}
	}
}

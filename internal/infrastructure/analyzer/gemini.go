// Package analyzer implements the external document-understanding
// collaborator on top of the Gemini generateContent REST API. Any
// transport or parse failure degrades to the fixed read-error result so
// upload batches never abort on a single bad document.
package analyzer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/gestordoc/docportal/internal/core/domain"
)

const (
	defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel    = "gemini-2.5-flash"
)

// The prompt is kept in the operators' working language; the extraction
// targets are Spanish work-orders and delivery-notes.
const extractionPrompt = `Analiza este documento (parte de trabajo o albarán).
Tu tarea es extraer la siguiente información estructurada:

1. **Nombre del Cliente**: Busca campos como "Cliente", "Empresa", o el nombre en la cabecera. Si no estás seguro, pon "Desconocido".
2. **Horas Totales**: Busca campos de "Horas", "Tiempo empleado", "Mano de obra". Suma el total si hay varias líneas. Si no hay horas, pon 0.
3. **Incidencia Resuelta**: Determina si el trabajo ha finalizado o la incidencia está resuelta (busca checkmarks, textos como "Finalizado", "Resuelto", "Terminado"). Devuelve true o false.
4. **Materiales**: Extrae una lista de productos o materiales usados (Sección "Materiales", "Repuestos", "Productos"). Extrae el nombre y la cantidad (unidades).

Responde estrictamente en formato JSON.`

// Config holds the Gemini connection settings.
type Config struct {
	APIKey   string
	Model    string
	Endpoint string // overridable for tests
}

// Gemini calls the generateContent endpoint with the document payload
// inlined and a response schema forcing the extraction shape.
type Gemini struct {
	cfg    Config
	client *http.Client
	log    zerolog.Logger
}

func NewGemini(cfg Config, client *http.Client, log zerolog.Logger) *Gemini {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Gemini{cfg: cfg, client: client, log: log}
}

// --- Wire types ---

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	InlineData *inlineData `json:"inline_data,omitempty"`
	Text       string      `json:"text,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType"`
	ResponseSchema   json.RawMessage `json:"responseSchema"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// responseSchema forces Gemini to answer in the AnalysisResult shape.
var responseSchema = json.RawMessage(`{
  "type": "OBJECT",
  "properties": {
    "clientName": {"type": "STRING", "description": "El nombre extraído del cliente o empresa."},
    "confidence": {"type": "NUMBER", "description": "Nivel de confianza de 0 a 1."},
    "data": {
      "type": "OBJECT",
      "properties": {
        "hours": {"type": "NUMBER", "description": "Total de horas de mano de obra."},
        "isResolved": {"type": "BOOLEAN", "description": "¿El trabajo está marcado como resuelto/finalizado?"},
        "materials": {
          "type": "ARRAY",
          "items": {
            "type": "OBJECT",
            "properties": {
              "name": {"type": "STRING"},
              "units": {"type": "NUMBER"}
            }
          }
        }
      },
      "required": ["hours", "isResolved", "materials"]
    }
  },
  "required": ["clientName", "confidence", "data"]
}`)

// Analyze sends the payload for extraction. On any failure it returns
// domain.ReadErrorResult together with the error; the result is always
// usable.
func (g *Gemini) Analyze(ctx context.Context, payload []byte, mimeType string) (domain.AnalysisResult, error) {
	if mimeType == "" {
		mimeType = "application/pdf"
	}

	result, err := g.generate(ctx, payload, mimeType)
	if err != nil {
		g.log.Error().Err(err).Msg("gemini analysis failed")
		return domain.ReadErrorResult(), err
	}
	return result, nil
}

func (g *Gemini) generate(ctx context.Context, payload []byte, mimeType string) (domain.AnalysisResult, error) {
	var zero domain.AnalysisResult

	reqBody := generateRequest{
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{InlineData: &inlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(payload)}},
				{Text: extractionPrompt},
			},
		}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   responseSchema,
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return zero, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.cfg.Endpoint, g.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return zero, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.cfg.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return zero, fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return zero, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return zero, fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, truncate(raw, 200))
	}

	var gr generateResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		return zero, fmt.Errorf("decode response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return zero, fmt.Errorf("empty response from gemini")
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal([]byte(gr.Candidates[0].Content.Parts[0].Text), &result); err != nil {
		return zero, fmt.Errorf("decode analysis payload: %w", err)
	}
	result.Normalize()
	return result, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

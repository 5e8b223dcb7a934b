// internal/workers/ai-conversation/classify-intent/models.go
package classifyintent

import "intent-workers/internal/intent"

type Input struct {
	Pregunta string `json:"pregunta"`
}

type Output struct {
	RequestID    string         `json:"requestId"`
	Intencion    *intent.Record `json:"intencionDetectada"`
	Cached       bool           `json:"cached"`
	Advertencias []string       `json:"advertencias,omitempty"`
}

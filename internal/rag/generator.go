// internal/rag/generator.go
package rag

import (
	"context"
	"strings"

	"intent-workers/internal/common/errors"
	"intent-workers/internal/common/logger"
)

// Completer is the text-completion service the generator depends on.
// Satisfied by *genai.Client.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Generator produces a natural-language answer from a user query plus the
// context derived from the canonical intent and any retrieved data.
type Generator struct {
	completer Completer
	logger    logger.Logger
}

func NewGenerator(completer Completer, log logger.Logger) *Generator {
	return &Generator{
		completer: completer,
		logger:    log.WithFields(map[string]interface{}{"component": "rag"}),
	}
}

// Answer builds the RAG prompt from the query, the intent-derived context
// (intencion + resumen) and the retrieved data, then delegates to the
// completion service. Errors surface only from that service.
func (g *Generator) Answer(ctx context.Context, query, intencion, resumen, datos string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", errors.NewEmptyQuestionError()
	}

	prompt := BuildPrompt(query, joinContext(intencion, resumen), datos)
	answer, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	g.logger.Info("answer generated", map[string]interface{}{
		"queryLen":  len(query),
		"answerLen": len(answer),
	})
	return answer, nil
}

func joinContext(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}

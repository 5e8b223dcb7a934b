// internal/intent/classifier.go
package intent

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"intent-workers/internal/common/errors"
	"intent-workers/internal/common/logger"
	"intent-workers/internal/common/metrics"
)

// Completer is the text-completion service the classifier depends on.
// Satisfied by *genai.Client.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Classifier turns a free-form question into a canonical intent record. It
// owns the strict, clarity-gated post-process; the ungated staging variant
// lives in Stage.
type Classifier struct {
	completer Completer
	logger    logger.Logger
	now       func() time.Time
}

func NewClassifier(completer Completer, log logger.Logger) *Classifier {
	return &Classifier{
		completer: completer,
		logger:    log.WithFields(map[string]interface{}{"component": "classifier"}),
		now:       time.Now,
	}
}

// Classify runs the full RAW_TEXT -> PARSED|PARSE_ERROR -> estado machine.
// It returns an error only for service-level failures (empty input, no
// credentials, completion exhausted); malformed model output is recovered
// into a rejected sentinel record with a nil error.
func (c *Classifier) Classify(ctx context.Context, question string) (*Record, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, errors.NewEmptyQuestionError()
	}

	raw, err := c.completer.Complete(ctx, BuildClassifyPrompt(question))
	if err != nil {
		return nil, err
	}

	var cand Candidate
	if err := json.Unmarshal([]byte(StripCodeFence(raw)), &cand); err != nil {
		c.logger.Warn("model returned unparseable output", map[string]interface{}{
			"error":    err.Error(),
			"question": question,
		})
		rec := parseErrorRecord()
		metrics.IntentsClassified.WithLabelValues(string(rec.Estado)).Inc()
		return rec, nil
	}

	rec := c.postProcess(&cand)
	metrics.IntentsClassified.WithLabelValues(string(rec.Estado)).Inc()

	c.logger.Info("intent classified", map[string]interface{}{
		"funcion":   rec.Funcion,
		"claridad":  rec.Claridad,
		"estado":    rec.Estado,
		"confianza": rec.Confianza,
	})
	return rec, nil
}

// postProcess applies the defaulting rules, the claridad triage and the
// exact-alias normalization, in that order.
func (c *Classifier) postProcess(cand *Candidate) *Record {
	rec := &Record{
		Funcion:       strings.TrimSpace(cand.Funcion),
		Parametros:    cand.Parametros,
		PalabrasClave: cand.PalabrasClave,
		Entidades:     cand.Entidades,
		Intencion:     cand.Intencion,
		Resumen:       cand.Resumen,
		Confianza:     confidence(cand.Confianza, 1),
		Claridad:      Claridad(cand.Claridad),
		Original:      cand.Original,
	}
	if rec.Funcion == "" {
		rec.Funcion = FuncionInvalida
	}
	if rec.Parametros == nil {
		rec.Parametros = map[string]any{}
	}
	if rec.PalabrasClave == nil {
		rec.PalabrasClave = []string{}
	}
	if rec.Entidades == nil {
		rec.Entidades = []any{}
	}

	switch rec.Claridad {
	case ClaridadAlta:
		// The model understood the request; resolve relative dates and
		// periodo shorthands. The function name is left as delivered, only
		// the exact-alias table below touches it.
		rec.Estado = EstadoAprobado
		rec.Parametros = CanonicalizeParams(rec.Parametros, c.now())
	case ClaridadMedia:
		rec.Funcion = FuncionPendienteAclaracion
		rec.Estado = EstadoPendiente
	default:
		rec.Funcion = FuncionDesconocida
		rec.Estado = EstadoRechazado
	}

	rec.Funcion = CanonicalAlias(rec.Funcion)
	return rec
}

func parseErrorRecord() *Record {
	return &Record{
		Funcion:       FuncionErrorJSONInvalido,
		Parametros:    map[string]any{},
		PalabrasClave: []string{},
		Entidades:     []any{},
		Resumen:       "JSON inválido",
		Confianza:     0,
		Claridad:      ClaridadBaja,
		Original:      "",
		Estado:        EstadoRechazado,
	}
}

// StripCodeFence removes a leading ```json / ``` marker and a trailing ```
// the model sometimes wraps its answer in.
func StripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func confidence(n json.Number, fallback int) int {
	if n.String() == "" {
		return fallback
	}
	if v, err := n.Int64(); err == nil {
		return int(v)
	}
	if f, err := n.Float64(); err == nil {
		return int(f)
	}
	return fallback
}

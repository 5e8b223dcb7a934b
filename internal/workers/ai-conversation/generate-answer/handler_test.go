package generateanswer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "intent-workers/internal/common/errors"
	"intent-workers/internal/common/logger"
)

type stubGenerator struct {
	answer string
	err    error

	gotQuery     string
	gotIntencion string
	gotResumen   string
	gotDatos     string
}

func (s *stubGenerator) Answer(ctx context.Context, query, intencion, resumen, datos string) (string, error) {
	s.gotQuery = query
	s.gotIntencion = intencion
	s.gotResumen = resumen
	s.gotDatos = datos
	return s.answer, s.err
}

func TestExecuteDelegatesToGenerator(t *testing.T) {
	gen := &stubGenerator{answer: "Las ventas de junio fueron $12.500."}
	h := NewHandler(LoadConfig(), gen, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{
		Pregunta:  "¿Cuánto vendimos en junio?",
		Intencion: "consultar ventas mensuales",
		Resumen:   "ventas de junio",
		Datos:     "total: 12500",
	})
	require.NoError(t, err)

	assert.Equal(t, "Las ventas de junio fueron $12.500.", output.Respuesta)
	assert.Equal(t, "¿Cuánto vendimos en junio?", gen.gotQuery)
	assert.Equal(t, "consultar ventas mensuales", gen.gotIntencion)
	assert.Equal(t, "ventas de junio", gen.gotResumen)
	assert.Equal(t, "total: 12500", gen.gotDatos)
}

func TestExecutePropagatesGeneratorError(t *testing.T) {
	gen := &stubGenerator{err: stderrors.NewEmptyQuestionError()}
	h := NewHandler(LoadConfig(), gen, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{})
	require.Error(t, err)

	var stdErr *stderrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, stderrors.ErrCodeEmptyQuestion, stdErr.Code)
}

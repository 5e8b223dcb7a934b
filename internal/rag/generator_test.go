package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "intent-workers/internal/common/errors"
	"intent-workers/internal/common/logger"
)

type stubCompleter struct {
	response string
	err      error
	prompt   string
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.response, s.err
}

func TestAnswerBuildsPromptAndDelegates(t *testing.T) {
	completer := &stubCompleter{response: "Vendiste **Gs. 12.500.000** en junio."}
	g := NewGenerator(completer, logger.NewTestLogger(t))

	answer, err := g.Answer(context.Background(),
		"¿Cuánto vendimos en junio?",
		"consultar ventas mensuales",
		"ventas de junio",
		"Ventas del mes 2024-06: 12500000",
	)
	require.NoError(t, err)

	assert.Equal(t, "Vendiste **Gs. 12.500.000** en junio.", answer)
	assert.Contains(t, completer.prompt, "# contexto\nconsultar ventas mensuales\nventas de junio")
	assert.Contains(t, completer.prompt, "Ventas del mes 2024-06: 12500000")
	assert.Contains(t, completer.prompt, "¿Cuánto vendimos en junio?")
}

func TestAnswerEmptyContextParts(t *testing.T) {
	completer := &stubCompleter{response: "ok"}
	g := NewGenerator(completer, logger.NewTestLogger(t))

	_, err := g.Answer(context.Background(), "pregunta", "", "  ", "")
	require.NoError(t, err)

	assert.Contains(t, completer.prompt, "# datos\nNo se encontró información específica")
}

func TestAnswerEmptyQuestion(t *testing.T) {
	g := NewGenerator(&stubCompleter{}, logger.NewTestLogger(t))

	_, err := g.Answer(context.Background(), "   ", "", "", "")
	require.Error(t, err)

	var stdErr *stderrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, stderrors.ErrCodeEmptyQuestion, stdErr.Code)
}

func TestAnswerPropagatesCompleterError(t *testing.T) {
	wantErr := errors.New("completion exhausted")
	g := NewGenerator(&stubCompleter{err: wantErr}, logger.NewTestLogger(t))

	_, err := g.Answer(context.Background(), "pregunta", "", "", "")
	assert.ErrorIs(t, err, wantErr)
}

package intent

import (
	"context"
	"errors"
	"testing"
	"time"

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

func newTestClassifier(t *testing.T, response string, err error) (*Classifier, *stubCompleter) {
	completer := &stubCompleter{response: response, err: err}
	c := NewClassifier(completer, logger.NewTestLogger(t))
	c.now = func() time.Time {
		return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	}
	return c, completer
}

func TestClassifyEmptyQuestion(t *testing.T) {
	c, completer := newTestClassifier(t, "", nil)

	_, err := c.Classify(context.Background(), "   ")
	require.Error(t, err)

	var stdErr *stderrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, stderrors.ErrCodeEmptyQuestion, stdErr.Code)
	assert.Empty(t, completer.prompt)
}

func TestClassifyCompleterError(t *testing.T) {
	wantErr := errors.New("upstream down")
	c, _ := newTestClassifier(t, "", wantErr)

	_, err := c.Classify(context.Background(), "hola")
	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)
}

func TestClassifyUnparseableOutput(t *testing.T) {
	c, _ := newTestClassifier(t, "disculpa, no entendí la pregunta", nil)

	rec, err := c.Classify(context.Background(), "¿qué?")
	require.NoError(t, err)

	assert.Equal(t, FuncionErrorJSONInvalido, rec.Funcion)
	assert.Equal(t, 0, rec.Confianza)
	assert.Equal(t, ClaridadBaja, rec.Claridad)
	assert.Equal(t, "", rec.Original)
	assert.Equal(t, EstadoRechazado, rec.Estado)
	assert.Equal(t, "JSON inválido", rec.Resumen)
	assert.NotNil(t, rec.Parametros)
	assert.NotNil(t, rec.PalabrasClave)
	assert.NotNil(t, rec.Entidades)
}

func TestClassifyHighClarity(t *testing.T) {
	c, completer := newTestClassifier(t, "```json\n"+`{
		"funcion": "obtener_ventas_mensuales",
		"parametros": {"periodo": "mes_anterior"},
		"palabras_clave": ["facturacion"],
		"intencion": "consultar facturación del mes pasado",
		"resumen": "facturación mensual",
		"confianza": 92,
		"claridad": "alta",
		"original": "¿cuánto facturamos el mes pasado?"
	}`+"\n```", nil)

	rec, err := c.Classify(context.Background(), "¿cuánto facturamos el mes pasado?")
	require.NoError(t, err)

	assert.Contains(t, completer.prompt, "¿cuánto facturamos el mes pasado?")
	assert.Equal(t, "obtener_ventas_mensuales", rec.Funcion)
	assert.Equal(t, map[string]any{"mes_anterior": "2024-05"}, rec.Parametros)
	assert.Equal(t, 92, rec.Confianza)
	assert.Equal(t, EstadoAprobado, rec.Estado)
}

func TestClassifyMediumClarity(t *testing.T) {
	c, _ := newTestClassifier(t, `{"funcion": "obtener_ventas", "claridad": "media", "confianza": 55}`, nil)

	rec, err := c.Classify(context.Background(), "dame los números")
	require.NoError(t, err)

	assert.Equal(t, FuncionPendienteAclaracion, rec.Funcion)
	assert.Equal(t, EstadoPendiente, rec.Estado)
	assert.Equal(t, 55, rec.Confianza)
}

func TestClassifyLowClarity(t *testing.T) {
	c, _ := newTestClassifier(t, `{"funcion": "algo", "claridad": "baja"}`, nil)

	rec, err := c.Classify(context.Background(), "asdf")
	require.NoError(t, err)

	assert.Equal(t, FuncionDesconocida, rec.Funcion)
	assert.Equal(t, EstadoRechazado, rec.Estado)
}

func TestClassifyDefaults(t *testing.T) {
	c, _ := newTestClassifier(t, `{}`, nil)

	rec, err := c.Classify(context.Background(), "hola")
	require.NoError(t, err)

	// Missing claridad falls through to the rejected branch; the empty
	// function name was first defaulted to the invalid sentinel.
	assert.Equal(t, FuncionDesconocida, rec.Funcion)
	assert.Equal(t, 1, rec.Confianza)
	assert.Equal(t, EstadoRechazado, rec.Estado)
	assert.NotNil(t, rec.Parametros)
	assert.NotNil(t, rec.PalabrasClave)
	assert.NotNil(t, rec.Entidades)
}

func TestClassifyAliasApplied(t *testing.T) {
	c, _ := newTestClassifier(t, `{
		"funcion": "obtener_clientes_con_mas_compras",
		"claridad": "alta",
		"confianza": 88
	}`, nil)

	rec, err := c.Classify(context.Background(), "¿qué clientes compran más?")
	require.NoError(t, err)

	// The exact-alias table collapses the variant to the catalog id.
	assert.Equal(t, "clientes_mas_compras", rec.Funcion)
	assert.Equal(t, EstadoAprobado, rec.Estado)
}

func TestClassifyKeepsUnknownFunctionVerbatim(t *testing.T) {
	c, _ := newTestClassifier(t, `{
		"funcion": "consultar_ventas",
		"claridad": "alta",
		"confianza": 90
	}`, nil)

	rec, err := c.Classify(context.Background(), "ventas de la empresa")
	require.NoError(t, err)

	// No alias entry matches, and the approved branch never rewrites the
	// name beyond the alias table: it passes through untouched.
	assert.Equal(t, "consultar_ventas", rec.Funcion)
	assert.Equal(t, EstadoAprobado, rec.Estado)
}

func TestClassifyFloatConfidence(t *testing.T) {
	c, _ := newTestClassifier(t, `{"funcion": "obtener_ventas", "claridad": "alta", "confianza": 87.6}`, nil)

	rec, err := c.Classify(context.Background(), "ventas")
	require.NoError(t, err)
	assert.Equal(t, 87, rec.Confianza)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence(`{"a":1}`))
}

package retrievecontext

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intent-workers/internal/common/logger"
)

func newTestHandler(t *testing.T, handlerFunc http.HandlerFunc) *Handler {
	srv := httptest.NewServer(handlerFunc)
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{srv.URL},
	})
	require.NoError(t, err)

	return NewHandler(LoadConfig(), client, logger.NewTestLogger(t))
}

func TestExecuteJoinsSnippets(t *testing.T) {
	var gotPath string
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"hits": map[string]interface{}{
				"total":     map[string]interface{}{"value": 2},
				"max_score": 1.7,
				"hits": []map[string]interface{}{
					{"_source": map[string]interface{}{"titulo": "Facturación", "contenido": "La facturación se consulta por mes."}},
					{"_source": map[string]interface{}{"titulo": "", "contenido": "Los totales incluyen impuestos."}},
				},
			},
		})
	})

	output, err := h.Execute(context.Background(), &Input{
		Pregunta:  "¿Cómo veo la facturación?",
		Intencion: "consultar facturación",
	})
	require.NoError(t, err)

	assert.Equal(t, "/conocimiento/_search", gotPath)
	assert.Equal(t, 2, output.TotalHits)
	assert.InDelta(t, 1.7, output.MaxScore, 0.001)
	assert.Equal(t,
		"Facturación: La facturación se consulta por mes.\nLos totales incluyen impuestos.",
		output.Contexto,
	)
}

func TestExecuteEmptyQuestionSkipsSearch(t *testing.T) {
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no search expected for an empty question")
	})

	output, err := h.Execute(context.Background(), &Input{Pregunta: "   "})
	require.NoError(t, err)
	assert.Empty(t, output.Contexto)
	assert.Zero(t, output.TotalHits)
}

func TestExecuteSearchError(t *testing.T) {
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		http.Error(w, `{"error":"index_not_found_exception"}`, http.StatusNotFound)
	})

	_, err := h.Execute(context.Background(), &Input{Pregunta: "ventas"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CONTEXT_SEARCH_FAILED")
}

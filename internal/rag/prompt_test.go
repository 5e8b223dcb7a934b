package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPromptSections(t *testing.T) {
	prompt := BuildPrompt(
		" ¿Cuánto vendimos en junio? ",
		"consultar ventas mensuales\nventas de junio",
		"Ventas del mes 2024-06: $12500.00",
	)

	assert.True(t, strings.HasPrefix(prompt, "# sistema"))
	assert.Contains(t, prompt, "# contexto\nconsultar ventas mensuales\nventas de junio")
	assert.Contains(t, prompt, "# datos\nVentas del mes 2024-06: $12500.00")
	assert.True(t, strings.HasSuffix(prompt, "# pregunta\n¿Cuánto vendimos en junio?"))
}

func TestBuildPromptEmptyDataFallback(t *testing.T) {
	prompt := BuildPrompt("¿qué sabes?", "", "  ")
	assert.Contains(t, prompt, "# datos\nNo se encontró información específica en los datos disponibles.")
}

func TestBuildPromptKeepsRules(t *testing.T) {
	prompt := BuildPrompt("x", "", "")
	assert.Contains(t, prompt, "# REGLAS")
	assert.Contains(t, prompt, "moneda: guaraní Gs.")
	assert.Contains(t, prompt, "No termines con otra pregunta.")
}

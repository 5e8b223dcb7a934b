// internal/rag/prompt.go

// Package rag assembles deterministic retrieval-augmented prompts and turns
// them into natural-language answers through the completion service.
package rag

import (
	"fmt"
	"strings"
)

// promptTemplate is the fixed answer-generation instruction set. Its exact
// wording is part of the contract with the model; the sections are role,
// tone, locale/currency configuration, behavioral rules, then the retrieved
// context, data and question.
const promptTemplate = `# sistema
Eres un asistente especializado, que responde con la información dada, sin inventar.
Indica si la funcion no esta implementada
Prioriza siempre la pregunta del usuario sobre los datos encontrados.

# personalidad
Amable, claro y profesional.

# configuracion
- idioma: español
- moneda: guaraní Gs.

# REGLAS
- No termines con otra pregunta.
- No expliques más de lo necesario.
- Mantén los números exactos como en los datos.
- Muestra valores numericos de montos en negritas
- Si dato 'nivel de claridad del mensaje' es 'media', solicita mas informacion sin dar ejemplos.
- En caso que la funcion no este implementada, informa nombre de la funcion tal como es

# contexto
%s

# datos
%s

# pregunta
%s`

// noDataFallback fills the data section when retrieval produced nothing.
const noDataFallback = "No se encontró información específica en los datos disponibles."

// BuildPrompt substitutes the trimmed query, context and data into the fixed
// template. Pure templating; no control flow beyond the empty-data fallback.
func BuildPrompt(query, context, datos string) string {
	datosSection := strings.TrimSpace(datos)
	if datosSection == "" {
		datosSection = noDataFallback
	}
	prompt := fmt.Sprintf(promptTemplate,
		strings.TrimSpace(context),
		datosSection,
		strings.TrimSpace(query),
	)
	return strings.TrimSpace(prompt)
}

// internal/intent/prompt.go
package intent

import (
	"fmt"
	"strings"
)

// classifyPromptTemplate is the fixed instruction set sent to the model for
// intent classification. The exact wording is part of the contract with the
// model: changing it changes what comes back, so treat it as frozen data.
const classifyPromptTemplate = `configuracion:
idioma: español
formato: json
reglas:
- Inferir ambigüedades
- No explicaciones
- Retornar vacío si no se entiende
- campo funcion:
    - Genera nombre más comun, corto, claro y utilizado,
    - Prioriza el uso de sustantivos y complementos relevantes.
    - Omite palabras redundantes o poco informativas.

- claridad: "Evaluar lógica y coherencia de solicitud"
- campo parametros:
    - Inferir valores completos y correctos para la función especificada
    - Valor en snake_case
estructura_salida:
funcion: "snake_case"
palabras_clave: "lista"
entidades: "lista objetos"
intencion: "deducir proposito de solicitud muy breve"
resumen: "frase breve"
confianza: "1-9"
claridad: "alta | media | baja"
original: "corregido"
parametros: {"clave": "valor"}


solicitud: >
    %s`

// BuildClassifyPrompt embeds the user's question into the fixed instruction
// template.
func BuildClassifyPrompt(question string) string {
	return fmt.Sprintf(classifyPromptTemplate, strings.TrimSpace(question))
}

// internal/workers/ai-conversation/generate-answer/models.go
package generateanswer

type Input struct {
	Pregunta  string `json:"pregunta"`
	Intencion string `json:"intencion"`
	Resumen   string `json:"resumen"`
	Datos     string `json:"datos"`
}

type Output struct {
	Respuesta string `json:"respuesta"`
}

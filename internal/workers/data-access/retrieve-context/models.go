// internal/workers/data-access/retrieve-context/models.go
package retrievecontext

type Input struct {
	Pregunta  string `json:"pregunta"`
	Intencion string `json:"intencion"`
}

type Output struct {
	Contexto  string  `json:"contexto"`
	TotalHits int     `json:"totalHits"`
	MaxScore  float64 `json:"maxScore"`
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		MaxScore float64 `json:"max_score"`
		Hits     []struct {
			Source struct {
				Titulo    string `json:"titulo"`
				Contenido string `json:"contenido"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// internal/intent/stage.go
package intent

import (
	"strings"
	"time"
)

const tipoDefault = "informacion"

// Stage is the light, pre-retrieval post-process. Unlike the strict
// Classifier path it is never clarity-gated: the pipeline normalizer always
// runs and temporal parameters are always resolved, and the model's original
// function name is preserved beside the normalized one so downstream
// consumers can audit the rewrite.
func Stage(cand *Candidate, today time.Time) *StagedRecord {
	funcionIA := strings.TrimSpace(cand.Funcion)
	funcion := ""
	if funcionIA != "" {
		funcion = NormalizeFunctionName(funcionIA)
	}

	params := cand.Parametros
	if params == nil {
		params = map[string]any{}
	}
	params = CanonicalizeParams(params, today)

	rec := &StagedRecord{
		Tipo:          cand.Tipo,
		Funcion:       funcion,
		FuncionIA:     funcionIA,
		Parametros:    params,
		PalabrasClave: cand.PalabrasClave,
		Entidades:     cand.Entidades,
		Intencion:     cand.Intencion,
		Resumen:       cand.Resumen,
		Confianza:     confidence(cand.Confianza, 0),
		Claridad:      Claridad(cand.Claridad),
		Original:      cand.Original,
	}
	if rec.Tipo == "" {
		rec.Tipo = tipoDefault
	}
	if rec.Claridad == "" {
		rec.Claridad = ClaridadBaja
	}
	if rec.PalabrasClave == nil {
		rec.PalabrasClave = []string{}
	}
	if rec.Entidades == nil {
		rec.Entidades = []any{}
	}
	return rec
}

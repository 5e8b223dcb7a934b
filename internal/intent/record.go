// internal/intent/record.go
package intent

import "encoding/json"

// Claridad is the model's self-assessed confidence band.
type Claridad string

const (
	ClaridadAlta  Claridad = "alta"
	ClaridadMedia Claridad = "media"
	ClaridadBaja  Claridad = "baja"
)

// Estado is the workflow outcome assigned to an intent record.
type Estado string

const (
	EstadoAprobado  Estado = "aprobado"
	EstadoPendiente Estado = "pendiente"
	EstadoRechazado Estado = "rechazado"
)

// Sentinel function names emitted by the post-processors.
const (
	FuncionInvalida            = "invalida"
	FuncionDesconocida         = "desconocida"
	FuncionPendienteAclaracion = "pendiente_aclaracion"
	FuncionErrorJSONInvalido   = "error_json_invalido"
)

// Candidate is the raw, untrusted structure the model returns. Every field
// is optional; absence is tolerated and resolved by the post-processors.
// Confianza is a json.Number so integer and float renderings both parse.
type Candidate struct {
	Funcion       string         `json:"funcion"`
	Parametros    map[string]any `json:"parametros"`
	PalabrasClave []string       `json:"palabras_clave"`
	Entidades     []any          `json:"entidades"`
	Intencion     string         `json:"intencion"`
	Resumen       string         `json:"resumen"`
	Confianza     json.Number    `json:"confianza"`
	Claridad      string         `json:"claridad"`
	Original      string         `json:"original"`
	Tipo          string         `json:"tipo"`
}

// Record is the stable output contract of the strict post-process. The
// struct declaration order fixes the serialized field order; consumers do
// positional and snapshot comparisons, so it must not change.
type Record struct {
	Funcion       string         `json:"funcion"`
	Parametros    map[string]any `json:"parametros"`
	PalabrasClave []string       `json:"palabras_clave"`
	Entidades     []any          `json:"entidades"`
	Intencion     string         `json:"intencion"`
	Resumen       string         `json:"resumen"`
	Confianza     int            `json:"confianza"`
	Claridad      Claridad       `json:"claridad"`
	Original      string         `json:"original"`
	Estado        Estado         `json:"estado"`
}

// StagedRecord is the pre-retrieval staging variant: it keeps the model's
// original function name beside the normalized one and is never
// clarity-gated.
type StagedRecord struct {
	Tipo          string         `json:"tipo"`
	Funcion       string         `json:"funcion"`
	FuncionIA     string         `json:"funcion_ia"`
	Parametros    map[string]any `json:"parametros"`
	PalabrasClave []string       `json:"palabras_clave"`
	Entidades     []any          `json:"entidades"`
	Intencion     string         `json:"intencion"`
	Resumen       string         `json:"resumen"`
	Confianza     int            `json:"confianza"`
	Claridad      Claridad       `json:"claridad"`
	Original      string         `json:"original"`
}

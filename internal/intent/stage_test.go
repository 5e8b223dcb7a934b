package intent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStageNormalizesRegardlessOfClarity(t *testing.T) {
	today := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	rec := Stage(&Candidate{
		Funcion:    " Consultar_Facturación  Mensual ",
		Parametros: map[string]any{"fecha": "hoy"},
		Claridad:   "baja",
		Confianza:  "40",
	}, today)

	assert.Equal(t, "obtener_ventas_mensuales", rec.Funcion)
	assert.Equal(t, "Consultar_Facturación  Mensual", rec.FuncionIA)
	assert.Equal(t, "2024-06-15", rec.Parametros["fecha"])
	assert.Equal(t, ClaridadBaja, rec.Claridad)
	assert.Equal(t, 40, rec.Confianza)
}

func TestStageDefaults(t *testing.T) {
	rec := Stage(&Candidate{}, time.Now())

	assert.Equal(t, "informacion", rec.Tipo)
	assert.Equal(t, "", rec.Funcion)
	assert.Equal(t, "", rec.FuncionIA)
	assert.Equal(t, 0, rec.Confianza)
	assert.Equal(t, ClaridadBaja, rec.Claridad)
	assert.NotNil(t, rec.Parametros)
	assert.NotNil(t, rec.PalabrasClave)
	assert.NotNil(t, rec.Entidades)
}

func TestStageKeepsExplicitTipo(t *testing.T) {
	rec := Stage(&Candidate{Tipo: "accion"}, time.Now())
	assert.Equal(t, "accion", rec.Tipo)
}

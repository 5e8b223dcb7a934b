package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFunctionName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"mixed case accents and double space", "Consultar_Facturación  Mensual", "obtener_ventas_mensuales"},
		{"query verb collapses", "ver_clientes", "obtener_clientes"},
		{"mostrar prefix", "mostrar_productos", "obtener_productos"},
		{"inflected root", "contar_facturado", "obtener_ventas"},
		{"synonym token", "obtener_ingresos", "obtener_ventas"},
		{"suffix del_mes", "obtener_ventas_del_mes", "obtener_ventas_mensuales"},
		{"suffix por_anio", "obtener_ventas_por_anio", "obtener_ventas_anuales"},
		{"suffix diario", "obtener_ventas_diario", "obtener_ventas_diarias"},
		{"duplicate tokens collapse", "obtener_ventas_ventas", "obtener_ventas"},
		{"phrase variant", "obtener_clientes_con_mas_compras", "obtener_clientes_mas_compras"},
		{"phrase variant top", "obtener_clientes_top", "obtener_clientes_mas_compras"},
		{"stop phrase removed", "obtener_clientes_cartera", "obtener_clientes"},
		{"already canonical", "obtener_ventas_mensuales", "obtener_ventas_mensuales"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeFunctionName(tc.in))
		})
	}
}

func TestNormalizeFunctionNameIdempotent(t *testing.T) {
	inputs := []string{
		"Consultar_Facturación  Mensual",
		"ver_clientes",
		"contar_facturado",
		"obtener_ventas_del_mes",
		"obtener_clientes_con_mas_compras",
		"mostrar_articulos",
		"algo_totalmente_desconocido",
	}

	for _, in := range inputs {
		once := NormalizeFunctionName(in)
		twice := NormalizeFunctionName(once)
		assert.Equal(t, once, twice, "not a fixed point: %q", in)
	}
}

func TestCanonicalAlias(t *testing.T) {
	assert.Equal(t, "obtener_facturacion", CanonicalAlias("facturacion_anual"))
	assert.Equal(t, "clientes_mas_compras", CanonicalAlias("obtener_compradores_top"))
	assert.Equal(t, "saludo", CanonicalAlias("hola"))

	// Exact match only: no substring or prefix logic.
	assert.Equal(t, "hola_mundo", CanonicalAlias("hola_mundo"))
	assert.Equal(t, "obtener_ventas", CanonicalAlias("obtener_ventas"))
}

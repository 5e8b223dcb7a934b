// internal/intent/tables.go
package intent

// All substitution tables used by the name normalization pipeline live here
// as plain data. The pipeline stages in normalize.go never hardcode
// vocabulary, so extending a table never touches pipeline logic.

// rootForms maps a canonical root token to the inflected forms that collapse
// into it. Matching is whole-token (underscore-delimited) only.
var rootForms = map[string][]string{
	"facturacion": {"facturado", "facturada", "facturados", "facturadas"},
	"compra":      {"comprado", "comprada", "comprados", "compradas"},
	"venta":       {"vendido", "vendida", "vendidos", "vendidas"},
}

// prefixRewrites is applied in order, each at most once, prefix-anchored.
// Every query verb the model tends to produce collapses into obtener_.
var prefixRewrites = []struct {
	old string
	new string
}{
	{"consultar_", "obtener_"},
	{"contar_", "obtener_"},
	{"ver_", "obtener_"},
	{"mostrar_", "obtener_"},
}

// synonymGroups maps a canonical token to whole-token synonyms.
var synonymGroups = map[string][]string{
	"ventas":    {"facturacion", "ingresos"},
	"clientes":  {"compradores", "consumidores"},
	"productos": {"articulos", "items"},
	"total":     {"monto", "importe"},
}

// suffixRules is checked in order; the first matching variant wins, the
// matched literal is stripped and "_"+canonical appended, then the stage
// stops. The canonical form itself is always the first variant so canonical
// names are fixed points.
var suffixRules = []struct {
	canonical string
	variants  []string
}{
	{"mensuales", []string{"_mensuales", "_mensual", "_por_mes", "_del_mes"}},
	{"anuales", []string{"_anuales", "_anual", "_por_anio", "_por_ano", "_del_anio"}},
	{"diarias", []string{"_diarias", "_diarios", "_diaria", "_diario", "_por_dia", "_del_dia"}},
}

// phraseGroups maps a canonical phrase to literal multi-token variants,
// replaced as substrings over the whole name. Variants are ordered longest
// first so a shorter variant never clips a longer one.
var phraseGroups = []struct {
	canonical string
	variants  []string
}{
	{"clientes_mas_compras", []string{
		"clientes_con_mas_compras",
		"clientes_que_mas_compran",
		"clientes_top_compras",
		"compradores_top",
		"mejores_clientes",
		"clientes_top",
	}},
}

// stopPhrases are literal substrings removed wherever they occur.
var stopPhrases = []string{"_cartera"}

// aliasGroups is the second, exact-match-only normalizer applied after the
// clarity-gated post-process. No substring or boundary logic: a name either
// equals an alias or passes through verbatim.
var aliasGroups = map[string][]string{
	"asistente_nombre": {
		"quien_soy",
		"identidad",
	},
	"saludo": {
		"saludo",
		"hola",
		"buen_dia",
	},
	"obtener_facturacion": {
		"obtener_facturacion_anual",
		"facturacion_anual",
		"obtener_facturacion_por_anio",
		"obtener_facturacion_por_año",
	},
	"clientes_mas_compras": {
		"obtener_clientes_mas_compras",
		"obtener_clientes_mas_compradores",
		"obtener_clientes_top_compras",
		"obtener_clientes_con_mas_compras",
		"obtener_clientes_mas_compraron",
		"obtener_clientes_top_compradores",
		"listar_compradores_top",
		"obtener_compradores_top",
	},
}

// internal/workers/data-access/query-intent-data/models.go
package queryintentdata

type Input struct {
	Funcion    string                 `json:"funcion"`
	Parametros map[string]interface{} `json:"parametros"`
}

type Output struct {
	Funcion  string `json:"funcion"`
	Datos    string `json:"datos"`
	RowCount int    `json:"rowCount"`
}

// clientPurchases is one row of the top-buyers ranking.
type clientPurchases struct {
	Cliente string
	Compras int
	Monto   float64
}

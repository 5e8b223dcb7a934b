package queryintentdata

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "intent-workers/internal/common/errors"
	"intent-workers/internal/common/logger"
)

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	h := NewHandler(LoadConfig(), db, logger.NewTestLogger(t))
	h.now = func() time.Time {
		return time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)
	}
	return h, mock
}

func TestExecuteMonthlyTotal(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta(monthlyTotalQuery)).
		WithArgs("2024-02").
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(1250.50))

	output, err := h.Execute(context.Background(), &Input{
		Funcion:    "obtener_ventas_mensuales",
		Parametros: map[string]interface{}{"fecha": "2024-02"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Ventas del mes 2024-02: $1250.50", output.Datos)
	assert.Equal(t, 1, output.RowCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteMonthlyTotalDefaultsToCurrentMonth(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta(monthlyTotalQuery)).
		WithArgs("2024-06").
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(0.0))

	output, err := h.Execute(context.Background(), &Input{Funcion: "obtener_ventas_mensuales"})
	require.NoError(t, err)

	assert.Equal(t, "Ventas del mes 2024-06: $0.00", output.Datos)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteYearlyTotal(t *testing.T) {
	h, mock := newTestHandler(t)

	// A full date still resolves to its year.
	mock.ExpectQuery(regexp.QuoteMeta(yearlyTotalQuery)).
		WithArgs("2023").
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(98000.0))

	output, err := h.Execute(context.Background(), &Input{
		Funcion:    "obtener_facturacion",
		Parametros: map[string]interface{}{"fecha": "2023-11-02"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Facturación del año 2023: $98000.00", output.Datos)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteTopClients(t *testing.T) {
	h, mock := newTestHandler(t)

	rows := sqlmock.NewRows([]string{"cliente", "compras", "monto"}).
		AddRow("Acme", 12, 9000.0).
		AddRow("Globex", 8, 4500.0)
	mock.ExpectQuery(regexp.QuoteMeta(topClientsQuery)).
		WithArgs(5).
		WillReturnRows(rows)

	output, err := h.Execute(context.Background(), &Input{Funcion: "clientes_mas_compras"})
	require.NoError(t, err)

	assert.Equal(t, 2, output.RowCount)
	assert.Equal(t, "Clientes con más compras:\n1. Acme: 12 compras ($9000.00)\n2. Globex: 8 compras ($4500.00)", output.Datos)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteTopClientsNoRows(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta(topClientsQuery)).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"cliente", "compras", "monto"}))

	output, err := h.Execute(context.Background(), &Input{Funcion: "clientes_mas_compras"})
	require.NoError(t, err)

	assert.Equal(t, "No hay compras registradas.", output.Datos)
	assert.Equal(t, 0, output.RowCount)
}

func TestExecuteUnknownIntent(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{Funcion: "enviar_factura"})
	require.Error(t, err)

	var stdErr *stderrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, stderrors.ErrCodeIntentNotImplemented, stdErr.Code)
}

func TestExecuteQueryFailure(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta(monthlyTotalQuery)).
		WithArgs("2024-06").
		WillReturnError(errors.New("connection reset"))

	_, err := h.Execute(context.Background(), &Input{Funcion: "obtener_ventas_mensuales"})
	require.Error(t, err)

	var stdErr *stderrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, stderrors.ErrCodeQueryExecutionFailed, stdErr.Code)
}

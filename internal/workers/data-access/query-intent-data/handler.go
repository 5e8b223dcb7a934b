// internal/workers/data-access/query-intent-data/handler.go
package queryintentdata

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	stderrors "intent-workers/internal/common/errors"
	"intent-workers/internal/common/logger"
	"intent-workers/internal/common/metrics"
)

const (
	TaskType = "query-intent-data"
)

const (
	yearlyTotalQuery = `SELECT COALESCE(SUM(total), 0) FROM ventas WHERE to_char(fecha, 'YYYY') = $1`

	monthlyTotalQuery = `SELECT COALESCE(SUM(total), 0) FROM ventas WHERE to_char(fecha, 'YYYY-MM') = $1`

	topClientsQuery = `SELECT cliente, COUNT(*) AS compras, COALESCE(SUM(total), 0) AS monto
FROM ventas
GROUP BY cliente
ORDER BY compras DESC, monto DESC
LIMIT $1`
)

var (
	yearPattern  = regexp.MustCompile(`^\d{4}`)
	monthPattern = regexp.MustCompile(`^\d{4}-\d{2}`)
)

type Handler struct {
	config *Config
	db     *sql.DB
	logger logger.Logger
	now    func() time.Time
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
		now:    time.Now,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, fmt.Errorf("parse input: %w", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		retries := int32(0)
		var stdErr *stderrors.StandardError
		if errors.As(err, &stdErr) && stdErr.Retryable {
			retries = 2
		}
		h.failJob(client, job, err, retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	funcion := strings.TrimSpace(input.Funcion)

	switch funcion {
	case "obtener_facturacion":
		return h.yearlyTotal(ctx, funcion, input.Parametros)
	case "obtener_ventas_mensuales":
		return h.monthlyTotal(ctx, funcion, input.Parametros)
	case "clientes_mas_compras":
		return h.topClients(ctx, funcion)
	default:
		return nil, stderrors.NewIntentNotImplementedError(funcion)
	}
}

func (h *Handler) yearlyTotal(ctx context.Context, funcion string, params map[string]interface{}) (*Output, error) {
	year := yearPattern.FindString(paramString(params, "fecha"))
	if year == "" {
		year = h.now().Format("2006")
	}

	var total float64
	if err := h.db.QueryRowContext(ctx, yearlyTotalQuery, year).Scan(&total); err != nil {
		return nil, stderrors.NewQueryExecutionFailedError(funcion, err)
	}

	return &Output{
		Funcion:  funcion,
		Datos:    fmt.Sprintf("Facturación del año %s: $%.2f", year, total),
		RowCount: 1,
	}, nil
}

func (h *Handler) monthlyTotal(ctx context.Context, funcion string, params map[string]interface{}) (*Output, error) {
	month := monthPattern.FindString(paramString(params, "fecha"))
	if month == "" {
		month = h.now().Format("2006-01")
	}

	var total float64
	if err := h.db.QueryRowContext(ctx, monthlyTotalQuery, month).Scan(&total); err != nil {
		return nil, stderrors.NewQueryExecutionFailedError(funcion, err)
	}

	return &Output{
		Funcion:  funcion,
		Datos:    fmt.Sprintf("Ventas del mes %s: $%.2f", month, total),
		RowCount: 1,
	}, nil
}

func (h *Handler) topClients(ctx context.Context, funcion string) (*Output, error) {
	rows, err := h.db.QueryContext(ctx, topClientsQuery, h.config.TopLimit)
	if err != nil {
		return nil, stderrors.NewQueryExecutionFailedError(funcion, err)
	}
	defer rows.Close()

	var ranking []clientPurchases
	for rows.Next() {
		var row clientPurchases
		if err := rows.Scan(&row.Cliente, &row.Compras, &row.Monto); err != nil {
			return nil, stderrors.NewQueryExecutionFailedError(funcion, err)
		}
		ranking = append(ranking, row)
	}
	if err := rows.Err(); err != nil {
		return nil, stderrors.NewQueryExecutionFailedError(funcion, err)
	}

	if len(ranking) == 0 {
		return &Output{
			Funcion: funcion,
			Datos:   "No hay compras registradas.",
		}, nil
	}

	var b strings.Builder
	b.WriteString("Clientes con más compras:\n")
	for i, row := range ranking {
		fmt.Fprintf(&b, "%d. %s: %d compras ($%.2f)\n", i+1, row.Cliente, row.Compras, row.Monto)
	}

	return &Output{
		Funcion:  funcion,
		Datos:    strings.TrimRight(b.String(), "\n"),
		RowCount: len(ranking),
	}, nil
}

// paramString extracts a string parameter, tolerating absent or non-string
// values.
func paramString(params map[string]interface{}, key string) string {
	if params == nil {
		return ""
	}
	if v, ok := params[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	if _, err = cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error, retries int32) {
	errorCode := "UNKNOWN_ERROR"
	var stdErr *stderrors.StandardError
	if errors.As(err, &stdErr) {
		errorCode = string(stdErr.Code)
	}

	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":    job.Key,
		"error":     err.Error(),
		"errorCode": errorCode,
	})
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()

	_, _ = client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(retries).
		ErrorMessage(errorCode + ": " + err.Error()).
		Send(context.Background())
}

// Execute exposes the core path for tests.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

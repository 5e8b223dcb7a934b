// internal/workers/ai-conversation/classify-intent/handler.go
package classifyintent

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"intent-workers/internal/common/logger"
	"intent-workers/internal/common/metrics"
	"intent-workers/internal/genai"
	"intent-workers/internal/intent"
	"intent-workers/pkg/registry"
)

const (
	TaskType = "classify-intent"

	cacheKeyPrefix = "intent:"
)

// Classifier turns a raw question into a post-processed intent record.
type Classifier interface {
	Classify(ctx context.Context, question string) (*intent.Record, error)
}

type Handler struct {
	config     *Config
	classifier Classifier
	cache      *redis.Client
	registry   *registry.Registry
	logger     logger.Logger
}

// NewHandler builds the classify-intent handler. cache and reg may be nil,
// in which case caching and catalog checks are skipped.
func NewHandler(config *Config, classifier Classifier, cache *redis.Client, reg *registry.Registry, log logger.Logger) *Handler {
	return &Handler{
		config:     config,
		classifier: classifier,
		cache:      cache,
		registry:   reg,
		logger: log.WithFields(map[string]interface{}{
			"taskType": TaskType,
		}),
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
		h.failJob(client, job, err, retriesFor(err))
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	requestID := uuid.NewString()
	question := strings.TrimSpace(input.Pregunta)

	if cached := h.fromCache(ctx, question); cached != nil {
		return &Output{
			RequestID: requestID,
			Intencion: cached,
			Cached:    true,
		}, nil
	}

	record, err := h.classifier.Classify(ctx, question)
	if err != nil {
		return nil, err
	}

	output := &Output{
		RequestID:    requestID,
		Intencion:    record,
		Advertencias: h.catalogWarnings(record),
	}

	if record.Estado == intent.EstadoAprobado {
		h.toCache(ctx, question, record)
	}

	h.logger.Info("intent classified", map[string]interface{}{
		"requestId": requestID,
		"funcion":   record.Funcion,
		"estado":    record.Estado,
		"claridad":  record.Claridad,
	})

	return output, nil
}

// catalogWarnings checks an approved intent against the registry. The checks
// are advisory: a mismatch never fails the job.
func (h *Handler) catalogWarnings(record *intent.Record) []string {
	if h.registry == nil || record.Estado != intent.EstadoAprobado {
		return nil
	}

	def, ok := h.registry.Lookup(record.Funcion)
	if !ok {
		return []string{fmt.Sprintf("la función %q no figura en el catálogo de intenciones", record.Funcion)}
	}

	var warnings []string
	if !def.Implemented {
		warnings = append(warnings, fmt.Sprintf("la función %q aún no tiene worker de datos", record.Funcion))
	}

	issues, err := h.registry.ValidateParams(record.Funcion, record.Parametros)
	if err != nil {
		h.logger.Warn("parameter schema validation failed", map[string]interface{}{
			"funcion": record.Funcion,
			"error":   err.Error(),
		})
		return warnings
	}
	return append(warnings, issues...)
}

func (h *Handler) fromCache(ctx context.Context, question string) *intent.Record {
	if !h.config.CacheEnabled || h.cache == nil || question == "" {
		return nil
	}

	raw, err := h.cache.Get(ctx, cacheKey(question)).Result()
	if err != nil {
		metrics.IntentCacheEvents.WithLabelValues("miss").Inc()
		return nil
	}

	var record intent.Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		h.logger.Warn("discarding corrupt cache entry", map[string]interface{}{
			"error": err.Error(),
		})
		h.cache.Del(ctx, cacheKey(question))
		metrics.IntentCacheEvents.WithLabelValues("miss").Inc()
		return nil
	}

	metrics.IntentCacheEvents.WithLabelValues("hit").Inc()
	return &record
}

func (h *Handler) toCache(ctx context.Context, question string, record *intent.Record) {
	if !h.config.CacheEnabled || h.cache == nil || question == "" {
		return
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return
	}
	if err := h.cache.Set(ctx, cacheKey(question), raw, h.config.CacheTTL).Err(); err != nil {
		h.logger.Warn("failed to cache intent", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func cacheKey(question string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(question)))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

func retriesFor(err error) int32 {
	if stdErr := genai.AsStandardError(err); stdErr != nil && stdErr.Retryable {
		return 1
	}
	return 0
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)

	if err != nil {
		h.logger.Error("Failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	if _, err = cmd.Send(context.Background()); err != nil {
		h.logger.Error("Failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error, retries int32) {
	errorCode := "UNKNOWN_ERROR"
	if stdErr := genai.AsStandardError(err); stdErr != nil {
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

// internal/genai/client.go

// Package genai adapts the Gemini generateContent REST API into the opaque
// text-completion service the intent pipeline depends on: one prompt in, one
// text out, bounded retries with key rotation in between.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	stderrors "intent-workers/internal/common/errors"
	"intent-workers/internal/common/logger"
	"intent-workers/internal/common/metrics"
)

const (
	defaultBaseURL    = "https://generativelanguage.googleapis.com/v1beta"
	defaultMaxRetries = 2

	// fallbackResponse mirrors what callers receive when the model returns
	// an empty candidate; the wording is part of the answer contract.
	fallbackResponse = "No se pudo generar respuesta a la solicitud"
)

var (
	ErrNoAPIKeys          = errors.New("NO_API_KEYS_CONFIGURED")
	ErrServiceUnavailable = errors.New("GENAI_UNAVAILABLE")
)

// GenerationConfig carries the model sampling parameters. Temperature is
// pinned to 0 by default: classification output must be deterministic.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Temperature:     0,
		TopP:            1.0,
		TopK:            1,
		MaxOutputTokens: 512,
	}
}

type Config struct {
	Model      string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	Generation GenerationConfig
}

type Client struct {
	config *Config
	pool   *KeyPool
	client *http.Client
	logger logger.Logger
}

func NewClient(config *Config, pool *KeyPool, log logger.Logger) *Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.MaxRetries <= 0 {
		config.MaxRetries = defaultMaxRetries
	}
	return &Client{
		config: config,
		pool:   pool,
		client: &http.Client{Timeout: config.Timeout},
		logger: log.WithFields(map[string]interface{}{"component": "genai"}),
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Complete sends the prompt and returns the model's text. Exactly MaxRetries
// attempts are made, each with a freshly selected key from the pool; an
// empty pool fails immediately and exhaustion yields a single terminal
// ErrServiceUnavailable.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	payload := generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: c.config.Generation,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.config.MaxRetries; attempt++ {
		key, err := c.pool.Next()
		if err != nil {
			return "", err
		}

		text, err := c.invoke(ctx, key, body)
		if err == nil {
			metrics.GenAIRequests.WithLabelValues("ok").Inc()
			if text == "" {
				return fallbackResponse, nil
			}
			return text, nil
		}

		lastErr = err
		metrics.GenAIRequests.WithLabelValues("error").Inc()
		c.logger.Warn("completion attempt failed", map[string]interface{}{
			"attempt": attempt,
			"key":     keySuffix(key),
			"error":   err.Error(),
		})

		if ctx.Err() != nil {
			break
		}
	}

	return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, lastErr)
}

func (c *Client) invoke(ctx context.Context, key string, body []byte) (string, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.config.BaseURL, c.config.Model, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("genai http: %w", err)
	}
	defer resp.Body.Close()
	metrics.GenAIRequestDuration.WithLabelValues(c.config.Model).Observe(time.Since(start).Seconds())

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("genai request failed: status=%d body=%s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// AsStandardError maps a failure from the completion path onto the structured
// taxonomy the workers report to the engine. Errors that already carry a
// StandardError pass through; anything unrecognized yields nil.
func AsStandardError(err error) *stderrors.StandardError {
	var stdErr *stderrors.StandardError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &stdErr):
		return stdErr
	case errors.Is(err, ErrNoAPIKeys):
		return stderrors.NewNoAPIKeysError()
	case errors.Is(err, ErrServiceUnavailable):
		return stderrors.NewGenAIUnavailableError(err)
	case errors.Is(err, context.DeadlineExceeded):
		return stderrors.NewGenAITimeoutError()
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

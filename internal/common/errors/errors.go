// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeEmptyQuestion       ErrorCode = "EMPTY_QUESTION"
	ErrCodeGenAIUnavailable    ErrorCode = "GENAI_UNAVAILABLE"
	ErrCodeGenAITimeout        ErrorCode = "GENAI_TIMEOUT"
	ErrCodeNoAPIKeysConfigured ErrorCode = "NO_API_KEYS_CONFIGURED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeContextSearchFailed      ErrorCode = "CONTEXT_SEARCH_FAILED"
	ErrCodeIntentNotImplemented     ErrorCode = "INTENT_NOT_IMPLEMENTED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Zeebe job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}
	return vars
}

// ToBPMN converts a StandardError into its workflow-engine representation.
func (e *StandardError) ToBPMN(retries int) *BPMNError {
	return &BPMNError{
		Code:      string(e.Code),
		Message:   e.Message,
		Details:   e.Details,
		Retryable: e.Retryable,
		Retries:   retries,
	}
}

// ==========================
// 3. Error Constructors
// ==========================

// NewEmptyQuestionError rejects a blank question before any external call.
func NewEmptyQuestionError() *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyQuestion,
		Message:   "Question is empty",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenAIUnavailableError is the terminal failure after the retry budget of
// the completion service is exhausted.
func NewGenAIUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAIUnavailable,
		Message:   "Completion service unavailable after retries",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenAITimeoutError creates a retryable completion timeout error.
func NewGenAITimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAITimeout,
		Message:   "Completion service call timed out",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoAPIKeysError is a fatal configuration error, surfaced immediately and
// never retried.
func NewNoAPIKeysError() *StandardError {
	return &StandardError{
		Code:      ErrCodeNoAPIKeysConfigured,
		Message:   "No API keys configured for the completion service",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(funcion string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Intent data query failed",
		Details:   fmt.Sprintf("funcion: %s, error: %s", funcion, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewContextSearchFailedError creates a retryable context retrieval error.
func NewContextSearchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeContextSearchFailed,
		Message:   "Knowledge index search failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIntentNotImplementedError creates a non-retryable error for a canonical
// function with no data query behind it.
func NewIntentNotImplementedError(funcion string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIntentNotImplemented,
		Message:   "No data query implemented for this function",
		Details:   fmt.Sprintf("funcion: %s", funcion),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

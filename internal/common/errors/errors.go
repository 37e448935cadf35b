// internal/common/errors/errors.go
package errors

import (
	"fmt"
	"strings"
	"time"
)

type ErrorCode string

const (
	ErrCodeProviderQueryFailed   ErrorCode = "PROVIDER_QUERY_FAILED"
	ErrCodeProviderQueryTimeout  ErrorCode = "PROVIDER_QUERY_TIMEOUT"
	ErrCodeProviderIndexNotFound ErrorCode = "PROVIDER_INDEX_NOT_FOUND"
	ErrCodeProviderDecodeFailed  ErrorCode = "PROVIDER_DECODE_FAILED"

	ErrCodeInvalidMatchRequest  ErrorCode = "INVALID_MATCH_REQUEST"
	ErrCodeInvalidScoringConfig ErrorCode = "INVALID_SCORING_CONFIG"
	ErrCodeUnknownSourceKind    ErrorCode = "UNKNOWN_SOURCE_KIND"

	ErrCodeDatabaseConnectionFailed      ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"

	ErrCodeExternalService  ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeTimeout          ErrorCode = "TIMEOUT_ERROR"
	ErrCodeResourceNotFound ErrorCode = "RESOURCE_NOT_FOUND"
	ErrCodeBusinessRule     ErrorCode = "BUSINESS_RULE_VIOLATION"
	ErrCodeAuthentication   ErrorCode = "AUTHENTICATION_ERROR"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// StandardError is the error shape every worker reports to the process engine.
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

// WithMetadata attaches a key to the error and returns it for chaining.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

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

func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// Provider source errors

func NewProviderQueryFailedError(source string, err error) *StandardError {
	return newError(ErrCodeProviderQueryFailed, "Provider query failed",
		fmt.Sprintf("source: %s, error: %s", source, err.Error()), true)
}

func NewProviderQueryTimeoutError(source string) *StandardError {
	return newError(ErrCodeProviderQueryTimeout, "Provider query timeout",
		fmt.Sprintf("source: %s", source), true)
}

func NewProviderIndexNotFoundError(indexName string) *StandardError {
	return newError(ErrCodeProviderIndexNotFound, "Provider index not found",
		fmt.Sprintf("indexName: %s", indexName), false)
}

func NewProviderDecodeFailedError(source string, err error) *StandardError {
	return newError(ErrCodeProviderDecodeFailed, "Provider response could not be decoded",
		fmt.Sprintf("source: %s, error: %s", source, err.Error()), false)
}

// Request and configuration errors

func NewInvalidMatchRequestError(details string) *StandardError {
	return newError(ErrCodeInvalidMatchRequest, "Invalid match request", details, false)
}

func NewInvalidScoringConfigError(err error) *StandardError {
	return newError(ErrCodeInvalidScoringConfig, "Invalid scoring configuration", err.Error(), false)
}

func NewUnknownSourceKindError(kind string) *StandardError {
	return newError(ErrCodeUnknownSourceKind, "Unsupported provider source",
		fmt.Sprintf("kind: %s", kind), false)
}

// Infrastructure errors

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err.Error(), true)
}

func NewElasticsearchConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeElasticsearchConnectionFailed, "Elasticsearch connection error", err.Error(), true)
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newError(ErrCodeExternalService, fmt.Sprintf("External service '%s' error", service), err.Error(), true)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError(ErrCodeTimeout, fmt.Sprintf("Service '%s' timeout", service), err.Error(), true)
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return newError(ErrCodeResourceNotFound, fmt.Sprintf("Resource not found in %s", service), details, false)
}

func NewBusinessRuleError(message, details string) *StandardError {
	return newError(ErrCodeBusinessRule, message, details, false)
}

func NewAuthenticationError(details string) *StandardError {
	return newError(ErrCodeAuthentication, "Authentication failed", details, false)
}

// BPMNErrorMapping maps internal codes to the error codes caught by boundary
// events in the matching process model.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeProviderQueryFailed:           "PROVIDER_QUERY_FAILED",
	ErrCodeProviderQueryTimeout:          "PROVIDER_QUERY_TIMEOUT",
	ErrCodeProviderIndexNotFound:         "PROVIDER_SOURCE_UNAVAILABLE",
	ErrCodeProviderDecodeFailed:          "PROVIDER_SOURCE_UNAVAILABLE",
	ErrCodeInvalidMatchRequest:           "INVALID_MATCH_REQUEST",
	ErrCodeInvalidScoringConfig:          "MATCHING_MISCONFIGURED",
	ErrCodeUnknownSourceKind:             "MATCHING_MISCONFIGURED",
	ErrCodeDatabaseConnectionFailed:      "PROVIDER_SOURCE_UNAVAILABLE",
	ErrCodeElasticsearchConnectionFailed: "PROVIDER_SOURCE_UNAVAILABLE",
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeProviderQueryFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeElasticsearchConnectionFailed,
		ErrCodeExternalService:
		return 3

	case ErrCodeProviderQueryTimeout,
		ErrCodeTimeout:
		return 2

	default:
		return 0
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "PROVIDER_"):
		return "PROVIDER_SOURCE"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "ELASTICSEARCH"):
		return "INFRASTRUCTURE"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "UNKNOWN"):
		return "VALIDATION"
	case strings.Contains(codeStr, "TIMEOUT") || strings.Contains(codeStr, "EXTERNAL"):
		return "EXTERNAL"
	default:
		return "OTHER"
	}
}

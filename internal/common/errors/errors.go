// Package errors provides the standardized error type shared by the fill pipeline
// and its mapping onto HTTP responses.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Client input errors
const (
	ErrCodeInvalidJSON   ErrorCode = "INVALID_JSON"
	ErrCodeMissingFields ErrorCode = "MISSING_FIELDS"
	ErrCodeInvalidFields ErrorCode = "INVALID_FIELDS"
)

// Server configuration and processing errors
const (
	ErrCodeTemplateNotFound   ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrCodeTemplateUnreadable ErrorCode = "TEMPLATE_UNREADABLE"
	ErrCodeTemplateOpenFailed ErrorCode = "TEMPLATE_OPEN_FAILED"
	ErrCodeRenderFailed       ErrorCode = "RENDER_FAILED"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// Translation errors never reach a caller; the code labels logs and metrics.
const (
	ErrCodeTranslationFailed  ErrorCode = "TRANSLATION_FAILED"
	ErrCodeTranslationTLS     ErrorCode = "TRANSLATION_TLS_ERROR"
	ErrCodeTranslationTimeout ErrorCode = "TRANSLATION_TIMEOUT"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Details)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a key/value that is logged alongside the error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

func newError(code ErrorCode, message string, cause error) *StandardError {
	e := &StandardError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// NewInvalidJSONError is returned when the request body is not JSON.
func NewInvalidJSONError(cause error) *StandardError {
	return newError(ErrCodeInvalidJSON, "Invalid JSON", cause)
}

// NewMissingFieldsError is returned when the body carries no "fields" key.
func NewMissingFieldsError() *StandardError {
	return newError(ErrCodeMissingFields, "JSON must contain 'fields' object", nil)
}

// NewInvalidFieldsError is returned when "fields" is not a JSON object.
func NewInvalidFieldsError() *StandardError {
	return newError(ErrCodeInvalidFields, "'fields' must be an object/dictionary", nil)
}

// NewTemplateNotFoundError reports a template missing from disk.
func NewTemplateNotFoundError(path string) *StandardError {
	e := newError(ErrCodeTemplateNotFound, "Template not found", nil)
	e.Details = path
	return e.WithMetadata("templatePath", path)
}

// NewTemplateUnreadableError reports a template that is not a valid document container.
func NewTemplateUnreadableError(path string, cause error) *StandardError {
	e := newError(ErrCodeTemplateUnreadable, "Failed to open template as a .docx", cause)
	return e.WithMetadata("templatePath", path)
}

// NewTemplateOpenError reports that the renderer could not load the template.
func NewTemplateOpenError(path string, cause error) *StandardError {
	e := newError(ErrCodeTemplateOpenFailed, "Failed to open template for rendering", cause)
	return e.WithMetadata("templatePath", path)
}

// NewRenderError reports a substitution or serialisation failure.
func NewRenderError(cause error) *StandardError {
	return newError(ErrCodeRenderFailed, "Failed to render template", cause)
}

// NewTranslationError classifies a translator failure for logging.
func NewTranslationError(code ErrorCode, cause error) *StandardError {
	return newError(code, "Translation failed; returning original text", cause)
}

// NewInternalError wraps anything unexpected.
func NewInternalError(cause error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", cause)
}

// Is reports whether err is (or wraps) a StandardError with the given code.
func Is(err error, code ErrorCode) bool {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code == code
	}
	return false
}

// As normalises err into a StandardError, wrapping it as INTERNAL_ERROR if needed.
func As(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// HTTPStatus maps an error code to the response status of the fill endpoint.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidJSON, ErrCodeMissingFields, ErrCodeInvalidFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// IsClientError reports whether the code is caused by the caller's input.
func IsClientError(code ErrorCode) bool {
	return HTTPStatus(code) < http.StatusInternalServerError
}

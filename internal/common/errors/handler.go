// internal/common/errors/handler.go
package errors

import (
	"net/http"
)

// ErrorHandler turns pipeline errors into plain-text HTTP responses.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleHTTPError normalises err, logs it and writes the response. It returns
// the normalised error so callers can record metrics against its code.
func (h *ErrorHandler) HandleHTTPError(w http.ResponseWriter, err error) *StandardError {
	stdErr := As(err)
	status := HTTPStatus(stdErr.Code)

	h.logError(stdErr, status)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(ResponseBody(stdErr)))

	return stdErr
}

// ResponseBody is the text returned to the caller. Client errors carry only the
// message; template and processing failures surface the underlying detail.
func ResponseBody(e *StandardError) string {
	switch {
	case IsClientError(e.Code):
		return e.Message
	case e.Code == ErrCodeTemplateNotFound:
		return e.Error()
	default:
		return "Processing error: " + e.Error()
	}
}

func (h *ErrorHandler) logError(stdErr *StandardError, status int) {
	fields := map[string]interface{}{
		"errorCode":    stdErr.Code,
		"errorMessage": stdErr.Message,
		"errorDetails": stdErr.Details,
		"status":       status,
		"timestamp":    stdErr.Timestamp,
	}
	for k, v := range stdErr.Metadata {
		fields[k] = v
	}

	if IsClientError(stdErr.Code) {
		h.logger.Warn("request rejected", fields)
		return
	}
	h.logger.Error("request failed", fields)
}

// internal/workers/form/fill-word/handler.go
package fillword

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	apperrors "canara-formfill/internal/common/errors"
	"canara-formfill/internal/common/logger"
	"canara-formfill/internal/common/metrics"
	"canara-formfill/internal/common/observability"
	"canara-formfill/internal/common/validation"
	extractplaceholders "canara-formfill/internal/workers/document/extract-placeholders"
	renderdocument "canara-formfill/internal/workers/document/render-document"
	buildcontext "canara-formfill/internal/workers/form/build-context"
)

const (
	TaskType = "fill-word"

	RequestIDHeader = "X-Request-ID"
)

type PlaceholderExtractor interface {
	Execute(ctx context.Context, input *extractplaceholders.Input) (*extractplaceholders.Output, error)
}

type ContextBuilder interface {
	Execute(ctx context.Context, input *buildcontext.Input) *buildcontext.Output
}

type DocumentRenderer interface {
	Execute(ctx context.Context, input *renderdocument.Input) (*renderdocument.Output, error)
}

// Handler serves the fill endpoint: validate, extract, build context, render.
type Handler struct {
	config    *Config
	extractor PlaceholderExtractor
	builder   ContextBuilder
	renderer  DocumentRenderer
	logger    logger.Logger
	obs       *observability.Observability
}

func NewHandler(
	config *Config,
	extractor PlaceholderExtractor,
	builder ContextBuilder,
	renderer DocumentRenderer,
	log logger.Logger,
	obs *observability.Observability,
) *Handler {
	return &Handler{
		config:    config,
		extractor: extractor,
		builder:   builder,
		renderer:  renderer,
		logger: log.With(map[string]interface{}{
			"taskType": TaskType,
		}),
		obs: obs,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	metrics.RequestsActive.Inc()
	defer metrics.RequestsActive.Dec()

	requestID := r.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set(RequestIDHeader, requestID)

	log := h.logger.With(map[string]interface{}{"requestId": requestID})
	ctx := logger.IntoContext(r.Context(), log)
	log.Info("Processing fill_word request", map[string]interface{}{
		"method": r.Method,
		"path":   r.URL.Path,
	})

	status := h.serve(ctx, w, r, log)

	metrics.FillRequestsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
	h.obs.RecordRequest(ctx, strconv.Itoa(status), time.Since(start))
	log.Info("fill_word request completed", map[string]interface{}{
		"status":     status,
		"durationMs": time.Since(start).Milliseconds(),
	})
}

func (h *Handler) serve(ctx context.Context, w http.ResponseWriter, r *http.Request, log logger.Logger) int {
	fail := func(err error) int {
		stdErr := apperrors.NewErrorHandler(log).HandleHTTPError(w, err)
		metrics.FillRequestsFailed.WithLabelValues(string(stdErr.Code)).Inc()
		return apperrors.HTTPStatus(stdErr.Code)
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.config.MaxBodyBytes))
	if err != nil {
		return fail(apperrors.NewInvalidJSONError(err))
	}

	input, err := ParseRequest(body)
	if err != nil {
		return fail(err)
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		return fail(err)
	}

	w.Header().Set("Content-Type", ContentTypeDocx)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(output.Document)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(output.Document); err != nil {
		log.Warn("writing response body failed", map[string]interface{}{"error": err.Error()})
	}
	return http.StatusOK
}

// ParseRequest decodes and validates a fill request body. Numbers are kept as
// json.Number so they render exactly as the caller wrote them.
func ParseRequest(body []byte) (*Input, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, apperrors.NewInvalidJSONError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, apperrors.NewInvalidJSONError(errors.New("unexpected data after JSON value"))
	}

	result, err := validation.Validate(validation.FillRequestSchema, doc)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if !result.Valid {
		if result.HasFieldError("fields") {
			return nil, apperrors.NewInvalidFieldsError()
		}
		return nil, apperrors.NewMissingFieldsError()
	}

	fields, _ := doc.(map[string]interface{})["fields"].(map[string]interface{})
	return &Input{Fields: fields}, nil
}

// Execute runs the pipeline for an already validated request.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	log := logger.FromContext(ctx, h.logger)
	path := h.config.TemplatePath

	_, statErr := os.Stat(path)
	log.Info("Looking for template", map[string]interface{}{
		"templatePath": path,
		"exists":       statErr == nil,
	})
	if statErr != nil {
		return nil, apperrors.NewTemplateNotFoundError(path)
	}

	stage := time.Now()
	extracted, err := h.extractor.Execute(ctx, &extractplaceholders.Input{TemplatePath: path})
	observeStage("extract", stage)
	if err != nil {
		return nil, err
	}

	stage = time.Now()
	built := h.builder.Execute(ctx, &buildcontext.Input{
		Placeholders: extracted.Placeholders,
		Fields:       buildcontext.NormalizeFields(input.Fields),
	})
	observeStage("build_context", stage)

	stage = time.Now()
	rendered, err := h.renderer.Execute(ctx, &renderdocument.Input{
		TemplatePath: path,
		Context:      built.Context,
	})
	observeStage("render", stage)
	if err != nil {
		return nil, err
	}

	return &Output{
		Document:     rendered.Document,
		Filename:     h.config.OutputFilename,
		Placeholders: extracted.Placeholders,
	}, nil
}

func observeStage(name string, start time.Time) {
	metrics.StageDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
}

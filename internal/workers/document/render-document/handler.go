// internal/workers/document/render-document/handler.go
package renderdocument

import (
	"context"
	"fmt"
	"os"

	"canara-formfill/internal/common/docx"
	apperrors "canara-formfill/internal/common/errors"
	"canara-formfill/internal/common/logger"
)

const (
	TaskType = "render-document"
)

type Handler struct {
	config *Config
	logger logger.Logger
	// save writes the rendered document; replaced in tests to fail mid-render.
	save func(doc *docx.Document, path string) error
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.With(map[string]interface{}{
			"taskType": TaskType,
		}),
		save: func(doc *docx.Document, path string) error {
			return doc.Save(path)
		},
	}
}

// Execute substitutes input.Context into a fresh copy of the template and
// returns the resulting document bytes. The intermediate file is always removed.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	path := h.config.TemplatePath
	if input.TemplatePath != "" {
		path = input.TemplatePath
	}
	log := logger.FromContext(ctx, h.logger)

	doc, err := docx.Open(path)
	if err != nil {
		log.Error("template failed to open for rendering", map[string]interface{}{
			"templatePath": path,
			"error":        err.Error(),
		})
		return nil, apperrors.NewTemplateOpenError(path, err)
	}
	defer doc.Close()

	if err := doc.Render(input.Context); err != nil {
		log.Error("template render failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, apperrors.NewRenderError(err)
	}

	data, err := h.writeAndRead(doc)
	if err != nil {
		log.Error("rendered document could not be saved", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, apperrors.NewRenderError(err)
	}

	log.Debug("document rendered", map[string]interface{}{
		"bytes": len(data),
	})
	return &Output{Document: data, Size: len(data)}, nil
}

func (h *Handler) writeAndRead(doc *docx.Document) ([]byte, error) {
	tmp, err := os.CreateTemp(h.config.TempDir, "filled-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := h.save(doc, tmpPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read rendered document: %w", err)
	}
	return data, nil
}

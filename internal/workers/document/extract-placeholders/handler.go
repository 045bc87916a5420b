// internal/workers/document/extract-placeholders/handler.go
package extractplaceholders

import (
	"context"
	"errors"
	"os"

	"canara-formfill/internal/common/docx"
	apperrors "canara-formfill/internal/common/errors"
	"canara-formfill/internal/common/logger"
)

const (
	TaskType = "extract-placeholders"
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.With(map[string]interface{}{
			"taskType": TaskType,
		}),
	}
}

// Execute lists the distinct placeholder identifiers of the template's body
// paragraphs and table cells, sorted.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	path := h.config.TemplatePath
	if input != nil && input.TemplatePath != "" {
		path = input.TemplatePath
	}
	log := logger.FromContext(ctx, h.logger)

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.NewTemplateNotFoundError(path)
		}
		return nil, apperrors.NewTemplateUnreadableError(path, err)
	}

	doc, err := docx.Open(path)
	if err != nil {
		log.Error("Failed to open template as a .docx", map[string]interface{}{
			"templatePath": path,
			"error":        err.Error(),
		})
		return nil, apperrors.NewTemplateUnreadableError(path, err)
	}
	defer doc.Close()

	names, err := doc.Placeholders()
	if err != nil {
		log.Error("Failed to parse template", map[string]interface{}{
			"templatePath": path,
			"error":        err.Error(),
		})
		return nil, apperrors.NewTemplateUnreadableError(path, err)
	}

	log.Info("Placeholders found", map[string]interface{}{
		"placeholders": names,
		"count":        len(names),
	})

	return &Output{TemplatePath: path, Placeholders: names}, nil
}

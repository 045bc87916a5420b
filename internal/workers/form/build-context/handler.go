// internal/workers/form/build-context/handler.go
package buildcontext

import (
	"context"

	"canara-formfill/internal/common/logger"
)

const (
	TaskType = "build-context"
)

// TextTranslator is satisfied by the translate-text handler.
type TextTranslator interface {
	Translate(ctx context.Context, text string) string
}

type Handler struct {
	config     *Config
	translator TextTranslator
	logger     logger.Logger
}

func NewHandler(config *Config, translator TextTranslator, log logger.Logger) *Handler {
	return &Handler{
		config:     config,
		translator: translator,
		logger: log.With(map[string]interface{}{
			"taskType": TaskType,
		}),
	}
}

// Execute maps every placeholder to its translated caller value. Absent and
// empty values map to "" without a translator call; caller keys with no
// placeholder are dropped.
func (h *Handler) Execute(ctx context.Context, input *Input) *Output {
	result := make(map[string]string, len(input.Placeholders))
	translated := 0

	for _, name := range input.Placeholders {
		raw := input.Fields[name]
		if raw == "" {
			result[name] = ""
			continue
		}
		result[name] = h.translator.Translate(ctx, raw)
		translated++
	}

	logger.FromContext(ctx, h.logger).Info("Rendering template with context", map[string]interface{}{
		"context":    Preview(result, h.config.PreviewLength),
		"translated": translated,
	})

	return &Output{Context: result, Translated: translated}
}

// Preview returns a copy of values with every entry longer than limit runes
// cut to limit runes followed by "...".
func Preview(values map[string]string, limit int) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		runes := []rune(v)
		if limit > 0 && len(runes) > limit {
			v = string(runes[:limit]) + "..."
		}
		out[k] = v
	}
	return out
}

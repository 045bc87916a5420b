package fillword

import (
	"canara-formfill/internal/common/config"
	"canara-formfill/internal/common/logger"
	"canara-formfill/internal/common/observability"
	extractplaceholders "canara-formfill/internal/workers/document/extract-placeholders"
	renderdocument "canara-formfill/internal/workers/document/render-document"
	buildcontext "canara-formfill/internal/workers/form/build-context"
	translatetext "canara-formfill/internal/workers/translation/translate-text"
)

// Build wires the full pipeline from configuration. Used by the function
// server and the CLI so both run identical stages.
func Build(cfg *config.Config, log logger.Logger, obs *observability.Observability) *Handler {
	translator := translatetext.NewHandler(translatetext.LoadConfig(&cfg.Translator), log, obs)

	return NewHandler(
		LoadConfig(cfg),
		extractplaceholders.NewHandler(extractplaceholders.LoadConfig(&cfg.Template), log),
		buildcontext.NewHandler(buildcontext.LoadConfig(), translator, log),
		renderdocument.NewHandler(renderdocument.LoadConfig(&cfg.Template), log),
		log,
		obs,
	)
}

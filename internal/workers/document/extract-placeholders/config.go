// internal/workers/document/extract-placeholders/config.go
package extractplaceholders

import "canara-formfill/internal/common/config"

type Config struct {
	TemplatePath string
}

func LoadConfig(cfg *config.TemplateConfig) *Config {
	return &Config{TemplatePath: cfg.Path}
}

// internal/workers/document/render-document/config.go
package renderdocument

import "canara-formfill/internal/common/config"

type Config struct {
	TemplatePath string
	// TempDir holds the per-request output file; empty means os.TempDir().
	TempDir string
}

func LoadConfig(cfg *config.TemplateConfig) *Config {
	return &Config{
		TemplatePath: cfg.Path,
		TempDir:      cfg.TempDir,
	}
}

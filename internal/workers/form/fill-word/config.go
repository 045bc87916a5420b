// internal/workers/form/fill-word/config.go
package fillword

import "canara-formfill/internal/common/config"

type Config struct {
	TemplatePath   string
	OutputFilename string
	MaxBodyBytes   int64
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{
		TemplatePath:   cfg.Template.Path,
		OutputFilename: cfg.Template.OutputFilename,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
	}
	if c.OutputFilename == "" {
		c.OutputFilename = "filled_canara_bank.docx"
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 1 << 20
	}
	return c
}

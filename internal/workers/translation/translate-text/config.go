// internal/workers/translation/translate-text/config.go
package translatetext

import (
	"strings"
	"time"

	"canara-formfill/internal/common/config"
	commonhttp "canara-formfill/internal/common/http"
)

type Config struct {
	Endpoint       string
	Key            string
	Region         string
	APIVersion     string
	TargetLanguage string
	Timeout        time.Duration
	TLS            commonhttp.TLSOptions
}

func LoadConfig(cfg *config.TranslatorConfig) *Config {
	c := &Config{
		APIVersion:     "3.0",
		TargetLanguage: "en",
		Timeout:        10 * time.Second,
	}
	if cfg == nil {
		return c
	}

	c.Endpoint = NormalizeEndpoint(cfg.Endpoint)
	c.Key = strings.TrimSpace(cfg.Key)
	c.Region = strings.TrimSpace(cfg.Region)
	c.TLS = commonhttp.TLSOptions{SkipVerify: cfg.SkipSSLVerify, CABundle: cfg.CABundle}
	if cfg.APIVersion != "" {
		c.APIVersion = cfg.APIVersion
	}
	if cfg.TargetLanguage != "" {
		c.TargetLanguage = cfg.TargetLanguage
	}
	if cfg.Timeout > 0 {
		c.Timeout = config.GetDuration(cfg.Timeout)
	}
	return c
}

// Enabled reports whether the translator can be called at all.
func (c *Config) Enabled() bool {
	return c.Endpoint != "" && c.Key != ""
}

// NormalizeEndpoint trims raw and appends /translate unless the path already
// names it. An empty endpoint stays empty.
func NormalizeEndpoint(raw string) string {
	ep := strings.TrimSpace(raw)
	if ep == "" {
		return ""
	}
	if strings.Contains(ep, "/translate") {
		return ep
	}
	return strings.TrimRight(ep, "/") + "/translate"
}

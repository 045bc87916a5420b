// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Template   TemplateConfig   `mapstructure:"template"`
	Translator TranslatorConfig `mapstructure:"translator"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds the HTTP listener used by the Functions custom handler.
type ServerConfig struct {
	Port            int    `mapstructure:"port"`
	Route           string `mapstructure:"route"`
	MaxBodyBytes    int64  `mapstructure:"max_body_bytes"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

// TemplateConfig points at the single co-located Word template.
type TemplateConfig struct {
	Path           string `mapstructure:"path"`
	OutputFilename string `mapstructure:"output_filename"`
	TempDir        string `mapstructure:"temp_dir"`
}

// TranslatorConfig holds the Microsoft Translator REST settings.
type TranslatorConfig struct {
	Key            string `mapstructure:"key"`
	Region         string `mapstructure:"region"`
	Endpoint       string `mapstructure:"endpoint"`
	CABundle       string `mapstructure:"ca_bundle"`
	SkipSSLVerify  bool   `mapstructure:"-"`
	Timeout        int    `mapstructure:"timeout"` // milliseconds
	APIVersion     string `mapstructure:"api_version"`
	TargetLanguage string `mapstructure:"target_language"`
}

// Enabled reports whether both an endpoint and a subscription key are configured.
func (t TranslatorConfig) Enabled() bool {
	return t.Endpoint != "" && t.Key != ""
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

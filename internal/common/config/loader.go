// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml (optional), the per-environment overlay and the
// process environment. Environment variables win; TRANSLATOR_KEY maps to translator.key.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // overlay is optional

	return build(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return build(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults registers every key so AutomaticEnv overrides reach Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "canara-formfill")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.route", "/api/fill_word_main")
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.shutdown_timeout", 30000)

	v.SetDefault("template.path", filepath.Join("fill_word_main", "Canara_Bank_Template.docx"))
	v.SetDefault("template.output_filename", "filled_canara_bank.docx")
	v.SetDefault("template.temp_dir", "")

	v.SetDefault("translator.key", "")
	v.SetDefault("translator.region", "")
	v.SetDefault("translator.endpoint", "")
	v.SetDefault("translator.ca_bundle", "")
	v.SetDefault("translator.skip_ssl_verify", "false")
	v.SetDefault("translator.timeout", 10000)
	v.SetDefault("translator.api_version", "3.0")
	v.SetDefault("translator.target_language", "en")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func build(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// "yes" is accepted, so the flag is parsed by hand rather than by mapstructure.
	cfg.Translator.SkipSSLVerify = parseFlag(v.GetString("translator.skip_ssl_verify"))

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig applies variables that do not follow the section_key naming.
func overrideEmptyConfig(cfg *Config) {
	// The Functions host tells a custom handler where to listen.
	if val := os.Getenv("FUNCTIONS_CUSTOMHANDLER_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			cfg.Server.Port = port
		}
	}
}

// applyDefaults fills zero values left by an explicit but incomplete config file.
func applyDefaults(cfg *Config) {
	cfg.Translator.Key = strings.TrimSpace(cfg.Translator.Key)
	cfg.Translator.Endpoint = strings.TrimSpace(cfg.Translator.Endpoint)
	cfg.Translator.CABundle = strings.TrimSpace(cfg.Translator.CABundle)

	if cfg.Translator.Timeout <= 0 {
		cfg.Translator.Timeout = 10000
	}
	if cfg.Translator.APIVersion == "" {
		cfg.Translator.APIVersion = "3.0"
	}
	if cfg.Translator.TargetLanguage == "" {
		cfg.Translator.TargetLanguage = "en"
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Route == "" {
		cfg.Server.Route = "/api/fill_word_main"
	}
	if cfg.Server.MaxBodyBytes <= 0 {
		cfg.Server.MaxBodyBytes = 1 << 20
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = 30000
	}

	if cfg.Template.OutputFilename == "" {
		cfg.Template.OutputFilename = "filled_canara_bank.docx"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Template.Path == "" {
		return fmt.Errorf("template.path is required")
	}
	if !strings.HasSuffix(strings.ToLower(cfg.Template.OutputFilename), ".docx") {
		return fmt.Errorf("template.output_filename must end in .docx, got %q", cfg.Template.OutputFilename)
	}
	if strings.ContainsAny(cfg.Template.OutputFilename, "\"\r\n/\\") {
		return fmt.Errorf("template.output_filename contains invalid characters")
	}
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", cfg.Server.Port)
	}
	if !strings.HasPrefix(cfg.Server.Route, "/") {
		return fmt.Errorf("server.route must start with '/'")
	}
	return nil
}

// parseFlag mirrors the truthy spellings accepted for TRANSLATOR_SKIP_SSL_VERIFY.
func parseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// internal/workers/form/build-context/config.go
package buildcontext

type Config struct {
	// PreviewLength caps each value in the logged context preview.
	PreviewLength int
}

func LoadConfig() *Config {
	return &Config{
		PreviewLength: 40,
	}
}

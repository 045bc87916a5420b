// internal/workers/form/build-context/models.go
package buildcontext

type Input struct {
	Placeholders []string          `json:"placeholders"`
	Fields       map[string]string `json:"fields"`
}

type Output struct {
	Context map[string]string `json:"context"`
	// Translated counts the values sent to the translator.
	Translated int `json:"translated"`
}

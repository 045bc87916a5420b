// internal/workers/document/extract-placeholders/models.go
package extractplaceholders

type Input struct {
	// TemplatePath overrides the configured template when set.
	TemplatePath string `json:"templatePath,omitempty"`
}

type Output struct {
	TemplatePath string   `json:"templatePath"`
	Placeholders []string `json:"placeholders"`
}

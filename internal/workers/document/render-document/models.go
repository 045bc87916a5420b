// internal/workers/document/render-document/models.go
package renderdocument

type Input struct {
	TemplatePath string            `json:"templatePath,omitempty"`
	Context      map[string]string `json:"context"`
}

type Output struct {
	Document []byte `json:"-"`
	Size     int    `json:"size"`
}

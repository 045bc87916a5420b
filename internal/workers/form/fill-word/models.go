// internal/workers/form/fill-word/models.go
package fillword

const ContentTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Input is the validated request body.
type Input struct {
	Fields map[string]interface{} `json:"fields"`
}

type Output struct {
	Document     []byte   `json:"-"`
	Filename     string   `json:"filename"`
	Placeholders []string `json:"placeholders"`
}

package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Error codes reported in ValidationError.Code.
const (
	CodeRequired    = "REQUIRED_FIELD_MISSING"
	CodeInvalidType = "INVALID_TYPE"
	CodeOther       = "SCHEMA_VIOLATION"
)

// RootField is the Field value for errors that concern the document itself.
const RootField = "(root)"

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// FillRequestSchema describes the fill request body: an object carrying a
// "fields" object. Field values themselves are not constrained.
var FillRequestSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"fields"},
	"properties": map[string]interface{}{
		"fields": map[string]interface{}{"type": "object"},
	},
}

// Validate checks document against schema. Both are Go values as produced by
// encoding/json. An error is returned only when the schema itself is unusable.
func Validate(schema map[string]interface{}, document interface{}) (*ValidationResult, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema),
		gojsonschema.NewGoLoader(document),
	)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    errorCode(desc.Type()),
		})
	}
	return out, nil
}

func errorCode(kind string) string {
	switch kind {
	case "required":
		return CodeRequired
	case "invalid_type":
		return CodeInvalidType
	default:
		return CodeOther
	}
}

// HasFieldError reports whether any error targets field.
func (r *ValidationResult) HasFieldError(field string) bool {
	for _, e := range r.Errors {
		if e.Field == field {
			return true
		}
	}
	return false
}

package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string) interface{} {
	t.Helper()
	var v interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &v))
	return v
}

func TestValidate_FillRequest(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		valid      bool
		fieldError bool
	}{
		{"object fields", `{"fields": {"name": "Ravi"}}`, true, false},
		{"empty fields object", `{"fields": {}}`, true, false},
		{"extra keys allowed", `{"fields": {}, "lang": "kn"}`, true, false},
		{"missing fields", `{"other": 1}`, false, false},
		{"empty body object", `{}`, false, false},
		{"body is an array", `[{"fields": {}}]`, false, false},
		{"fields is a string", `{"fields": "not-an-object"}`, false, true},
		{"fields is an array", `{"fields": ["a"]}`, false, true},
		{"fields is null", `{"fields": null}`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Validate(FillRequestSchema, decode(t, tt.body))
			require.NoError(t, err)

			assert.Equal(t, tt.valid, result.Valid)
			assert.Equal(t, tt.fieldError, result.HasFieldError("fields"))
			if !tt.valid {
				assert.NotEmpty(t, result.Errors)
			}
		})
	}
}

func TestValidate_ErrorCodes(t *testing.T) {
	result, err := Validate(FillRequestSchema, decode(t, `{}`))
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, CodeRequired, result.Errors[0].Code)
	assert.Equal(t, RootField, result.Errors[0].Field)

	result, err = Validate(FillRequestSchema, decode(t, `{"fields": 3}`))
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, CodeInvalidType, result.Errors[0].Code)
	assert.Equal(t, "fields", result.Errors[0].Field)
}

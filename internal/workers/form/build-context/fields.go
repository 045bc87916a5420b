package buildcontext

import (
	"encoding/json"
	"strconv"
)

// NormalizeFields turns decoded JSON field values into strings. Strings are
// kept, numbers use their shortest decimal form, booleans print as true/false,
// null becomes empty and arrays or objects keep their compact JSON encoding.
func NormalizeFields(fields map[string]interface{}) map[string]string {
	out := make(map[string]string, len(fields))
	for key, value := range fields {
		out[key] = normalizeValue(value)
	}
	return out
}

func normalizeValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}

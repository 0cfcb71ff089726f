package analyses

import (
	"encoding/json"
	"strings"
)

// ParseModelOutput decodes a model reply into a JSON object.
// It tries the whole text first, then the span from the first '{' to the last '}'.
// Anything else yields an empty map.
func ParseModelOutput(raw string) map[string]any {
	if obj, ok := decodeObject(raw); ok {
		return obj
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		if obj, ok := decodeObject(raw[start : end+1]); ok {
			return obj
		}
	}
	return map[string]any{}
}

func decodeObject(s string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// Normalize turns a raw model reply into a Result. It never fails.
func Normalize(raw string) Result {
	return NewResultFromMap(ParseModelOutput(raw))
}

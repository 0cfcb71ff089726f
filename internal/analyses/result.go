package analyses

import (
	"encoding/json"
	"strconv"

	"ats-analyzer/internal/llm"
)

const (
	DefaultMatchPercentage = "N/A"
	DefaultProfileSummary  = "No summary provided."
)

// Result is the normalized analysis shown to the user.
type Result struct {
	MatchPercentage string   `json:"matchPercentage"`
	MissingKeywords []string `json:"missingKeywords"`
	ProfileSummary  string   `json:"profileSummary"`

	// Defaulted names the fields that were absent from the model reply.
	Defaulted []string `json:"-"`
}

// Degraded reports whether any field fell back to its default.
func (r Result) Degraded() bool {
	return len(r.Defaulted) > 0
}

// NewResultFromMap builds a fully populated Result from a parsed model reply.
func NewResultFromMap(m map[string]any) Result {
	res := Result{
		MatchPercentage: DefaultMatchPercentage,
		MissingKeywords: []string{},
		ProfileSummary:  DefaultProfileSummary,
	}

	if match, ok := matchValue(m[llm.KeyMatch]); ok {
		res.MatchPercentage = match
	} else {
		res.Defaulted = append(res.Defaulted, llm.KeyMatch)
	}

	if raw, ok := m[llm.KeyMissingKeywords].([]any); ok {
		for _, item := range raw {
			if kw, ok := item.(string); ok {
				res.MissingKeywords = append(res.MissingKeywords, kw)
			}
		}
	} else {
		res.Defaulted = append(res.Defaulted, llm.KeyMissingKeywords)
	}

	if summary, ok := m[llm.KeyProfileSummary].(string); ok {
		res.ProfileSummary = summary
	} else {
		res.Defaulted = append(res.Defaulted, llm.KeyProfileSummary)
	}

	return res
}

func matchValue(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case json.Number:
		return val.String(), true
	default:
		return "", false
	}
}

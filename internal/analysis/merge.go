package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nhle/email-insights/internal/model"
)

// mergeResponse reconciles the model's raw output onto the default
// record. The output is parsed strictly as JSON; anything that is not
// a JSON object becomes the summary verbatim. Only known schema keys
// are copied, missing keys keep their defaults, so the result is
// always fully populated.
func mergeResponse(record model.AnalysisRecord, output string) model.AnalysisRecord {
	trimmed := strings.TrimSpace(output)

	// Models often fence their JSON despite instructions.
	trimmed = stripCodeFence(trimmed)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &fields); err != nil || fields == nil {
		if strings.TrimSpace(output) != "" {
			record.Summary = strings.TrimSpace(output)
		}
		return record
	}

	if s, ok := stringField(fields, "summary"); ok {
		record.Summary = s
	}
	if raw, ok := fields["actions"]; ok {
		if actions, ok := coerceActions(raw); ok {
			record.Actions = actions
		}
	}
	if s, ok := stringField(fields, "tone"); ok {
		record.Tone = model.Tone(strings.ToLower(s))
	}
	if s, ok := stringField(fields, "priority"); ok {
		record.Priority = model.NormalizePriority(s)
	}
	if s, ok := stringField(fields, "category"); ok {
		record.Category = model.Category(strings.ToLower(s))
	}

	return record
}

// stringField extracts a non-empty string value for the given key.
func stringField(fields map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := fields[key]
	if !ok {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

// coerceActions turns the actions value into a slice of strings,
// wrapping a scalar into a single-element slice.
func coerceActions(raw json.RawMessage) ([]string, bool) {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, true
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if strings.TrimSpace(single) == "" {
			return []string{}, true
		}
		return []string{single}, true
	}

	// Mixed-type array: render each element as text.
	var mixed []any
	if err := json.Unmarshal(raw, &mixed); err == nil {
		actions := make([]string, 0, len(mixed))
		for _, item := range mixed {
			actions = append(actions, fmt.Sprint(item))
		}
		return actions, true
	}

	return nil, false
}

// stripCodeFence removes a surrounding markdown code fence, if any.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

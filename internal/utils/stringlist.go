package utils

import (
	"encoding/json"
	"strings"
)

// FlexibleStringList accepts either a JSON array of strings or one of the
// historical string encodings (JSON-in-a-string, comma-delimited, bare
// value) and always decodes to a clean slice.
type FlexibleStringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexibleStringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*f = list
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*f = NormalizeStringList(raw)
	return nil
}

// NormalizeStringList coerces the historical string encodings of list
// fields (images, sizes, colors) into a clean slice. Accepted inputs are a
// JSON-encoded array, a comma-delimited list, or a single bare value.
func NormalizeStringList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if strings.HasPrefix(raw, "[") {
		var parsed []string
		if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
			return parsed
		}
	}

	if strings.Contains(raw, ",") {
		parts := strings.Split(raw, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	}

	return []string{raw}
}

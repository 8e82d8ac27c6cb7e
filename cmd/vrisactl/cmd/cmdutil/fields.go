package cmdutil

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParseFields builds a request body from an optional JSON document and repeated
// key=value pairs. The document may be inline or "@path" to read a file; pairs
// are applied on top of it and the last value for a key wins.
func ParseFields(data string, pairs []string) (map[string]any, []string, error) {
	fields := map[string]any{}
	warnings := []string{}

	data = strings.TrimSpace(data)
	if data != "" {
		raw := []byte(data)
		if path, ok := strings.CutPrefix(data, "@"); ok {
			b, err := os.ReadFile(path)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
			}
			raw = b
		}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, nil, fmt.Errorf("invalid --data (expected a JSON object): %w", err)
		}
	}

	seen := map[string]bool{}
	for _, raw := range pairs {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		key, val, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, nil, fmt.Errorf("invalid field format %q (expected key=value)", raw)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, nil, fmt.Errorf("field key cannot be empty (%q)", raw)
		}

		if seen[key] {
			warnings = append(warnings, fmt.Sprintf("duplicate field %q detected, last value wins", key))
		}
		seen[key] = true
		fields[key] = InferValue(strings.TrimSpace(val))
	}

	return fields, warnings, nil
}

// InferValue converts a flag value to a bool or number when it looks like one.
func InferValue(raw string) any {
	// ParseBool would also take "1" and "0", which are ids here.
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	}

	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}

	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}

	return raw
}

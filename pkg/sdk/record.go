package sdk

import (
	"strconv"
)

// Record is a backend resource (station, sensor, measurement, report,
// institution, maintenance log, ...) passed through exactly as the API returned
// it. The SDK imposes no schema beyond the identifier used for navigation.
type Record map[string]any

// ID returns the record identifier, or 0 when absent or not numeric.
func (r Record) ID() int64 {
	id, _ := toInt64(r["id"])
	return id
}

// String returns a field rendered as a string, or "" when absent.
func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Float returns a numeric field.
func (r Record) Float(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

/**
 * @description
 * Loosely-typed record returned by a Caspio table query, with typed accessors
 * for the value shapes the provider actually emits: strings, float64 numbers,
 * booleans, and ISO-8601 datetimes serialized as strings.
 */
package caspio

import (
	"strings"
	"time"
)

// Record is one row of a table query result.
type Record map[string]any

// Str returns the named field as a trimmed string, or "" when absent or not
// a string.
func (r Record) Str(field string) string {
	if v, ok := r[field].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// Num returns the named field as a float64, or 0 when absent. Caspio encodes
// every numeric column as a JSON number, which decodes to float64.
func (r Record) Num(field string) float64 {
	switch v := r[field].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

// Bool returns the named field as a boolean. Yes/No columns arrive as JSON
// booleans; legacy exports sometimes carry "Y"/"1" strings, which also count.
func (r Record) Bool(field string) bool {
	switch v := r[field].(type) {
	case bool:
		return v
	case string:
		s := strings.TrimSpace(strings.ToUpper(v))
		return s == "Y" || s == "YES" || s == "TRUE" || s == "1"
	case float64:
		return v != 0
	default:
		return false
	}
}

// dateLayouts covers the datetime shapes Caspio emits for date columns.
var dateLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
	"1/2/2006",
}

// Date returns the named field parsed as a local time, or nil when the field
// is absent, blank, or unparseable.
func (r Record) Date(field string) *time.Time {
	s := r.Str(field)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t
		}
	}
	return nil
}

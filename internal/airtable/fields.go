// internal/airtable/fields.go
// Typed accessors for raw record fields. Airtable hands back untyped
// JSON values; repositories use these helpers so the domain layer never
// touches a map[string]interface{} directly.

package airtable

import "time"

// StringField returns the field as a string, or "" when absent or not a string.
func StringField(fields map[string]interface{}, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}

// BoolField returns the field as a bool. Airtable checkboxes are omitted
// entirely when unchecked, so a missing field reads as false.
func BoolField(fields map[string]interface{}, key string) bool {
	if v, ok := fields[key].(bool); ok {
		return v
	}
	return false
}

// BoolPtrField distinguishes an absent checkbox from an explicit false.
func BoolPtrField(fields map[string]interface{}, key string) *bool {
	if v, ok := fields[key].(bool); ok {
		return &v
	}
	return nil
}

// FloatField returns the field as a float64, or 0 when absent.
func FloatField(fields map[string]interface{}, key string) float64 {
	if v, ok := fields[key].(float64); ok {
		return v
	}
	return 0
}

// StringSliceField returns a multi-select field as a string slice.
func StringSliceField(fields map[string]interface{}, key string) []string {
	raw, ok := fields[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// TimeField parses an ISO 8601 datetime field. Returns the zero time
// when the field is absent or unparseable.
func TimeField(fields map[string]interface{}, key string) time.Time {
	s := StringField(fields, key)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

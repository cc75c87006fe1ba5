// Package schemautil normalizes the "type" keyword of decoded schemas.
//
// OAS 3.0 writes a single string type; OAS 3.1 allows an array such as
// ["string", "null"]. The helpers here accept either decoded form.
package schemautil

// TypeNull is the JSON Schema null type.
const TypeNull = "null"

// Types returns the type(s) of a decoded "type" value, handling both
// string (OAS 3.0) and array (OAS 3.1+) representations.
//
// Examples:
//   - "string" returns ["string"]
//   - ["string", "null"] returns ["string", "null"]
func Types(v any) []string {
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []any:
		result := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok && s != "" {
				result = append(result, s)
			}
		}
		return result
	case []string:
		return t
	}
	return nil
}

// PrimaryType returns the first non-null type. A type list of only "null"
// yields "null". Returns an empty string when there is no type.
func PrimaryType(v any) string {
	types := Types(v)
	for _, t := range types {
		if t != TypeNull {
			return t
		}
	}
	if len(types) > 0 {
		return types[0]
	}
	return ""
}

// IsNullable checks if the type list includes "null".
func IsNullable(v any) bool {
	for _, t := range Types(v) {
		if t == TypeNull {
			return true
		}
	}
	return false
}

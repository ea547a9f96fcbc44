// Package validation implements the required-field presence check applied
// before any write.
package validation

import "time"

// Result reports the outcome of a presence check. RequiredFields maps each
// checked field name to whether it was present in the payload.
type Result struct {
	IsValid        bool            `json:"isValid"`
	RequiredFields map[string]bool `json:"requiredFields"`
}

// Fields maps required field names to the values submitted for them.
type Fields map[string]interface{}

// Require checks each field for presence and returns the enumerated result.
//
// Presence follows truthiness: an empty string or a zero number counts as
// missing. A required numeric field whose legitimate value is 0 is therefore
// indistinguishable from an absent one; callers relying on zero values need a
// pointer field instead. This mirrors the behavior the admin console expects
// and is intentionally left as-is.
func Require(fields Fields) Result {
	result := Result{
		IsValid:        true,
		RequiredFields: make(map[string]bool, len(fields)),
	}

	for name, value := range fields {
		present := isTruthy(value)
		result.RequiredFields[name] = present
		if !present {
			result.IsValid = false
		}
	}

	return result
}

func isTruthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case bool:
		return v
	case time.Time:
		return !v.IsZero()
	case *string:
		return v != nil && *v != ""
	case *int:
		return v != nil && *v != 0
	case *time.Time:
		return v != nil && !v.IsZero()
	default:
		return true
	}
}

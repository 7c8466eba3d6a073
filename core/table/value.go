package table

import (
	"fmt"
	"strconv"
)

// ValuesEqual reports whether two cell values are equal for diff purposes.
// A nil value and an empty string are treated as equal so that optional
// attributes absent on one side and empty on the other do not produce
// noise. Everything else is exact equality per value type.
func ValuesEqual(a, b any) bool {
	if isEmpty(a) && isEmpty(b) {
		return true
	}
	if isEmpty(a) || isEmpty(b) {
		return false
	}
	return a == b
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// FormatValue renders a cell value for display and key construction.
// nil renders as the empty string.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "Yes"
		}
		return "No"
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}

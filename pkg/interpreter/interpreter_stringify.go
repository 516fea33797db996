package interpreter

import (
	"math"
	"strconv"
	"strings"

	"manipula/interpreter-go/pkg/runtime"
)

// Stringify renders a value the way PRINT shows it. Strings print raw at the
// top level and quoted inside lists.
func Stringify(val runtime.Value) string {
	if s, ok := val.(runtime.StringValue); ok {
		return s.Val
	}
	return valueToString(val)
}

func valueToString(val runtime.Value) string {
	switch v := val.(type) {
	case runtime.StringValue:
		return "'" + v.Val + "'"
	case runtime.BoolValue:
		if v.Val {
			return "TRUE"
		}
		return "FALSE"
	case runtime.NumberValue:
		return FormatNumber(v.Val)
	case runtime.NullValue:
		return "NULL"
	case *runtime.ListValue:
		parts := make([]string, 0, len(v.Elements))
		for _, el := range v.Elements {
			parts = append(parts, valueToString(el))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		if val == nil {
			return "NULL"
		}
		return "[" + val.Kind().String() + "]"
	}
}

// FormatNumber prints integral values without a fractional part and others
// with the shortest exact representation.
func FormatNumber(f float64) string {
	if math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

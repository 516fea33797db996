package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var pyStringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// literal renders a scanned literal value in Python notation.
func literal(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "None", nil
	case bool:
		if val {
			return "True", nil
		}
		return "False", nil
	case float64:
		return formatNumber(val), nil
	case string:
		return quote(val), nil
	default:
		return "", fmt.Errorf("%w: literal %T", ErrUnsupportedNode, v)
	}
}

func quote(s string) string {
	return "'" + pyStringEscaper.Replace(s) + "'"
}

// formatNumber keeps integral values free of a fractional part so they stay
// ints in Python.
func formatNumber(v float64) string {
	if math.Abs(v) < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

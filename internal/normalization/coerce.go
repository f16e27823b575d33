package normalization

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Number is the permissive numeric cast used for nutrition fields: missing,
// null, unparsable and non-finite input all become 0.
func Number(v any) float64 {
	var f float64
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0
		}
		f = n
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = n
	case bool:
		if t {
			return 1
		}
		return 0
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// NonNegative is Number clamped at zero.
func NonNegative(v any) float64 {
	f := Number(v)
	if f < 0 {
		return 0
	}
	return f
}

// Int truncates Number toward zero.
func Int(v any) int {
	return int(Number(v))
}

// Text converts a scalar to a string. The bool is false for missing/null.
func Text(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	case map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t), true
		}
		return string(b), true
	default:
		return fmt.Sprint(t), true
	}
}

// OptionalText is Text without the presence flag.
func OptionalText(v any) string {
	s, _ := Text(v)
	return s
}

// StringList returns an empty list for anything that is not a list. Null
// items are dropped and other scalars are stringified.
func StringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := Text(item); ok {
			out = append(out, s)
		}
	}
	return out
}

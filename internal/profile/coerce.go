package profile

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sells-group/tradelens/internal/rowsource"
)

// TextOrNil coerces an untyped source value to trimmed text. Strings are
// trimmed and dropped when empty; numbers and booleans are stringified;
// anything else yields nil.
func TextOrNil(v any) *string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		return &s
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
		s := strconv.FormatFloat(t, 'f', -1, 64)
		return &s
	case float32:
		return TextOrNil(float64(t))
	case int:
		s := strconv.Itoa(t)
		return &s
	case int32:
		s := strconv.FormatInt(int64(t), 10)
		return &s
	case int64:
		s := strconv.FormatInt(t, 10)
		return &s
	case bool:
		s := strconv.FormatBool(t)
		return &s
	case json.Number:
		s := t.String()
		if s == "" {
			return nil
		}
		return &s
	default:
		return nil
	}
}

// NumberOrNil coerces an untyped source value to a finite float64.
// Strings have thousands separators stripped before parsing; empty
// strings, bare minus signs, and unparsable text all yield nil. The
// result is never NaN or infinite.
func NumberOrNil(v any) *float64 {
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		return finiteOrNil(t)
	case float32:
		return finiteOrNil(float64(t))
	case int:
		return finiteOrNil(float64(t))
	case int32:
		return finiteOrNil(float64(t))
	case int64:
		return finiteOrNil(float64(t))
	case json.Number:
		return parseNumber(t.String())
	case string:
		return parseNumber(t)
	default:
		return nil
	}
}

func parseNumber(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" || s == "-" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return finiteOrNil(f)
}

func finiteOrNil(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// TextListOrNil coerces a source value to a list of trimmed, non-empty
// strings. Arrays coerce element-wise; a plain string splits on commas
// and semicolons. Nil when nothing survives.
func TextListOrNil(v any) []string {
	var parts []string
	switch t := v.(type) {
	case nil:
		return nil
	case []string:
		parts = t
	case []any:
		for _, e := range t {
			if s := TextOrNil(e); s != nil {
				parts = append(parts, *s)
			}
		}
		return dropEmpty(parts)
	case string:
		parts = strings.FieldsFunc(t, func(r rune) bool {
			return r == ',' || r == ';'
		})
	default:
		if s := TextOrNil(v); s != nil {
			return []string{*s}
		}
		return nil
	}
	return dropEmpty(parts)
}

func dropEmpty(parts []string) []string {
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// textValue resolves a field through its alias list and coerces to text.
func textValue(row rowsource.GenericRow, candidates ...string) *string {
	v, ok := ResolveField(row, candidates...)
	if !ok {
		return nil
	}
	return TextOrNil(v)
}

// numberValue resolves a field through its alias list and coerces to a number.
func numberValue(row rowsource.GenericRow, candidates ...string) *float64 {
	v, ok := ResolveField(row, candidates...)
	if !ok {
		return nil
	}
	return NumberOrNil(v)
}

// listValue resolves a field through its alias list and coerces to a list.
func listValue(row rowsource.GenericRow, candidates ...string) []string {
	v, ok := ResolveField(row, candidates...)
	if !ok {
		return nil
	}
	return TextListOrNil(v)
}

// syntheticID builds a stable list identity for rows lacking a natural key.
func syntheticID(entity, companyID string, idx int) string {
	return fmt.Sprintf("%s-%s-%d", entity, companyID, idx)
}

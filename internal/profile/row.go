// Package profile normalizes raw rows from the trade-data service into
// canonical company-profile records and derives bounded aggregate views
// (counterparty flows, purchase statistics) from them. Source schemas have
// drifted across deployments, so every field is resolved through ordered
// alias lists instead of literal keys, and every fetch runs through an
// ordered table/column fallback chain.
package profile

import (
	"strings"
	"unicode"

	"github.com/sells-group/tradelens/internal/rowsource"
)

// normalizeKey lower-cases a field name and strips everything that is not
// a letter or digit, so "Company_ID", "companyId" and "COMPANY-ID" all
// collapse to "companyid".
func normalizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ResolveField returns the value of the first candidate alias (in list
// order) whose normalized key exists in the row with a non-empty value.
// The second return is false when no candidate matched, letting the caller
// apply its own default.
func ResolveField(row rowsource.GenericRow, candidates ...string) (any, bool) {
	if len(row) == 0 {
		return nil, false
	}

	// Index the row by normalized key once. When two raw keys collapse to
	// the same normalized form the first non-empty value wins.
	normalized := make(map[string]any, len(row))
	for k, v := range row {
		nk := normalizeKey(k)
		if existing, ok := normalized[nk]; ok && !isEmptyValue(existing) {
			continue
		}
		normalized[nk] = v
	}

	for _, cand := range candidates {
		v, ok := normalized[normalizeKey(cand)]
		if !ok || isEmptyValue(v) {
			continue
		}
		return v, true
	}
	return nil, false
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	return false
}

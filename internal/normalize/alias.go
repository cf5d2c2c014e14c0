package normalize

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Aliases is an ordered list of JSON paths that name the same logical field.
type Aliases []string

// Lookup returns the first present alias in rec, or an empty result.
func (a Aliases) Lookup(rec gjson.Result) gjson.Result {
	for _, path := range a {
		if v := rec.Get(path); present(v) {
			return v
		}
	}
	return gjson.Result{}
}

// String resolves the aliases to a trimmed string, or "" when none is present.
func (a Aliases) String(rec gjson.Result) string {
	return text(a.Lookup(rec))
}

// StringOr resolves the aliases to a string, falling back to def.
func (a Aliases) StringOr(rec gjson.Result, def string) string {
	if s := a.String(rec); s != "" {
		return s
	}
	return def
}

// Number resolves the aliases to a float. Numeric strings are accepted;
// anything else yields 0.
func (a Aliases) Number(rec gjson.Result) float64 {
	return number(a.Lookup(rec))
}

// Count resolves the aliases to a non-negative integer.
func (a Aliases) Count(rec gjson.Result) int {
	n := int(a.Number(rec))
	if n < 0 {
		return 0
	}
	return n
}

func present(v gjson.Result) bool {
	if !v.Exists() || v.Type == gjson.Null {
		return false
	}
	if v.Type == gjson.String && strings.TrimSpace(v.Str) == "" {
		return false
	}
	return true
}

func text(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return strings.TrimSpace(v.Str)
	case gjson.Number, gjson.True, gjson.False:
		return v.Raw
	default:
		return ""
	}
}

func number(v gjson.Result) float64 {
	switch v.Type {
	case gjson.Number:
		return v.Num
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// records returns the elements of a top-level JSON array, or nil when raw is
// not valid JSON or not an array.
func records(raw []byte) []gjson.Result {
	if !gjson.ValidBytes(raw) {
		return nil
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsArray() {
		return nil
	}
	return doc.Array()
}

// stringList converts a JSON array of scalars into strings, skipping blanks
// and duplicates while keeping the first occurrence order.
func stringList(v gjson.Result) []string {
	if !v.IsArray() {
		return nil
	}
	var out []string
	seen := make(map[string]struct{})
	for _, item := range v.Array() {
		s := text(item)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

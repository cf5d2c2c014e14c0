package normalize

import (
	"fmt"

	"github.com/moriz82/folio/pkg/core"
	"github.com/tidwall/gjson"
)

// Transcript parses a typewriter script: a JSON array of
// {"command": ..., "output": ...} objects. Output may be a string, an array
// or an object whose values are taken in document order; "outputs" is
// accepted as an array alias.
//
// Unlike the other normalizers Transcript fails loudly: a malformed script
// disables the player instead of animating part of it.
func Transcript(raw []byte) ([]core.TranscriptEntry, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("transcript: %w: invalid JSON", core.ErrParseFailure)
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsArray() {
		return nil, fmt.Errorf("transcript: %w: expected an array, got %s", core.ErrParseFailure, doc.Type)
	}

	items := doc.Array()
	if len(items) == 0 {
		return nil, fmt.Errorf("transcript: %w", core.ErrEmptyResult)
	}

	entries := make([]core.TranscriptEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, core.TranscriptEntry{
			Command: command(item.Get("command")),
			Outputs: Outputs(item),
		})
	}
	return entries, nil
}

func command(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Number, gjson.True, gjson.False:
		return v.Raw
	default:
		return ""
	}
}

// Outputs flattens the output of one transcript entry into ordered lines.
func Outputs(entry gjson.Result) []string {
	if !entry.IsObject() {
		return nil
	}
	output := entry.Get("output")
	switch {
	case output.IsArray():
		return lines(output)
	case entry.Get("outputs").IsArray():
		return lines(entry.Get("outputs"))
	case output.Type == gjson.String:
		return []string{output.Str}
	case output.IsObject():
		var out []string
		output.ForEach(func(_, value gjson.Result) bool {
			out = append(out, line(value))
			return true
		})
		return out
	}
	return nil
}

func lines(v gjson.Result) []string {
	items := v.Array()
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, line(item))
	}
	return out
}

func line(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Null:
		return ""
	default:
		return v.Raw
	}
}

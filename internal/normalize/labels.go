package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultColorToken is used for buckets whose label has no palette entry.
const DefaultColorToken = "#8d4cff"

// DifficultyPalette maps lower-case difficulty labels to colour tokens.
var DifficultyPalette = map[string]string{
	"veryeasy": "#4ac1ff",
	"easy":     "#3ddc84",
	"medium":   "#f7b733",
	"hard":     "#ef5350",
	"insane":   "#8d4cff",
	"guru":     "#ff6bd6",
}

// Label upper-cases the first letter of s and leaves the rest untouched.
func Label(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// ColorFor returns the palette colour of a label, or DefaultColorToken.
func ColorFor(label string) string {
	key := strings.ToLower(strings.ReplaceAll(label, " ", ""))
	if c, ok := DifficultyPalette[key]; ok {
		return c
	}
	return DefaultColorToken
}

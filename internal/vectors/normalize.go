// Package vectors turns copy-pasted cipher test vector dumps into one
// normalized record per line.
package vectors

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Separator splits a field label from its value.
const Separator = " = "

var (
	// line breaks and the dots some dumps use to group bytes
	noise = runes.Remove(runes.Predicate(func(r rune) bool {
		return r == '\n' || r == '\r' || r == '.'
	}))

	spaces = runes.Remove(runes.Predicate(func(r rune) bool {
		return r == ' '
	}))
)

// NormalizeLine returns the part of a field line that carries data. A line
// with an '=' keeps only the text between the first and second " = " (or the
// end of the line); a line without one is kept whole. A line with '=' but no
// " = " carries nothing.
func NormalizeLine(line string) string {
	if !strings.ContainsRune(line, '=') {
		return line
	}
	_, rest, _ := strings.Cut(line, Separator)
	value, _, _ := strings.Cut(rest, Separator)
	return value
}

// NormalizeRecord concatenates the data of a record group, then removes line
// breaks and dots, then removes spaces.
func NormalizeRecord(lines []string) string {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(NormalizeLine(line))
	}
	return StripSpaces(StripNoise(sb.String()))
}

// StripNoise removes every line break and '.' from s.
func StripNoise(s string) string {
	out, _, _ := transform.String(noise, s)
	return out
}

// StripSpaces removes every ' ' from s.
func StripSpaces(s string) string {
	out, _, _ := transform.String(spaces, s)
	return out
}

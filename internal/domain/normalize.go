package domain

import (
	"strings"
)

// NormalizeSymbol prepares an enumerated column value for comparison:
// surrounding whitespace is trimmed and the value is lower-cased.
func NormalizeSymbol(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// SplitLines splits a multi-value cell (alt labels, uuid history) on
// newlines, dropping blank lines and trimming each value.
// A blank cell yields a nil slice.
func SplitLines(cell string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	parts := strings.Split(strings.ReplaceAll(cell, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinLines is the inverse of SplitLines, used when exporting.
func JoinLines(values []string) string {
	return strings.Join(values, "\n")
}

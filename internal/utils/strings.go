package utils

import "strings"

// Truncate shortens s to at most max runes for single-line display,
// replacing the tail with an ellipsis. Newlines are collapsed to spaces
// so a multi-line value cannot break a listing row.
func Truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if max <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

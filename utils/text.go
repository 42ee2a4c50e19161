package utils

import (
	"strings"
	"unicode"
)

// Ellipsis is the marker appended by TruncateAtWordBoundary.
const Ellipsis = "…"

// MetaSeparator joins the parts of a composed meta line.
const MetaSeparator = " • "

// TruncateAtWordBoundary returns text unchanged when it fits within maxChars
// runes; otherwise it cuts at the last whitespace at or before maxChars and
// appends the ellipsis marker. When no whitespace exists before the bound the
// text is hard-cut at maxChars. maxChars <= 0 means "no truncation".
//
// The function is idempotent: truncating an already-truncated string with the
// same or a larger bound returns the same string.
func TruncateAtWordBoundary(text string, maxChars int) string {
	if maxChars <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}

	cut := runes[:maxChars]
	last := -1
	for i, r := range cut {
		if unicode.IsSpace(r) {
			last = i
		}
	}
	if last <= 0 {
		return string(cut) + Ellipsis
	}

	// Drop trailing whitespace before the cut point.
	end := last
	for end > 0 && unicode.IsSpace(cut[end-1]) {
		end--
	}
	if end == 0 {
		return string(cut) + Ellipsis
	}
	return string(cut[:end]) + Ellipsis
}

// ComposeMetaLine joins the defined, non-empty parts with the meta separator,
// skipping empty entries entirely so no dangling separators appear.
func ComposeMetaLine(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, MetaSeparator)
}

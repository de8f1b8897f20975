// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package htmltext reduces HTML and XHTML documents to plain text lines.
//
// It is a single-pass tag stripper, not an HTML parser: it does not decode
// entities, parse attributes, or understand comments and CDATA. Markup is
// dropped, the bodies of script and style elements are discarded, and the
// remaining text is collapsed into trimmed, non-empty lines.
package htmltext

import (
	"strings"
	"unicode"
)

// maxTagName bounds the captured tag name so malformed input with a missing
// '>' cannot grow it without limit.
const maxTagName = 20

// Strip returns the visible text of html with one trimmed, non-empty line per
// source line.
func Strip(html string) string {
	return CollapseLines(StripTags(html))
}

// StripTags removes everything between '<' and '>' and drops the contents of
// script and style elements. Line structure is left untouched.
func StripTags(html string) string {
	var (
		out           strings.Builder
		name          strings.Builder
		inTag         bool
		nameDone      bool
		inScriptStyle bool
	)
	out.Grow(len(html))

	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
			nameDone = false
			name.Reset()
		case r == '>':
			inTag = false
			inScriptStyle = scriptStyleState(name.String(), inScriptStyle)
			name.Reset()
		case inTag:
			if unicode.IsSpace(r) {
				nameDone = name.Len() > 0
				continue
			}
			if !nameDone && name.Len() < maxTagName {
				name.WriteRune(r)
			}
		case !inScriptStyle:
			out.WriteRune(r)
		}
	}

	return out.String()
}

// scriptStyleState returns the script/style flag after closing a tag named tag.
func scriptStyleState(tag string, current bool) bool {
	switch strings.ToLower(tag) {
	case "script", "style":
		return true
	case "/script", "/style":
		return false
	default:
		return current
	}
}

// CollapseLines trims every line of text and drops the ones left empty.
func CollapseLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"regexp"
	"strings"
)

// Precompiled patterns for the postprocessing stage. Rule order is
// significant: later rules assume earlier rules' output shape.
var (
	headingNoBlankBefore = regexp.MustCompile("([^\n])\n(#{1,6} )")
	headingNoBlankAfter  = regexp.MustCompile(`(?m)^(#{1,6} [^\n]*)\n([^\n])`)
	tableNoBlankAfter    = regexp.MustCompile(`(?m)^(\|[^\n]*\|)\n([^|\n])`)
	subscriptArtifact    = regexp.MustCompile(`([A-Z][a-z]?)_(\d+)_`)
	formulaToken         = regexp.MustCompile(`\b(?:[A-Z][a-z]?\d*){2,}\b`)
)

// Postprocess normalizes flattened Markdown. It applies, in order: blank
// line collapsing, heading spacing repair, table spacing repair, subscript
// artifact cleanup, chemical formula wrapping, and a final trim. Every
// rewrite is a total function over its input and the whole pass is
// idempotent (R2.1-R2.7).
func Postprocess(text string) string {
	text = collapseBlankLines(text)
	text = spaceHeadings(text)
	text = spaceTables(text)
	text = foldSubscripts(text)
	text = wrapFormulas(text)
	return strings.TrimSpace(text)
}

// collapseBlankLines reduces runs of three or more newlines to exactly two.
func collapseBlankLines(text string) string {
	return excessBlankLines.ReplaceAllString(text, "\n\n")
}

// spaceHeadings inserts a blank line before any heading marker not already
// preceded by one, then ensures a blank line between a heading line and the
// non-blank content that follows it.
func spaceHeadings(text string) string {
	text = headingNoBlankBefore.ReplaceAllString(text, "$1\n\n$2")
	text = headingNoBlankAfter.ReplaceAllString(text, "$1\n\n$2")
	return text
}

// spaceTables ensures a blank line separates a pipe table block from the
// next non-table, non-blank line.
func spaceTables(text string) string {
	return tableNoBlankAfter.ReplaceAllString(text, "$1\n\n$2")
}

// foldSubscripts canonicalizes the doubled-subscript artifact left by the
// subscript rewrite rule on chemical formulas: H_2_ becomes H_2.
func foldSubscripts(text string) string {
	return subscriptArtifact.ReplaceAllString(text, "${1}_$2")
}

// wrapFormulas wraps chemical-formula-shaped tokens (two or more
// capital-letter element groups with at least one digit overall) in inline
// math delimiters. The shape test is a heuristic, not a chemistry parser:
// tokens like A1B2 are accepted false positives, and formulas that do not
// match the shape are left alone. Tokens already adjacent to a math
// delimiter are skipped so repeated passes do not double-wrap.
func wrapFormulas(text string) string {
	matches := formulaToken.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + 2*len(matches))
	last := 0
	for _, m := range matches {
		tok := text[m[0]:m[1]]
		if !strings.ContainsAny(tok, "0123456789") || delimiterAdjacent(text, m[0], m[1]) {
			continue
		}
		b.WriteString(text[last:m[0]])
		b.WriteByte('$')
		b.WriteString(tok)
		b.WriteByte('$')
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// delimiterAdjacent reports whether the token at [start, end) touches an
// existing math delimiter.
func delimiterAdjacent(text string, start, end int) bool {
	if start > 0 && text[start-1] == '$' {
		return true
	}
	if end < len(text) && text[end] == '$' {
		return true
	}
	return false
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markdown implements the text normalization stages of the
// conversion pipeline: the pre-flattening cleanup, the HTML-to-Markdown
// flattening rules, the post-flattening normalization pass, and the
// frontmatter header. Implements: prd002-normalization (R1-R4);
//
//	docs/ARCHITECTURE § Normalization.
package markdown

import "regexp"

// Precompiled patterns for the preprocessing stage.
var (
	excessBlankLines = regexp.MustCompile(`\n{3,}`)
	equationSpan     = regexp.MustCompile(`(?s)<equation>(.*?)</equation>`)
)

// Preprocess cleans the structural markup text before flattening. It
// collapses runs of three or more newlines down to two (later patterns are
// run-length sensitive) and relocates equation span content between inline
// math delimiters: <equation>X</equation> becomes $X$. Equation handling is
// a style-derived heuristic; OMML structure is not parsed (R1.3).
func Preprocess(text string) string {
	text = excessBlankLines.ReplaceAllString(text, "\n\n")
	text = equationSpan.ReplaceAllString(text, "$$${1}$$")
	return text
}

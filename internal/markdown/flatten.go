// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/JohannesKaufmann/dom"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"golang.org/x/net/html"
)

var (
	flattener     *converter.Converter
	flattenerOnce sync.Once
)

// noteClassMarkers identify a block element as a note/callout. Matched by
// substring against the class attribute, not exact match (R3.2).
var noteClassMarkers = []string{"note", "callout", "admonition"}

// Flatten converts structural markup to Markdown text. Tables pass through
// as pipe tables, note blocks become fenced ::: blocks, and subscript and
// superscript runs fold to _x_ and ^x^ notation (R3.1-R3.4).
func Flatten(markup string) (string, error) {
	out, err := getFlattener().ConvertString(markup)
	if err != nil {
		return "", fmt.Errorf("flattening markup: %w", err)
	}
	return out, nil
}

// getFlattener returns the shared converter with the rewrite rules
// registered. The table plugin takes precedence over generic flattening;
// the note, sub, and sup rules are mutually exclusive by element type.
func getFlattener() *converter.Converter {
	flattenerOnce.Do(func() {
		flattener = converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		)
		// PriorityEarly (100) runs before the commonmark plugin
		// (PriorityStandard 500).
		flattener.Register.RendererFor("div", converter.TagTypeBlock,
			renderNoteBlock, converter.PriorityEarly)
		flattener.Register.RendererFor("sub", converter.TagTypeInline,
			renderSubscript, converter.PriorityEarly)
		flattener.Register.RendererFor("sup", converter.TagTypeInline,
			renderSuperscript, converter.PriorityEarly)
	})
	return flattener
}

// renderNoteBlock rewrites a note/callout block to a fenced ::: block.
// Divs without a note-like class fall through to the default handling.
func renderNoteBlock(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	class := strings.ToLower(dom.GetAttributeOr(n, "class", ""))
	if !isNoteClass(class) {
		return converter.RenderTryNext
	}

	var inner bytes.Buffer
	ctx.RenderChildNodes(ctx, &inner, n)

	w.WriteString("\n:::note\n")
	w.WriteString(strings.TrimSpace(inner.String()))
	w.WriteString("\n:::\n\n")
	return converter.RenderSuccess
}

func isNoteClass(class string) bool {
	for _, marker := range noteClassMarkers {
		if strings.Contains(class, marker) {
			return true
		}
	}
	return false
}

// renderSubscript folds a subscript run to underscore notation. The
// postprocessing pass later drops the trailing underscore when the run is
// part of a chemical formula.
func renderSubscript(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	return renderDelimited(ctx, w, n, "_")
}

// renderSuperscript folds a superscript run to caret notation.
func renderSuperscript(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	return renderDelimited(ctx, w, n, "^")
}

func renderDelimited(ctx converter.Context, w converter.Writer, n *html.Node, delim string) converter.RenderStatus {
	var inner bytes.Buffer
	ctx.RenderChildNodes(ctx, &inner, n)

	w.WriteString(delim)
	w.WriteString(strings.TrimSpace(inner.String()))
	w.WriteString(delim)
	return converter.RenderSuccess
}

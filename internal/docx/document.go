// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"fmt"
	"html"
	"path"
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

// mdImageRef matches the inline Markdown image reference returned by the
// image callback, so it can be re-expressed as an element.
var mdImageRef = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)]+)\)$`)

// markupWriter accumulates structural HTML while walking the document
// tree. One instance serves one conversion.
type markupWriter struct {
	out        strings.Builder
	opts       Options
	styleNames map[string]string // styleId -> display name
	relTargets map[string]string // relationship id -> media target
	media      func(target string) []byte
	warned     map[string]bool
	warnings   []string
}

func (w *markupWriter) writeDocument(data []byte) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return fmt.Errorf("parsing %s: %w", documentPart, err)
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("parsing %s: no root element", documentPart)
	}
	body := childElement(root, "body")
	if body == nil {
		return fmt.Errorf("parsing %s: no body element", documentPart)
	}
	w.writeBlocks(body)
	return nil
}

// writeBlocks walks block-level children in document order. Content
// controls (w:sdt) are unwrapped; section properties and bookmarks carry
// no content and are skipped.
func (w *markupWriter) writeBlocks(parent *etree.Element) {
	for _, el := range parent.ChildElements() {
		switch el.Tag {
		case "p":
			w.writeParagraph(el)
		case "tbl":
			w.writeTable(el)
		case "sdt":
			if content := findDescendant(el, "sdtContent"); content != nil {
				w.writeBlocks(content)
			}
		}
	}
}

func (w *markupWriter) writeParagraph(p *etree.Element) {
	tag := w.paragraphTag(p)
	inner := w.renderInline(p, tag != "equation")
	if strings.TrimSpace(inner) == "" {
		return
	}

	switch tag {
	case "note":
		w.out.WriteString("<div class=\"note\">" + inner + "</div>\n")
	case "equation":
		w.out.WriteString("<equation>" + inner + "</equation>\n")
	default:
		w.out.WriteString("<" + tag + ">" + inner + "</" + tag + ">\n")
	}
}

// paragraphTag resolves the paragraph's structural tag from its style.
// Unmapped named styles warn once each and fall back to a plain paragraph.
func (w *markupWriter) paragraphTag(p *etree.Element) string {
	styleID := styleRef(p, "pPr", "pStyle")
	if styleID == "" {
		return "p"
	}
	name := w.styleNames[styleID]
	if name == "" {
		name = styleID
	}
	if tag := w.opts.Styles.Tag(name); tag != "" {
		return tag
	}
	if !isDefaultStyle(name) {
		w.warnOnce("style:"+name, "unsupported paragraph style: %s", name)
	}
	return "p"
}

// renderInline flattens a paragraph's runs in order. Hyperlink wrappers
// are traversed for their text; link targets are not resolved. When
// formatted is false (equation paragraphs) character markup is dropped so
// the span holds literal text only.
func (w *markupWriter) renderInline(parent *etree.Element, formatted bool) string {
	var b strings.Builder
	for _, el := range parent.ChildElements() {
		switch el.Tag {
		case "r":
			b.WriteString(w.renderRun(el, formatted))
		case "hyperlink", "smartTag":
			b.WriteString(w.renderInline(el, formatted))
		}
	}
	return b.String()
}

func (w *markupWriter) renderRun(r *etree.Element, formatted bool) string {
	var b strings.Builder
	for _, el := range r.ChildElements() {
		switch el.Tag {
		case "t":
			b.WriteString(html.EscapeString(el.Text()))
		case "br":
			b.WriteString("<br />")
		case "tab":
			b.WriteString(" ")
		case "drawing", "pict", "object":
			b.WriteString(w.renderImage(el))
		}
	}
	text := b.String()
	if text == "" || !formatted {
		return text
	}

	props := childElement(r, "rPr")
	switch vertAlign(props) {
	case "subscript":
		text = "<sub>" + text + "</sub>"
	case "superscript":
		text = "<sup>" + text + "</sup>"
	}
	if w.opts.PreserveStyles && props != nil {
		if boolProp(props, "b") {
			text = "<strong>" + text + "</strong>"
		}
		if boolProp(props, "i") {
			text = "<em>" + text + "</em>"
		}
	}
	return text
}

// renderImage resolves an embedded image through the relationship table
// and hands the payload to the image callback. The returned Markdown
// reference is re-expressed as an img element: the flattener escapes
// literal Markdown syntax in text nodes, while an element emerges as the
// reference verbatim.
func (w *markupWriter) renderImage(drawing *etree.Element) string {
	if w.opts.Images == nil {
		return ""
	}
	blip := findDescendant(drawing, "blip")
	if blip == nil {
		// Legacy VML image (w:pict) path.
		blip = findDescendant(drawing, "imagedata")
	}
	if blip == nil {
		return ""
	}
	relID := attrValue(blip, "embed")
	if relID == "" {
		relID = attrValue(blip, "id")
	}

	target, ok := w.relTargets[relID]
	if !ok {
		w.warnOnce("rel:"+relID, "image relationship %s not found", relID)
		return ""
	}
	payload := w.media(target)
	if payload == nil {
		w.warnOnce("media:"+target, "image part %s not found", target)
		return ""
	}

	subtype := strings.TrimPrefix(path.Ext(target), ".")
	ref := w.opts.Images(payload, subtype)
	if m := mdImageRef.FindStringSubmatch(ref); m != nil {
		return fmt.Sprintf("<img src=%q alt=%q />", m[2], m[1])
	}
	return html.EscapeString(ref)
}

// writeTable emits table markup for passthrough flattening. The first row
// becomes the header row; cell content is reduced to its text.
func (w *markupWriter) writeTable(tbl *etree.Element) {
	rows := childElements(tbl, "tr")
	if len(rows) == 0 {
		return
	}
	w.out.WriteString("<table>\n")
	for i, row := range rows {
		cellTag := "td"
		if i == 0 {
			cellTag = "th"
		}
		w.out.WriteString("<tr>")
		for _, cell := range childElements(row, "tc") {
			w.out.WriteString("<" + cellTag + ">" + w.cellText(cell) + "</" + cellTag + ">")
		}
		w.out.WriteString("</tr>\n")
	}
	w.out.WriteString("</table>\n")
}

func (w *markupWriter) cellText(cell *etree.Element) string {
	var parts []string
	for _, p := range childElements(cell, "p") {
		if text := w.renderInline(p, true); strings.TrimSpace(text) != "" {
			parts = append(parts, strings.TrimSpace(text))
		}
	}
	return strings.Join(parts, " ")
}

func (w *markupWriter) warnOnce(key, format string, args ...any) {
	if w.warned[key] {
		return
	}
	w.warned[key] = true
	w.warnings = append(w.warnings, fmt.Sprintf(format, args...))
}

// Element helpers matching on local names, so namespace prefixes in the
// source never matter.

func childElement(el *etree.Element, tag string) *etree.Element {
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

func childElements(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

func findDescendant(el *etree.Element, tag string) *etree.Element {
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			return c
		}
		if found := findDescendant(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func attrValue(el *etree.Element, key string) string {
	for _, a := range el.Attr {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

// styleRef reads a style reference value, e.g. pPr/pStyle/@val.
func styleRef(el *etree.Element, propsTag, refTag string) string {
	props := childElement(el, propsTag)
	if props == nil {
		return ""
	}
	ref := childElement(props, refTag)
	if ref == nil {
		return ""
	}
	return attrValue(ref, "val")
}

// vertAlign returns the run's vertical alignment ("subscript",
// "superscript", or "").
func vertAlign(props *etree.Element) string {
	if props == nil {
		return ""
	}
	va := childElement(props, "vertAlign")
	if va == nil {
		return ""
	}
	return attrValue(va, "val")
}

// boolProp reports whether a toggle run property is on. A present element
// without a val attribute is on; val "false" or "0" turns it off.
func boolProp(props *etree.Element, tag string) bool {
	el := childElement(props, tag)
	if el == nil {
		return false
	}
	val := attrValue(el, "val")
	return val != "false" && val != "0"
}
